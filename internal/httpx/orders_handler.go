package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-restaurant-orders.git/internal/cart"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/kafkax"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/orders"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/redisx"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/session"
)

type OrdersRepo interface {
	PlaceOrder(ctx context.Context, transactionID, userEmail, itemName string, quantity int, totalPrice decimal.Decimal) error
	ListOrders(ctx context.Context) ([]orders.Aggregate, error)
	UserHistory(ctx context.Context, userEmail string) ([]orders.Aggregate, error)
	TransactionStatus(ctx context.Context, transactionID string) (orders.Status, string, error)
	UpdateStatusByTransaction(ctx context.Context, transactionID string, status orders.Status) error
	HasUserOrderedItem(ctx context.Context, userEmail, itemName string) (bool, error)
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type OrdersHandler struct {
	Repo           OrdersRepo
	Carts          *cart.Store
	PlacedProducer Publisher // order.placed
	StatusProducer Publisher // order.status.changed
	Redis          *redis.Client
	Service        string
}

// Register mounts the customer-facing order routes.
func (h *OrdersHandler) Register(r chi.Router) {
	r.Post("/checkout", h.checkout)
	r.Get("/orders/history", h.history)
	r.Get("/orders/{tx}/status", h.getStatus)
}

// RegisterAdmin mounts the operator routes.
func (h *OrdersHandler) RegisterAdmin(r chi.Router) {
	r.Get("/orders", h.listOrders)
	r.Post("/orders/{tx}/status", h.updateStatus)
}

type checkoutReq struct {
	TransactionID string `json:"transaction_id,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

type checkoutLineResult struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

type checkoutResp struct {
	TransactionID string               `json:"transaction_id"`
	TotalPrice    decimal.Decimal      `json:"total_price"`
	AllSuccess    bool                 `json:"all_success"`
	Lines         []checkoutLineResult `json:"lines,omitempty"`
	Idempotent    bool                 `json:"idempotent,omitempty"`
}

// checkout turns the session cart into N Pending line rows sharing one
// transaction id. Line inserts are independent; a failed line does not roll
// back the ones already written, and the response reports each line so the
// caller can retry only the failures.
func (h *OrdersHandler) checkout(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	var req checkoutReq
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // body is optional
	}

	transactionID := req.TransactionID
	if transactionID == "" {
		transactionID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// replay shortcut: a caller re-sending its own transaction id after a
	// lost response gets the stored prior result back. This must run before
	// the cart check because the first attempt already cleared the cart.
	idemKey := fmt.Sprintf(redisx.KeyIdemCheckout, transactionID)
	if req.TransactionID != "" {
		if stored, err := h.Redis.Get(ctx, idemKey).Bytes(); err == nil {
			var prior checkoutResp
			if json.Unmarshal(stored, &prior) == nil {
				prior.Idempotent = true
				writeJSON(w, http.StatusOK, prior)
				return
			}
		}
	}

	entries := h.Carts.Get(sess.Email)
	if len(entries) == 0 {
		writeError(w, http.StatusBadRequest, "cart is empty")
		return
	}

	allSuccess := true
	results := make([]checkoutLineResult, 0, len(entries))
	for _, e := range entries {
		res := checkoutLineResult{ItemName: e.Item.Name, Quantity: e.Quantity, OK: true}
		if err := h.Repo.PlaceOrder(ctx, transactionID, sess.Email, e.Item.Name, e.Quantity, e.LineTotal()); err != nil {
			res.OK = false
			res.Error = err.Error()
			allSuccess = false
		}
		results = append(results, res)
	}

	total := cart.Total(entries)
	if !allSuccess {
		writeJSON(w, http.StatusInternalServerError, checkoutResp{
			TransactionID: transactionID,
			TotalPrice:    total,
			AllSuccess:    false,
			Lines:         results,
		})
		return
	}

	resp := checkoutResp{
		TransactionID: transactionID,
		TotalPrice:    total,
		AllSuccess:    true,
		Lines:         results,
	}

	h.Carts.Clear(sess.Email)
	_ = h.Redis.Set(ctx, idemKey, kafkax.MustMarshal(resp), redisx.TTLIdempotency).Err()
	h.cacheStatus(ctx, transactionID, orders.StatusPending)

	placed := make([]orders.PlacedLine, 0, len(entries))
	for _, e := range entries {
		placed = append(placed, orders.PlacedLine{
			ItemName:   e.Item.Name,
			Quantity:   e.Quantity,
			TotalPrice: e.LineTotal(),
		})
	}
	h.publish(h.PlacedProducer, r, orders.EventOrderPlaced, transactionID, orders.OrderPlacedPayload{
		TransactionID: transactionID,
		UserEmail:     sess.Email,
		Items:         placed,
		TotalPrice:    total,
		PaymentMethod: req.PaymentMethod,
	})

	writeJSON(w, http.StatusAccepted, resp)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	aggs, err := h.Repo.ListOrders(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if aggs == nil {
		aggs = []orders.Aggregate{}
	}
	writeJSON(w, http.StatusOK, aggs)
}

func (h *OrdersHandler) history(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	aggs, err := h.Repo.UserHistory(ctx, sess.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if aggs == nil {
		aggs = []orders.Aggregate{}
	}
	writeJSON(w, http.StatusOK, aggs)
}

func (h *OrdersHandler) getStatus(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	transactionID := chi.URLParam(r, "tx")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// cache fast path
	key := fmt.Sprintf(redisx.KeyTxStatus, transactionID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" && sess.IsAdmin() {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	status, email, err := h.Repo.TransactionStatus(ctx, transactionID)
	if errors.Is(err, orders.ErrNoSuchTransaction) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// customers only see their own transactions
	if !sess.IsAdmin() && email != sess.Email {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	body, _ := json.Marshal(map[string]string{"status": string(status)})
	_ = h.Redis.Set(ctx, key, body, redisx.TTLStatusCache).Err()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// updateStatus moves every line of a transaction to the new status and
// raises the OrderStatusChanged event for the one affected customer.
// Re-issuing the current status succeeds without changing state.
func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "tx")

	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	newStatus, err := orders.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	current, userEmail, err := h.Repo.TransactionStatus(ctx, transactionID)
	if errors.Is(err, orders.ErrNoSuchTransaction) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !orders.CanTransition(current, newStatus) {
		writeError(w, http.StatusConflict,
			fmt.Sprintf("cannot transition from %s to %s", current, newStatus))
		return
	}

	if err := h.Repo.UpdateStatusByTransaction(ctx, transactionID, newStatus); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.cacheStatus(ctx, transactionID, newStatus)
	h.publish(h.StatusProducer, r, orders.EventOrderStatusChanged, transactionID, orders.OrderStatusChangedPayload{
		TransactionID: transactionID,
		NewStatus:     newStatus,
		UserEmail:     userEmail,
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"transaction_id": transactionID,
		"status":         string(newStatus),
		"message":        fmt.Sprintf("order %s changed to %s", transactionID, newStatus),
	})
}

func (h *OrdersHandler) cacheStatus(ctx context.Context, transactionID string, status orders.Status) {
	key := fmt.Sprintf(redisx.KeyTxStatus, transactionID)
	body, _ := json.Marshal(map[string]string{"status": string(status)})
	_ = h.Redis.Set(ctx, key, body, redisx.TTLStatusCache).Err()
}

func (h *OrdersHandler) publish(p Publisher, r *http.Request, eventType, transactionID string, payload any) {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: transactionID,
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(orders.PartitionKey(transactionID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
