package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-restaurant-orders.git/internal/cart"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/menu"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/session"
)

type CartHandler struct {
	Menu  MenuRepo
	Carts *cart.Store
}

func (h *CartHandler) Register(r chi.Router) {
	r.Get("/cart", h.get)
	r.Post("/cart/items", h.addItem)
	r.Delete("/cart", h.clear)
}

type addItemReq struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "quantity must be > 0")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	it, err := h.Menu.Get(ctx, req.MenuItemID)
	if errors.Is(err, menu.ErrNotFound) {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !it.Available() {
		writeError(w, http.StatusConflict, "item is out of stock")
		return
	}

	h.Carts.Add(sess.Email, it, req.Quantity)
	h.writeCart(w, sess.Email)
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	h.writeCart(w, sess.Email)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	h.Carts.Clear(sess.Email)
	w.WriteHeader(http.StatusNoContent)
}

type cartResp struct {
	Items []cart.Entry    `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func (h *CartHandler) writeCart(w http.ResponseWriter, owner string) {
	entries := h.Carts.Get(owner)
	writeJSON(w, http.StatusOK, cartResp{Items: entries, Total: cart.Total(entries)})
}
