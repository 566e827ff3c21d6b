package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-restaurant-orders.git/internal/ratings"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/session"
)

type RatingsRepo interface {
	Upsert(ctx context.Context, userEmail, itemName string, rating int) error
	UserRating(ctx context.Context, userEmail, itemName string) (int, error)
	Average(ctx context.Context, itemName string) (decimal.Decimal, error)
}

type RatingsHandler struct {
	Ratings RatingsRepo
	Orders  OrdersRepo
}

func (h *RatingsHandler) Register(r chi.Router) {
	r.Post("/ratings", h.rate)
	r.Get("/ratings/{item}", h.userRating)
	r.Get("/ratings/{item}/average", h.average)
}

type rateReq struct {
	ItemName string `json:"item_name"`
	Rating   int    `json:"rating"`
}

func (h *RatingsHandler) rate(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	var req rateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ItemName == "" {
		writeError(w, http.StatusBadRequest, "item_name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ordered, err := h.Orders.HasUserOrderedItem(ctx, sess.Email, req.ItemName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ordered {
		writeError(w, http.StatusForbidden, "you can only rate items you have ordered")
		return
	}

	if err := h.Ratings.Upsert(ctx, sess.Email, req.ItemName, req.Rating); err != nil {
		if errors.Is(err, ratings.ErrOutOfRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item_name": req.ItemName, "rating": req.Rating})
}

func (h *RatingsHandler) userRating(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	item := itemParam(r)

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	rating, err := h.Ratings.UserRating(ctx, sess.Email, item)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item_name": item, "rating": rating})
}

func (h *RatingsHandler) average(w http.ResponseWriter, r *http.Request) {
	item := itemParam(r)

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	avg, err := h.Ratings.Average(ctx, item)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item_name": item, "average": avg})
}

func itemParam(r *http.Request) string {
	item := chi.URLParam(r, "item")
	if decoded, err := url.PathUnescape(item); err == nil {
		return decoded
	}
	return item
}
