package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-restaurant-orders.git/internal/session"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/users"
)

type ProfileHandler struct {
	Users UsersRepo
}

func (h *ProfileHandler) Register(r chi.Router) {
	r.Get("/profile", h.get)
	r.Put("/profile", h.update)
}

func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, sess.Email)
	if errors.Is(err, users.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type updateProfileReq struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

// update edits name, mobile and address. Email and password cannot be
// changed here.
func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	var req updateProfileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, sess.Email, req.Name, req.Mobile, req.Address); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"name": req.Name, "mobile": req.Mobile, "address": req.Address,
	})
}
