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

type UsersRepo interface {
	Register(ctx context.Context, name, email, password, mobile, address string) error
	Authenticate(ctx context.Context, email, password string) (users.User, error)
	GetByEmail(ctx context.Context, email string) (users.User, error)
	UpdateProfile(ctx context.Context, email, name, mobile, address string) error
}

type AuthHandler struct {
	Users    UsersRepo
	Sessions *session.Manager

	// hardcoded operator credential, config-supplied
	AdminEmail    string
	AdminPassword string
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
}

type registerReq struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Mobile          string `json:"mobile"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if users.StrengthScore(req.Password) < users.MinStrengthScore {
		writeError(w, http.StatusBadRequest, "password is not strong enough")
		return
	}
	if req.Password != req.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "passwords do not match")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.Users.Register(ctx, req.Name, req.Email, req.Password, req.Mobile, req.Address)
	if errors.Is(err, users.ErrEmailTaken) {
		writeError(w, http.StatusConflict, "this email address is already registered")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"email": req.Email})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string     `json:"token"`
	Role  users.Role `json:"role"`
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing email or password")
		return
	}

	if req.Email == h.AdminEmail {
		if req.Password != h.AdminPassword {
			writeError(w, http.StatusUnauthorized, "invalid admin credentials")
			return
		}
		token, err := h.Sessions.Issue(req.Email, users.RoleAdmin)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, loginResp{Token: token, Role: users.RoleAdmin})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	token, err := h.Sessions.Issue(u.Email, u.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, loginResp{Token: token, Role: u.Role})
}
