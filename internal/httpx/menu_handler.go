package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-restaurant-orders.git/internal/images"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/menu"
)

type MenuRepo interface {
	Create(ctx context.Context, it menu.Item) (int64, error)
	Update(ctx context.Context, it menu.Item) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (menu.Item, error)
	List(ctx context.Context) ([]menu.Item, error)
	ListAvailable(ctx context.Context, category string) ([]menu.Item, error)
	SetImagePath(ctx context.Context, id int64, path string) error
}

type MenuHandler struct {
	Repo   MenuRepo
	Images *images.Store
}

// Register mounts the customer-facing browse routes.
func (h *MenuHandler) Register(r chi.Router) {
	r.Get("/menu", h.list)
	r.Get("/menu/{id}", h.get)
}

// RegisterAdmin mounts the operator CRUD routes.
func (h *MenuHandler) RegisterAdmin(r chi.Router) {
	r.Get("/menu/all", h.listAll)
	r.Post("/menu", h.create)
	r.Put("/menu/{id}", h.update)
	r.Delete("/menu/{id}", h.delete)
	r.Post("/menu/{id}/image", h.uploadImage)
}

func (h *MenuHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.Repo.ListAvailable(ctx, r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) listAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.Repo.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	it, err := h.Repo.Get(ctx, id)
	if errors.Is(err, menu.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, it)
}

type menuItemReq struct {
	Name        string          `json:"item_name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
}

func (req menuItemReq) toItem() (menu.Item, error) {
	if req.Name == "" {
		return menu.Item{}, errors.New("item_name is required")
	}
	if req.Price.IsNegative() {
		return menu.Item{}, errors.New("price must not be negative")
	}
	status := req.Status
	if status == "" {
		status = string(menu.StatusAvailable)
	}
	parsed, err := menu.ParseItemStatus(status)
	if err != nil {
		return menu.Item{}, err
	}
	return menu.Item{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Status:      string(parsed),
		Description: req.Description,
	}, nil
}

func (h *MenuHandler) create(w http.ResponseWriter, r *http.Request) {
	var req menuItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	it, err := req.toItem()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	id, err := h.Repo.Create(ctx, it)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	it.ID = id
	writeJSON(w, http.StatusCreated, it)
}

func (h *MenuHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req menuItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	it, err := req.toItem()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	it.ID = id

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// keep the stored image reference unless the caller replaces it
	if cur, gerr := h.Repo.Get(ctx, id); gerr == nil {
		it.ImagePath = cur.ImagePath
	}

	if err := h.Repo.Update(ctx, it); err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *MenuHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MenuHandler) uploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	path, err := h.Images.Save(header.Filename, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Repo.SetImagePath(ctx, id, path); err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image_path": path})
}

func itemID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
