package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-restaurant-orders.git/internal/images"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/menu"
)

type stubMenuRepo struct {
	items      map[int64]menu.Item
	nextID     int64
	imagePaths map[int64]string
}

func newStubMenuRepo(items ...menu.Item) *stubMenuRepo {
	s := &stubMenuRepo{items: map[int64]menu.Item{}, nextID: 1, imagePaths: map[int64]string{}}
	for _, it := range items {
		s.items[it.ID] = it
		if it.ID >= s.nextID {
			s.nextID = it.ID + 1
		}
	}
	return s
}

func (s *stubMenuRepo) Create(_ context.Context, it menu.Item) (int64, error) {
	it.ID = s.nextID
	s.nextID++
	s.items[it.ID] = it
	return it.ID, nil
}

func (s *stubMenuRepo) Update(_ context.Context, it menu.Item) error {
	if _, ok := s.items[it.ID]; !ok {
		return menu.ErrNotFound
	}
	s.items[it.ID] = it
	return nil
}

func (s *stubMenuRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.items[id]; !ok {
		return menu.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *stubMenuRepo) Get(_ context.Context, id int64) (menu.Item, error) {
	it, ok := s.items[id]
	if !ok {
		return menu.Item{}, menu.ErrNotFound
	}
	return it, nil
}

func (s *stubMenuRepo) List(context.Context) ([]menu.Item, error) {
	out := make([]menu.Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	return out, nil
}

func (s *stubMenuRepo) ListAvailable(_ context.Context, category string) ([]menu.Item, error) {
	var out []menu.Item
	for _, it := range s.items {
		if !it.Available() {
			continue
		}
		if category != "" && it.Category != category {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *stubMenuRepo) SetImagePath(_ context.Context, id int64, path string) error {
	if _, ok := s.items[id]; !ok {
		return menu.ErrNotFound
	}
	s.imagePaths[id] = path
	return nil
}

func newMenuRouter(repo *stubMenuRepo, store *images.Store) http.Handler {
	h := &MenuHandler{Repo: repo, Images: store}
	r := chi.NewRouter()
	h.Register(r)
	h.RegisterAdmin(r)
	return r
}

func TestMenuListFiltersAvailability(t *testing.T) {
	repo := newStubMenuRepo(
		menu.Item{ID: 1, Name: "Burger", Category: "Mains", Price: decimal.RequireFromString("5.00"), Status: string(menu.StatusAvailable)},
		menu.Item{ID: 2, Name: "Soup", Category: "Starters", Price: decimal.RequireFromString("2.50"), Status: string(menu.StatusOutOfStock)},
	)
	router := newMenuRouter(repo, nil)

	rec := doJSON(t, router, http.MethodGet, "/menu", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []menu.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Burger", got[0].Name)
}

func TestMenuListCategoryFilter(t *testing.T) {
	repo := newStubMenuRepo(
		menu.Item{ID: 1, Name: "Burger", Category: "Mains", Status: string(menu.StatusAvailable)},
		menu.Item{ID: 2, Name: "Cola", Category: "Drinks", Status: string(menu.StatusAvailable)},
	)
	router := newMenuRouter(repo, nil)

	rec := doJSON(t, router, http.MethodGet, "/menu?category=Drinks", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []menu.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Cola", got[0].Name)
}

func TestMenuCreate(t *testing.T) {
	repo := newStubMenuRepo()
	router := newMenuRouter(repo, nil)

	rec := doJSON(t, router, http.MethodPost, "/menu", menuItemReq{
		Name:     "Burger",
		Category: "Mains",
		Price:    decimal.RequireFromString("5.00"),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got menu.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, string(menu.StatusAvailable), got.Status, "status defaults to Available")
}

func TestMenuCreateValidation(t *testing.T) {
	router := newMenuRouter(newStubMenuRepo(), nil)

	rec := doJSON(t, router, http.MethodPost, "/menu", menuItemReq{Price: decimal.RequireFromString("5.00")})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "name required")

	rec = doJSON(t, router, http.MethodPost, "/menu", menuItemReq{Name: "X", Price: decimal.RequireFromString("-1.00")})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "negative price")

	rec = doJSON(t, router, http.MethodPost, "/menu", menuItemReq{Name: "X", Status: "Sold Out"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown status")
}

func TestMenuUpdatePreservesImagePath(t *testing.T) {
	repo := newStubMenuRepo(menu.Item{
		ID: 1, Name: "Burger", Status: string(menu.StatusAvailable), ImagePath: "images/burger.png",
	})
	router := newMenuRouter(repo, nil)

	rec := doJSON(t, router, http.MethodPut, "/menu/1", menuItemReq{
		Name:   "Cheeseburger",
		Price:  decimal.RequireFromString("6.00"),
		Status: string(menu.StatusOutOfStock),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := repo.items[1]
	assert.Equal(t, "Cheeseburger", got.Name)
	assert.Equal(t, "images/burger.png", got.ImagePath)
}

func TestMenuDelete(t *testing.T) {
	repo := newStubMenuRepo(menu.Item{ID: 1, Name: "Burger", Status: string(menu.StatusAvailable)})
	router := newMenuRouter(repo, nil)

	rec := doJSON(t, router, http.MethodDelete, "/menu/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/menu/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMenuGetNotFound(t *testing.T) {
	router := newMenuRouter(newStubMenuRepo(), nil)

	rec := doJSON(t, router, http.MethodGet, "/menu/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMenuUploadImage(t *testing.T) {
	repo := newStubMenuRepo(menu.Item{ID: 1, Name: "Burger", Status: string(menu.StatusAvailable)})
	store := &images.Store{Dir: t.TempDir()}
	router := newMenuRouter(repo, store)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "burger.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/menu/1/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, repo.imagePaths[1], "burger.png")
}
