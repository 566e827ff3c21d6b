package httpx

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-restaurant-orders.git/internal/cart"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/menu"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/users"
)

func newCartRouter(repo *stubMenuRepo, carts *cart.Store) http.Handler {
	h := &CartHandler{Menu: repo, Carts: carts}
	r := chi.NewRouter()
	r.Use(asUser("u@example.com", users.RoleUser))
	h.Register(r)
	return r
}

func TestCartAddItem(t *testing.T) {
	repo := newStubMenuRepo(menu.Item{
		ID: 1, Name: "Burger", Price: decimal.RequireFromString("5.00"), Status: string(menu.StatusAvailable),
	})
	carts := cart.NewStore()
	router := newCartRouter(repo, carts)

	rec := doJSON(t, router, http.MethodPost, "/cart/items", addItemReq{MenuItemID: 1, Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp cartResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("10.00")))
}

func TestCartAddUnknownItem(t *testing.T) {
	router := newCartRouter(newStubMenuRepo(), cart.NewStore())

	rec := doJSON(t, router, http.MethodPost, "/cart/items", addItemReq{MenuItemID: 9, Quantity: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddOutOfStockItem(t *testing.T) {
	repo := newStubMenuRepo(menu.Item{ID: 1, Name: "Soup", Status: string(menu.StatusOutOfStock)})
	router := newCartRouter(repo, cart.NewStore())

	rec := doJSON(t, router, http.MethodPost, "/cart/items", addItemReq{MenuItemID: 1, Quantity: 1})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCartAddInvalidQuantity(t *testing.T) {
	repo := newStubMenuRepo(menu.Item{ID: 1, Name: "Burger", Status: string(menu.StatusAvailable)})
	router := newCartRouter(repo, cart.NewStore())

	for _, qty := range []int{0, -1} {
		rec := doJSON(t, router, http.MethodPost, "/cart/items", addItemReq{MenuItemID: 1, Quantity: qty})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "quantity=%d", qty)
	}
}

func TestCartClear(t *testing.T) {
	carts := cart.NewStore()
	carts.Add("u@example.com", menu.Item{ID: 1, Name: "Burger", Status: string(menu.StatusAvailable)}, 1)
	router := newCartRouter(newStubMenuRepo(), carts)

	rec := doJSON(t, router, http.MethodDelete, "/cart", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, carts.Get("u@example.com"))
}
