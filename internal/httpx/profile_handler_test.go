package httpx

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-restaurant-orders.git/internal/users"
)

func newProfileRouter(repo *stubUsersRepo) http.Handler {
	h := &ProfileHandler{Users: repo}
	r := chi.NewRouter()
	r.Use(asUser("u@example.com", users.RoleUser))
	h.Register(r)
	return r
}

func TestProfileGet(t *testing.T) {
	repo := &stubUsersRepo{authUser: users.User{
		Name: "Test User", Email: "u@example.com", Role: users.RoleUser, Mobile: "555-0100",
	}}
	router := newProfileRouter(repo)

	rec := doJSON(t, router, http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got users.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Test User", got.Name)
	assert.Equal(t, "555-0100", got.Mobile)
}

func TestProfileUpdate(t *testing.T) {
	repo := &stubUsersRepo{}
	router := newProfileRouter(repo)

	rec := doJSON(t, router, http.MethodPut, "/profile", updateProfileReq{
		Name: "New Name", Mobile: "555-0199", Address: "1 Main St",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, map[string]string{
		"email": "u@example.com", "name": "New Name", "mobile": "555-0199", "address": "1 Main St",
	}, repo.updated)
}

func TestProfileUpdateRequiresName(t *testing.T) {
	repo := &stubUsersRepo{}
	router := newProfileRouter(repo)

	rec := doJSON(t, router, http.MethodPut, "/profile", updateProfileReq{Mobile: "555-0199"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, repo.updated)
}
