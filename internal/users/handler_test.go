package users

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calibra-app/calibra/internal/auth"
)

type memStore struct {
	saved map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{saved: make(map[string][]byte)}
}

func (m *memStore) Save(_ context.Context, key, _ string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.saved[key] = data
	return "uploads/" + key, nil
}

type usersFixture struct {
	router *chi.Mux
	repo   *mockRepository
	store  *memStore
	tokens *auth.TokenManager
}

func newUsersFixture(t *testing.T) *usersFixture {
	t.Helper()

	repo := newMockRepository()
	store := newMemStore()
	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	guard := auth.NewGuard(tokens)
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), NewService(repo), store)

	router := chi.NewRouter()
	router.Route("/api/admin", func(r chi.Router) {
		r.Use(guard.RequireRole(auth.RoleAdmin))
		handler.MountAdminRoutes(r)
	})
	router.Route("/api/client", func(r chi.Router) {
		r.Use(guard.Require())
		handler.MountClientRoutes(r)
	})

	return &usersFixture{router: router, repo: repo, store: store, tokens: tokens}
}

func (f *usersFixture) adminToken(t *testing.T) string {
	t.Helper()
	token, err := f.tokens.Issue(uuid.New(), auth.RoleAdmin)
	require.NoError(t, err)
	return token
}

func (f *usersFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	f := newUsersFixture(t)

	rec := f.do(t, http.MethodGet, "/api/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	clientToken, err := f.tokens.Issue(uuid.New(), auth.RoleClient)
	require.NoError(t, err)
	rec = f.do(t, http.MethodGet, "/api/admin/users", clientToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateUserReturnsInviteCode(t *testing.T) {
	f := newUsersFixture(t)

	rec := f.do(t, http.MethodPost, "/api/admin/users", f.adminToken(t), map[string]any{
		"name":    "Marta",
		"surname": "Gil",
		"email":   "marta@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User       auth.User `json:"user"`
		InviteCode string    `json:"inviteCode"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.InviteCode, 6)
	assert.Equal(t, auth.RoleClient, resp.User.Role)
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestCreateUserValidation(t *testing.T) {
	f := newUsersFixture(t)

	rec := f.do(t, http.MethodPost, "/api/admin/users", f.adminToken(t), map[string]any{
		"name":  "Marta",
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newUsersFixture(t)
	token := f.adminToken(t)
	body := map[string]any{"name": "Marta", "surname": "Gil", "email": "dup@example.com"}

	rec := f.do(t, http.MethodPost, "/api/admin/users", token, body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/admin/users", token, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListUsers(t *testing.T) {
	f := newUsersFixture(t)
	token := f.adminToken(t)

	rec := f.do(t, http.MethodGet, "/api/admin/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	f.do(t, http.MethodPost, "/api/admin/users", token, map[string]any{
		"name": "Marta", "surname": "Gil", "email": "marta@example.com",
	})
	rec = f.do(t, http.MethodGet, "/api/admin/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []auth.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "marta@example.com", list[0].Email)
}

func TestGetUpdateDeleteUser(t *testing.T) {
	f := newUsersFixture(t)
	token := f.adminToken(t)

	rec := f.do(t, http.MethodPost, "/api/admin/users", token, map[string]any{
		"name": "Marta", "surname": "Gil", "email": "marta@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		User auth.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	base := "/api/admin/users/" + created.User.ID.String()

	rec = f.do(t, http.MethodGet, base, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPut, base, token, map[string]any{
		"phone":  "600111222",
		"status": auth.StatusActive,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated auth.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "600111222", updated.Phone)
	assert.Equal(t, auth.StatusActive, updated.Profile.Status)
	assert.Equal(t, "Marta", updated.Name)

	rec = f.do(t, http.MethodDelete, base, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, base, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUnknownUserNotFound(t *testing.T) {
	f := newUsersFixture(t)

	rec := f.do(t, http.MethodPut, "/api/admin/users/"+uuid.NewString(), f.adminToken(t), map[string]any{
		"phone": "600111222",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/admin/users/not-a-uuid", f.adminToken(t), map[string]any{
		"phone": "600111222",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecoveryCodeEndpoint(t *testing.T) {
	f := newUsersFixture(t)
	token := f.adminToken(t)

	rec := f.do(t, http.MethodPost, "/api/admin/users", token, map[string]any{
		"name": "Marta", "surname": "Gil", "email": "marta@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		User auth.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = f.do(t, http.MethodPost, "/api/admin/users/"+created.User.ID.String()+"/recovery-code", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp["recoveryCode"], 6)

	rec = f.do(t, http.MethodPost, "/api/admin/users/"+uuid.NewString()+"/recovery-code", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAvatarUpload(t *testing.T) {
	f := newUsersFixture(t)

	userID := uuid.New()
	f.repo.users[userID] = &auth.User{ID: userID, Email: "marta@example.com", Role: auth.RoleClient}
	token, err := f.tokens.Issue(userID, auth.RoleClient)
	require.NoError(t, err)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", "face.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/client/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(auth.TokenHeader, token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, resp["avatar"], f.repo.users[userID].Avatar)
	require.Len(t, f.store.saved, 1)
	for key := range f.store.saved {
		assert.Equal(t, []byte("png-bytes"), f.store.saved[key])
	}
}

func TestAvatarUploadRejectsUnsupportedExtension(t *testing.T) {
	f := newUsersFixture(t)

	userID := uuid.New()
	f.repo.users[userID] = &auth.User{ID: userID, Email: "marta@example.com", Role: auth.RoleClient}
	token, err := f.tokens.Issue(userID, auth.RoleClient)
	require.NoError(t, err)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", "payload.exe")
	require.NoError(t, err)
	fmt.Fprint(part, "not-an-image")
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/client/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(auth.TokenHeader, token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.store.saved)
}
