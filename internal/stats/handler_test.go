package stats

import (
	"encoding/json"
	"io"
	"log/slog"
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

func newStatsRouter(t *testing.T, repo RepositoryPort) (*chi.Mux, string) {
	t.Helper()

	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	guard := auth.NewGuard(tokens)
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)),
		newTestService(t, repo))

	router := chi.NewRouter()
	router.Route("/api/admin", func(r chi.Router) {
		r.Use(guard.RequireRole(auth.RoleAdmin))
		handler.MountAdminRoutes(r)
	})

	token, err := tokens.Issue(uuid.New(), auth.RoleAdmin)
	require.NoError(t, err)
	return router, token
}

func TestOverviewEndpoint(t *testing.T) {
	repo := &mockRepo{overview: Overview{TotalClients: 4, TotalExercises: 20, ActiveWorkouts: 6, RecentFeedback: 2}}
	router, token := newStatsRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set(auth.TokenHeader, token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var ov Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ov))
	assert.Equal(t, 4, ov.TotalClients)
	assert.Equal(t, 2, ov.RecentFeedback)
}

func TestActivityEndpoint(t *testing.T) {
	repo := &mockRepo{activity: Activity{
		RecentFeedbacks: []ActivityEntry{{ID: uuid.New(), ClientName: "Marta", WorkoutTitle: "Fase 1", RPE: 8}},
		RPETrend:        []RPEPoint{{RPE: 8}},
	}}
	router, token := newStatsRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats/activity", nil)
	req.Header.Set(auth.TokenHeader, token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var activity Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activity))
	require.Len(t, activity.RecentFeedbacks, 1)
	assert.Equal(t, "Marta", activity.RecentFeedbacks[0].ClientName)
}

func TestStatsRequireAdmin(t *testing.T) {
	router, _ := newStatsRouter(t, &mockRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
