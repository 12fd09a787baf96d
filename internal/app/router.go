package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/calibra-app/calibra/internal/auth"
	"github.com/calibra-app/calibra/internal/evaluations"
	"github.com/calibra-app/calibra/internal/exercises"
	"github.com/calibra-app/calibra/internal/feedback"
	"github.com/calibra-app/calibra/internal/notes"
	"github.com/calibra-app/calibra/internal/observability"
	"github.com/calibra-app/calibra/internal/stats"
	"github.com/calibra-app/calibra/internal/templates"
	"github.com/calibra-app/calibra/internal/users"
	"github.com/calibra-app/calibra/internal/workouts"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	Guard              *auth.Guard
	AuthHandler        *auth.Handler
	UsersHandler       *users.Handler
	ExercisesHandler   *exercises.Handler
	WorkoutsHandler    *workouts.Handler
	TemplatesHandler   *templates.Handler
	FeedbackHandler    *feedback.Handler
	NotesHandler       *notes.Handler
	EvaluationsHandler *evaluations.Handler
	StatsHandler       *stats.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with Calibra defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	if params.Metrics != nil {
		r.Use(params.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/auth", func(r chi.Router) {
		// Tighter limit on credential endpoints than the global one.
		r.Use(httprate.Limit(20, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		params.AuthHandler.MountRoutes(r, params.Guard)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(params.Guard.RequireRole(auth.RoleAdmin))
		params.UsersHandler.MountAdminRoutes(r)
		params.ExercisesHandler.MountAdminRoutes(r)
		params.WorkoutsHandler.MountAdminRoutes(r)
		params.TemplatesHandler.MountAdminRoutes(r)
		params.FeedbackHandler.MountAdminRoutes(r)
		params.NotesHandler.MountAdminRoutes(r)
		params.EvaluationsHandler.MountAdminRoutes(r)
		params.StatsHandler.MountAdminRoutes(r)
	})

	r.Route("/api/client", func(r chi.Router) {
		r.Use(params.Guard.Require())
		params.WorkoutsHandler.MountClientRoutes(r)
		params.FeedbackHandler.MountClientRoutes(r)
		params.UsersHandler.MountClientRoutes(r)
	})

	if params.Config != nil && !params.Config.S3Enabled() {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(params.Config.UploadDir)))
		r.Get("/uploads/*", func(w http.ResponseWriter, r *http.Request) {
			fileServer.ServeHTTP(w, r)
		})
	}

	return r
}
