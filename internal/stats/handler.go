package stats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// Handler exposes the trainer dashboard aggregates.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/stats", h.overview)
	r.Get("/stats/activity", h.activity)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.service.Overview(r.Context())
	if err != nil {
		h.logger.Error("stats overview", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ov)
}

func (h *Handler) activity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.service.Activity(r.Context())
	if err != nil {
		h.logger.Error("stats activity", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, activity)
}
