package evaluations

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// Handler exposes body readings to the trainer.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Post("/evaluations", h.create)
	r.Get("/evaluations/{clientID}", h.listForClient)
}

type createRequest struct {
	ClientID      uuid.UUID `json:"clientId" validate:"required"`
	Type          Type      `json:"type"`
	PriorityZones []string  `json:"priorityZones"`
	Focus         Focus     `json:"focus"`
	Notes         string    `json:"notes"`
	FileURL       string    `json:"fileUrl"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	eval, err := h.service.Create(r.Context(), CreateInput{
		ClientID:      req.ClientID,
		Type:          req.Type,
		PriorityZones: req.PriorityZones,
		Focus:         req.Focus,
		Notes:         req.Notes,
		FileURL:       req.FileURL,
	})
	if err != nil {
		h.logger.Warn("create evaluation", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, eval)
}

func (h *Handler) listForClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientID"))
	if err != nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	list, err := h.service.ListForClient(r.Context(), clientID)
	if err != nil {
		h.logger.Error("list evaluations", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Evaluation{}
	}
	httpx.JSON(w, http.StatusOK, list)
}
