package exercises

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// Handler exposes the exercise catalogue to the trainer.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/exercises", h.list)
	r.Post("/exercises", h.create)
	r.Delete("/exercises/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list exercises", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Exercise{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

type createRequest struct {
	Name         string   `json:"name" validate:"required"`
	Category     Category `json:"category"`
	VideoURL     string   `json:"videoUrl" validate:"omitempty,url"`
	Instructions string   `json:"instructions"`
	Tags         []string `json:"tags"`
	Image        string   `json:"image"`
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
	if req.Category != "" && !req.Category.Valid() {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	ex, err := h.service.Create(r.Context(), CreateInput{
		Name:         req.Name,
		Category:     req.Category,
		VideoURL:     req.VideoURL,
		Instructions: req.Instructions,
		Tags:         req.Tags,
		Image:        req.Image,
	})
	if err != nil {
		h.logger.Error("create exercise", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ex)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Msg(w, http.StatusOK, "exercise deleted")
}
