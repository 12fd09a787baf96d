package templates

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// Handler exposes routine templates to the trainer.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/templates", h.list)
	r.Post("/templates", h.create)
	r.Put("/templates/{id}", h.update)
	r.Delete("/templates/{id}", h.delete)
}

type lineRequest struct {
	ExerciseID uuid.UUID `json:"exerciseId" validate:"required"`
	Sets       string    `json:"sets"`
	Reps       string    `json:"reps"`
	Rest       string    `json:"rest"`
	Notes      string    `json:"notes"`
}

type templateRequest struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description"`
	Lines       []lineRequest `json:"exercises" validate:"dive"`
}

func (req templateRequest) toInput() CreateInput {
	in := CreateInput{Title: req.Title, Description: req.Description}
	for _, line := range req.Lines {
		in.Lines = append(in.Lines, LineInput{
			ExerciseID: line.ExerciseID,
			Sets:       line.Sets,
			Reps:       line.Reps,
			Rest:       line.Rest,
			Notes:      line.Notes,
		})
	}
	return in
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list templates", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Template{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	tpl, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		h.logger.Error("create template", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tpl)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	var req templateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	tpl, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tpl)
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
	httpx.Msg(w, http.StatusOK, "template deleted")
}
