package workouts

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/calibra-app/calibra/internal/auth"
	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// Handler exposes workout assignment to the trainer and each client's own
// plan to the client.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Post("/workouts", h.create)
	r.Post("/workouts/from-template", h.fromTemplate)
	r.Get("/workouts/client/{clientID}", h.listForClient)
	r.Delete("/workouts/{id}", h.delete)
}

func (h *Handler) MountClientRoutes(r chi.Router) {
	r.Get("/workouts", h.listOwn)
}

type lineRequest struct {
	ExerciseID uuid.UUID `json:"exerciseId" validate:"required"`
	Sets       string    `json:"sets"`
	Reps       string    `json:"reps"`
	Rest       string    `json:"rest"`
	Notes      string    `json:"notes"`
}

type createRequest struct {
	ClientID  uuid.UUID     `json:"clientId" validate:"required"`
	Title     string        `json:"title" validate:"required"`
	Exercises []lineRequest `json:"exercises" validate:"dive"`
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
	in := CreateInput{ClientID: req.ClientID, Title: req.Title}
	for _, line := range req.Exercises {
		in.Lines = append(in.Lines, LineInput{
			ExerciseID: line.ExerciseID,
			Sets:       line.Sets,
			Reps:       line.Reps,
			Rest:       line.Rest,
			Notes:      line.Notes,
		})
	}
	workout, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.logger.Error("create workout", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, workout)
}

type fromTemplateRequest struct {
	ClientID   uuid.UUID `json:"clientId" validate:"required"`
	TemplateID uuid.UUID `json:"templateId" validate:"required"`
}

func (h *Handler) fromTemplate(w http.ResponseWriter, r *http.Request) {
	var req fromTemplateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	workout, err := h.service.FromTemplate(r.Context(), req.ClientID, req.TemplateID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, workout)
}

func (h *Handler) listForClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientID"))
	if err != nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	h.respondList(w, r, clientID)
}

// listOwn serves the authenticated client their assigned plan.
func (h *Handler) listOwn(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	h.respondList(w, r, identity.ID)
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, clientID uuid.UUID) {
	list, err := h.service.ListForClient(r.Context(), clientID)
	if err != nil {
		h.logger.Error("list workouts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Workout{}
	}
	httpx.JSON(w, http.StatusOK, list)
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
	httpx.Msg(w, http.StatusOK, "workout deleted")
}
