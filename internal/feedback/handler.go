package feedback

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/calibra-app/calibra/internal/auth"
	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// Handler exposes feedback submission to clients and history to the trainer.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/feedback/{clientID}", h.listForClient)
}

func (h *Handler) MountClientRoutes(r chi.Router) {
	r.Post("/feedback", h.create)
	r.Get("/feedback", h.listOwn)
}

type entryRequest struct {
	ExerciseID   uuid.UUID `json:"exerciseId" validate:"required"`
	ExerciseName string    `json:"exerciseName"`
	WeightUsed   string    `json:"weightUsed"`
}

type createRequest struct {
	WorkoutID uuid.UUID      `json:"workoutId" validate:"required"`
	RPE       int            `json:"rpe" validate:"required,min=1,max=10"`
	Comments  string         `json:"comments"`
	Exercises []entryRequest `json:"exercisesData" validate:"dive"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	in := CreateInput{
		ClientID:  identity.ID,
		WorkoutID: req.WorkoutID,
		RPE:       req.RPE,
		Comments:  req.Comments,
	}
	for _, entry := range req.Exercises {
		in.Entries = append(in.Entries, EntryInput{
			ExerciseID:   entry.ExerciseID,
			ExerciseName: entry.ExerciseName,
			WeightUsed:   entry.WeightUsed,
		})
	}
	fb, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.logger.Error("create feedback", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, fb)
}

func (h *Handler) listOwn(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	h.respondList(w, r, identity.ID)
}

func (h *Handler) listForClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientID"))
	if err != nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	h.respondList(w, r, clientID)
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, clientID uuid.UUID) {
	list, err := h.service.ListForClient(r.Context(), clientID)
	if err != nil {
		h.logger.Error("list feedback", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Feedback{}
	}
	httpx.JSON(w, http.StatusOK, list)
}
