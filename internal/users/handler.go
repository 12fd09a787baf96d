package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/calibra-app/calibra/internal/auth"
	"github.com/calibra-app/calibra/internal/platform/httpx"
	"github.com/calibra-app/calibra/internal/storage"
)

// Handler manages user management and avatar endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	store     storage.Store
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, store storage.Store) *Handler {
	return &Handler{logger: logger, service: service, store: store, validator: validator.New()}
}

// MountAdminRoutes registers trainer-side routes; the admin guard is applied
// by the router group.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/users", h.listClients)
	r.Post("/users", h.createUser)
	r.Get("/users/{id}", h.getUser)
	r.Put("/users/{id}", h.updateUser)
	r.Delete("/users/{id}", h.deleteUser)
	r.Post("/users/{id}/recovery-code", h.issueRecoveryCode)
	r.Post("/avatar", h.uploadAvatar)
}

// MountClientRoutes registers the routes available to any authenticated user.
func (h *Handler) MountClientRoutes(r chi.Router) {
	r.Post("/avatar", h.uploadAvatar)
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.ListClients(r.Context())
	if err != nil {
		h.logger.Error("list clients", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if clients == nil {
		clients = []auth.User{}
	}
	httpx.JSON(w, http.StatusOK, clients)
}

type createUserRequest struct {
	Name    string       `json:"name" validate:"required"`
	Surname string       `json:"surname" validate:"required"`
	Email   string       `json:"email" validate:"required,email"`
	Phone   string       `json:"phone"`
	Profile auth.Profile `json:"profile"`
}

type createUserResponse struct {
	User       *auth.User `json:"user"`
	InviteCode string     `json:"inviteCode"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	user, code, err := h.service.Create(r.Context(), CreateInput{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Phone:   req.Phone,
		Profile: req.Profile,
	})
	if err != nil {
		h.logger.Warn("create user", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, createUserResponse{User: user, InviteCode: code})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Name        *string   `json:"name"`
	Surname     *string   `json:"surname"`
	Email       *string   `json:"email" validate:"omitempty,email"`
	Phone       *string   `json:"phone"`
	Limitations *[]string `json:"limitations"`
	Objectives  *[]string `json:"objectives"`
	Status      *string   `json:"status"`
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	var req updateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	user, err := h.service.Update(r.Context(), id, UpdateInput{
		Name:        req.Name,
		Surname:     req.Surname,
		Email:       req.Email,
		Phone:       req.Phone,
		Limitations: req.Limitations,
		Objectives:  req.Objectives,
		Status:      req.Status,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Msg(w, http.StatusOK, "user deleted")
}

func (h *Handler) issueRecoveryCode(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	code, err := h.service.IssueRecoveryCode(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"recoveryCode": code})
}

func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxUploadBytes)
	file, header, err := r.FormFile("avatar")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Upload", "missing avatar file")
		return
	}
	defer file.Close()

	key, err := storage.NewKey(header.Filename)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Upload", err.Error())
		return
	}

	url, err := h.store.Save(r.Context(), key, storage.ContentTypeFor(key), file)
	if err != nil {
		h.logger.Error("save avatar", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.SetAvatar(r.Context(), identity.ID, url); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"msg": "avatar updated", "avatar": url})
}
