package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mwhitfield/pocketbook-backend/internal/dto"
	"github.com/mwhitfield/pocketbook-backend/internal/errs"
	"github.com/mwhitfield/pocketbook-backend/internal/middleware"
	"github.com/mwhitfield/pocketbook-backend/internal/models"
	"github.com/mwhitfield/pocketbook-backend/internal/response"
)

type UserService interface {
	Register(ctx context.Context, uid string, req dto.RegisterUserRequest) (*models.User, error)
	GetProfile(ctx context.Context, uid string) (*models.User, error)
	UpdateProfile(ctx context.Context, uid string, req dto.UpdateUserRequest) (*models.User, error)
}

type userHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
}

func NewUserHandlers(deps *Deps) *userHandlers {
	return &userHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
	}
}

func (h *userHandlers) UserRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Register)
	r.Get("/me", h.GetProfile)
	r.Patch("/me", h.UpdateProfile)
	return r
}

func (h *userHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	uid := middleware.UID(r.Context())
	user, err := h.UserSvc.Register(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, user)
}

func (h *userHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	user, err := h.UserSvc.GetProfile(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, user)
}

func (h *userHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	uid := middleware.UID(r.Context())
	user, err := h.UserSvc.UpdateProfile(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, user)
}
