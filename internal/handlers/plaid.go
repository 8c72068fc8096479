package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mwhitfield/pocketbook-backend/internal/dto"
	"github.com/mwhitfield/pocketbook-backend/internal/errs"
	"github.com/mwhitfield/pocketbook-backend/internal/middleware"
	"github.com/mwhitfield/pocketbook-backend/internal/response"
)

type PlaidService interface {
	CreateLinkToken(ctx context.Context, uid string) (string, error)
	ExchangePublicToken(ctx context.Context, uid string, req dto.ExchangeTokenRequest) (*dto.ExchangeTokenResult, error)
	ListLinkedAccounts(ctx context.Context, uid string) ([]dto.LinkedAccountResponse, error)
	UnlinkAccount(ctx context.Context, uid, accountID string) error
}

type plaidHandlers struct {
	ResponseHandler response.ResponseHandler
	PlaidSvc        PlaidService
}

func NewPlaidHandlers(deps *Deps) *plaidHandlers {
	return &plaidHandlers{
		ResponseHandler: deps.ResponseHandler,
		PlaidSvc:        deps.PlaidSvc,
	}
}

func (h *plaidHandlers) PlaidRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/link-token", h.CreateLinkToken)
	r.Post("/exchange-token", h.ExchangeToken)
	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", h.ListAccounts)
		r.Delete("/{accountId}", h.UnlinkAccount)
	})
	return r
}

func (h *plaidHandlers) CreateLinkToken(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	linkToken, err := h.PlaidSvc.CreateLinkToken(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"linkToken": linkToken})
}

func (h *plaidHandlers) ExchangeToken(w http.ResponseWriter, r *http.Request) {
	var req dto.ExchangeTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	uid := middleware.UID(r.Context())
	result, err := h.PlaidSvc.ExchangePublicToken(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *plaidHandlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	accounts, err := h.PlaidSvc.ListLinkedAccounts(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, accounts)
}

func (h *plaidHandlers) UnlinkAccount(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	accountID := chi.URLParam(r, "accountId")

	if err := h.PlaidSvc.UnlinkAccount(r.Context(), uid, accountID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
