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

type WalletService interface {
	CreateWallet(ctx context.Context, uid string, req dto.CreateWalletRequest) (*dto.WalletResponse, error)
	ListWallets(ctx context.Context, uid string) ([]*dto.WalletResponse, error)
	GetWallet(ctx context.Context, uid, walletID string) (*dto.WalletResponse, error)
	UpdateWallet(ctx context.Context, uid, walletID string, req dto.UpdateWalletRequest) (*dto.WalletResponse, error)
	DeleteWallet(ctx context.Context, uid, walletID string) error
}

type walletHandlers struct {
	ResponseHandler response.ResponseHandler
	WalletSvc       WalletService
}

func NewWalletHandlers(deps *Deps) *walletHandlers {
	return &walletHandlers{
		ResponseHandler: deps.ResponseHandler,
		WalletSvc:       deps.WalletSvc,
	}
}

func (h *walletHandlers) WalletRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateWallet)
	r.Get("/", h.ListWallets)
	r.Route("/{walletId}", func(r chi.Router) {
		r.Get("/", h.GetWallet)
		r.Put("/", h.UpdateWallet)
		r.Delete("/", h.DeleteWallet)
	})
	return r
}

func (h *walletHandlers) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	uid := middleware.UID(r.Context())
	wallet, err := h.WalletSvc.CreateWallet(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, wallet)
}

func (h *walletHandlers) ListWallets(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	wallets, err := h.WalletSvc.ListWallets(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, wallets)
}

func (h *walletHandlers) GetWallet(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	walletID := chi.URLParam(r, "walletId")

	wallet, err := h.WalletSvc.GetWallet(r.Context(), uid, walletID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, wallet)
}

func (h *walletHandlers) UpdateWallet(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	uid := middleware.UID(r.Context())
	walletID := chi.URLParam(r, "walletId")

	wallet, err := h.WalletSvc.UpdateWallet(r.Context(), uid, walletID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, wallet)
}

func (h *walletHandlers) DeleteWallet(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	walletID := chi.URLParam(r, "walletId")

	if err := h.WalletSvc.DeleteWallet(r.Context(), uid, walletID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
