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

type TransactionService interface {
	CreateTransaction(ctx context.Context, uid string, req dto.CreateTransactionRequest) (*dto.TransactionResult, error)
	UpdateTransaction(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*dto.TransactionResult, error)
	DeleteTransaction(ctx context.Context, uid, transactionID string) (*dto.WalletSummary, error)
	ListByWallet(ctx context.Context, uid, walletID string) ([]models.Transaction, error)
	ListRecent(ctx context.Context, uid string) ([]models.Transaction, error)
	Stats(ctx context.Context, uid, walletID string) (*dto.WalletStats, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  TransactionService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateTransaction)
	r.Get("/recent", h.ListRecent)
	r.Route("/wallet/{walletId}", func(r chi.Router) {
		r.Get("/", h.ListByWallet)
		r.Get("/stats", h.Stats)
	})
	r.Route("/{transactionId}", func(r chi.Router) {
		r.Put("/", h.UpdateTransaction)
		r.Delete("/", h.DeleteTransaction)
	})
	return r
}

func (h *transactionHandlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	uid := middleware.UID(r.Context())
	result, err := h.TransactionSvc.CreateTransaction(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, result)
}

func (h *transactionHandlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	uid := middleware.UID(r.Context())
	transactionID := chi.URLParam(r, "transactionId")

	result, err := h.TransactionSvc.UpdateTransaction(r.Context(), uid, transactionID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *transactionHandlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	transactionID := chi.URLParam(r, "transactionId")

	wallet, err := h.TransactionSvc.DeleteTransaction(r.Context(), uid, transactionID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]any{"wallet": wallet})
}

func (h *transactionHandlers) ListByWallet(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	walletID := chi.URLParam(r, "walletId")

	txs, err := h.TransactionSvc.ListByWallet(r.Context(), uid, walletID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, txs)
}

func (h *transactionHandlers) ListRecent(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	txs, err := h.TransactionSvc.ListRecent(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, txs)
}

func (h *transactionHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	walletID := chi.URLParam(r, "walletId")

	stats, err := h.TransactionSvc.Stats(r.Context(), uid, walletID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, stats)
}
