package dto

import (
	"time"

	"github.com/mwhitfield/pocketbook-backend/internal/errs"
	"github.com/mwhitfield/pocketbook-backend/internal/models"
)

type CreateTransactionRequest struct {
	WalletID    string     `json:"walletId"`
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

func (r CreateTransactionRequest) Validate() error {
	if r.WalletID == "" {
		return errs.NewValidationError("walletId is required")
	}
	if !models.TransactionType(r.Type).Valid() {
		return errs.NewValidationError("invalid transaction type")
	}
	if r.Category == "" {
		return errs.NewValidationError("category is required")
	}
	if r.Amount <= 0 {
		return errs.NewValidationError("amount must be greater than 0")
	}
	return nil
}

type UpdateTransactionRequest struct {
	Type        *string    `json:"type,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Amount      *float64   `json:"amount,omitempty"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

func (r UpdateTransactionRequest) Validate() error {
	if r.Type != nil && !models.TransactionType(*r.Type).Valid() {
		return errs.NewValidationError("invalid transaction type")
	}
	if r.Amount != nil && *r.Amount <= 0 {
		return errs.NewValidationError("amount must be greater than 0")
	}
	if r.Category != nil && *r.Category == "" {
		return errs.NewValidationError("category must not be empty")
	}
	return nil
}

// TransactionResult pairs a transaction with the owning wallet's
// post-operation state.
type TransactionResult struct {
	Transaction *models.Transaction `json:"transaction"`
	Wallet      WalletSummary       `json:"wallet"`
}

type WalletStats struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
	Savings  float64 `json:"savings"`
}
