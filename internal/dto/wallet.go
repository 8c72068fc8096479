package dto

import (
	"time"

	"github.com/mwhitfield/pocketbook-backend/internal/errs"
	"github.com/mwhitfield/pocketbook-backend/internal/models"
)

type CreateWalletRequest struct {
	Name        string   `json:"name"`
	Balance     *float64 `json:"balance,omitempty"`
	Currency    string   `json:"currency"`
	BankAccount string   `json:"bankAccount,omitempty"`
}

func (r CreateWalletRequest) Validate() error {
	if r.Balance != nil && *r.Balance < 0 {
		return errs.NewValidationError("initial balance must not be negative")
	}
	return nil
}

// UpdateWalletRequest is a partial update. Balance is deliberately absent:
// the only path that mutates a balance is the transaction service.
type UpdateWalletRequest struct {
	Name        *string `json:"name,omitempty"`
	Currency    *string `json:"currency,omitempty"`
	BankAccount *string `json:"bankAccount,omitempty"`
}

func (r UpdateWalletRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return errs.NewValidationError("name must not be empty")
	}
	if r.Name == nil && r.Currency == nil && r.BankAccount == nil {
		return errs.NewValidationError("no updatable fields provided")
	}
	return nil
}

// WalletResponse is the display form of a wallet. MaskedBankAccount is
// derived by detokenizing the stored token and re-masking; MaskDegraded
// marks the placeholder used when that detokenization failed.
type WalletResponse struct {
	WalletID          string    `json:"walletId"`
	Name              string    `json:"name"`
	Balance           float64   `json:"balance"`
	Currency          string    `json:"currency"`
	MaskedBankAccount string    `json:"maskedBankAccount,omitempty"`
	MaskDegraded      bool      `json:"maskDegraded,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// WalletSummary accompanies transaction responses so clients can show the
// post-operation balance without a second fetch.
type WalletSummary struct {
	WalletID string  `json:"walletId"`
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

func NewWalletSummary(w *models.Wallet) WalletSummary {
	return WalletSummary{
		WalletID: w.WalletID,
		Name:     w.Name,
		Balance:  w.Balance,
		Currency: w.Currency,
	}
}
