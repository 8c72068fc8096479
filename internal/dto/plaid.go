package dto

import (
	"time"

	"github.com/mwhitfield/pocketbook-backend/internal/errs"
)

type PlaidEnvironment string

const (
	PlaidSandbox     PlaidEnvironment = "sandbox"
	PlaidDevelopment PlaidEnvironment = "development"
	PlaidProduction  PlaidEnvironment = "production"
)

// PlaidAccount is the adapter-level view of one account returned by the
// aggregation service.
type PlaidAccount struct {
	AccountID string
	Name      string
	Type      string
	Subtype   string
	Mask      string
}

// PlaidInstitution is the adapter-level view of an institution lookup.
type PlaidInstitution struct {
	InstitutionID string
	Name          string
}

type ExchangeTokenRequest struct {
	PublicToken   string `json:"publicToken"`
	InstitutionID string `json:"institutionId"`
}

func (r ExchangeTokenRequest) Validate() error {
	if r.PublicToken == "" {
		return errs.NewValidationError("publicToken is required")
	}
	if r.InstitutionID == "" {
		return errs.NewValidationError("institutionId is required")
	}
	return nil
}

type ExchangeTokenResult struct {
	ItemID         string `json:"itemId"`
	AccountsLinked int    `json:"accountsLinked"`
}

// LinkedAccountResponse is the display form of a stored bank link; only
// the institution-provided mask is exposed, never tokens.
type LinkedAccountResponse struct {
	ID            string    `json:"id"`
	BankName      string    `json:"bankName"`
	AccountName   string    `json:"accountName"`
	AccountNumber string    `json:"accountNumber,omitempty"`
	AccountType   string    `json:"accountType"`
	CreatedAt     time.Time `json:"createdAt"`
}
