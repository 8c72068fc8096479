package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitfield/pocketbook-backend/internal/dto"
	"github.com/mwhitfield/pocketbook-backend/internal/errs"
	"github.com/mwhitfield/pocketbook-backend/internal/models"
	"github.com/mwhitfield/pocketbook-backend/pkg/logger"
)

// --- Dependencies (minimal interfaces scoped to this service) ---

// plaidClient is the Plaid SDK adapter surface used by this service.
type plaidClient interface {
	CreateLinkToken(ctx context.Context, uid string) (linkToken string, err error)
	ExchangePublicToken(ctx context.Context, publicToken string) (itemID string, accessToken string, err error)
	GetAccounts(ctx context.Context, accessToken string) ([]dto.PlaidAccount, error)
	GetInstitution(ctx context.Context, institutionID string) (dto.PlaidInstitution, error)
}

type bankAccountPSStore interface {
	Upsert(ctx context.Context, account *models.BankAccount) error
	Get(ctx context.Context, accountID string) (*models.BankAccount, error)
	ListByUser(ctx context.Context, uid string) ([]*models.BankAccount, error)
	Delete(ctx context.Context, accountID string) error
}

type plaidTokenizer interface {
	Tokenize(plaintext string) (string, error)
}

type plaidService struct {
	plaid     plaidClient
	accounts  bankAccountPSStore
	tokenizer plaidTokenizer
	clockNow  func() time.Time
}

func NewPlaidService(plaid plaidClient, accounts bankAccountPSStore, tokenizer plaidTokenizer) *plaidService {
	return &plaidService{
		plaid:     plaid,
		accounts:  accounts,
		tokenizer: tokenizer,
		clockNow:  time.Now,
	}
}

func (s *plaidService) CreateLinkToken(ctx context.Context, uid string) (string, error) {
	linkToken, err := s.plaid.CreateLinkToken(ctx, uid)
	if err != nil {
		return "", errs.NewExternalServiceError("plaid", err.Error(), false)
	}
	return linkToken, nil
}

// ExchangePublicToken completes a bank-linking flow: it trades the
// short-lived public token for a durable access token, pulls account and
// institution metadata, and stores one snapshot row per returned account.
// Re-linking an account the user already linked refreshes its row.
func (s *plaidService) ExchangePublicToken(ctx context.Context, uid string, req dto.ExchangeTokenRequest) (*dto.ExchangeTokenResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	itemID, accessToken, err := s.plaid.ExchangePublicToken(ctx, req.PublicToken)
	if err != nil {
		return nil, errs.NewExternalServiceError("plaid", err.Error(), false)
	}

	plaidAccounts, err := s.plaid.GetAccounts(ctx, accessToken)
	if err != nil {
		return nil, errs.NewExternalServiceError("plaid", err.Error(), false)
	}

	institution, err := s.plaid.GetInstitution(ctx, req.InstitutionID)
	if err != nil {
		return nil, errs.NewExternalServiceError("plaid", err.Error(), false)
	}

	// The access token is as sensitive as an account number; it goes to
	// storage tokenized, never raw.
	storedToken, err := s.tokenizer.Tokenize(accessToken)
	if err != nil {
		return nil, errs.NewEncryptionError("failed to tokenize access token")
	}

	now := s.clockNow()
	for _, account := range plaidAccounts {
		link := &models.BankAccount{
			AccountID:         uuid.NewString(),
			UID:               uid,
			AccessToken:       storedToken,
			ItemID:            itemID,
			ExternalAccountID: account.AccountID,
			InstitutionID:     req.InstitutionID,
			InstitutionName:   institution.Name,
			AccountName:       account.Name,
			AccountType:       account.Type,
			AccountSubtype:    account.Subtype,
			Mask:              account.Mask,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := s.accounts.Upsert(ctx, link); err != nil {
			return nil, err
		}
	}

	log := logger.FromContext(ctx)
	log.Info("bank linked",
		"item_id", itemID,
		"institution", institution.Name,
		"accounts", len(plaidAccounts))

	return &dto.ExchangeTokenResult{ItemID: itemID, AccountsLinked: len(plaidAccounts)}, nil
}

func (s *plaidService) ListLinkedAccounts(ctx context.Context, uid string) ([]dto.LinkedAccountResponse, error) {
	accounts, err := s.accounts.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.LinkedAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, dto.LinkedAccountResponse{
			ID:            a.AccountID,
			BankName:      a.InstitutionName,
			AccountName:   a.AccountName,
			AccountNumber: a.Mask,
			AccountType:   a.AccountType,
			CreatedAt:     a.CreatedAt,
		})
	}
	return resp, nil
}

func (s *plaidService) UnlinkAccount(ctx context.Context, uid, accountID string) error {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return err
	}
	if account.UID != uid {
		return errs.NewNotAuthorizedError("account does not belong to caller")
	}

	if err := s.accounts.Delete(ctx, accountID); err != nil {
		return err
	}

	log := logger.FromContext(ctx)
	log.Info("bank account unlinked", "account_id", accountID)
	return nil
}
