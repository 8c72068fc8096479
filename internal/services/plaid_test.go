package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mwhitfield/pocketbook-backend/internal/dto"
	"github.com/mwhitfield/pocketbook-backend/internal/errs"
	"github.com/mwhitfield/pocketbook-backend/internal/models"
	"github.com/mwhitfield/pocketbook-backend/pkg/helpers"
)

type stubPlaidClient struct {
	linkToken      string
	linkTokenErr   error
	itemID         string
	accessToken    string
	exchangeErr    error
	accounts       []dto.PlaidAccount
	accountsErr    error
	institution    dto.PlaidInstitution
	institutionErr error
}

func (c *stubPlaidClient) CreateLinkToken(ctx context.Context, uid string) (string, error) {
	return c.linkToken, c.linkTokenErr
}

func (c *stubPlaidClient) ExchangePublicToken(ctx context.Context, publicToken string) (string, string, error) {
	return c.itemID, c.accessToken, c.exchangeErr
}

func (c *stubPlaidClient) GetAccounts(ctx context.Context, accessToken string) ([]dto.PlaidAccount, error) {
	return c.accounts, c.accountsErr
}

func (c *stubPlaidClient) GetInstitution(ctx context.Context, institutionID string) (dto.PlaidInstitution, error) {
	return c.institution, c.institutionErr
}

type fakeBankAccountStore struct {
	accounts map[string]*models.BankAccount
}

func newFakeBankAccountStore(accounts ...*models.BankAccount) *fakeBankAccountStore {
	s := &fakeBankAccountStore{accounts: map[string]*models.BankAccount{}}
	for _, a := range accounts {
		copy := *a
		s.accounts[a.AccountID] = &copy
	}
	return s
}

func (s *fakeBankAccountStore) Upsert(ctx context.Context, account *models.BankAccount) error {
	// Keyed on (uid, external account id) like the real store.
	for id, existing := range s.accounts {
		if existing.UID == account.UID && existing.ExternalAccountID == account.ExternalAccountID {
			updated := *account
			updated.AccountID = existing.AccountID
			updated.CreatedAt = existing.CreatedAt
			s.accounts[id] = &updated
			return nil
		}
	}
	copy := *account
	s.accounts[account.AccountID] = &copy
	return nil
}

func (s *fakeBankAccountStore) Get(ctx context.Context, accountID string) (*models.BankAccount, error) {
	stored, ok := s.accounts[accountID]
	if !ok {
		return nil, errs.NewNotFoundError("bank account not found")
	}
	account := *stored
	return &account, nil
}

func (s *fakeBankAccountStore) ListByUser(ctx context.Context, uid string) ([]*models.BankAccount, error) {
	var out []*models.BankAccount
	for _, a := range s.accounts {
		if a.UID == uid {
			copy := *a
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (s *fakeBankAccountStore) Delete(ctx context.Context, accountID string) error {
	delete(s.accounts, accountID)
	return nil
}

func exchangeClient() *stubPlaidClient {
	return &stubPlaidClient{
		itemID:      "item-1",
		accessToken: "access-sandbox-123",
		accounts: []dto.PlaidAccount{
			{AccountID: "ext-1", Name: "Plaid Checking", Type: "depository", Subtype: "checking", Mask: "0000"},
			{AccountID: "ext-2", Name: "Plaid Saving", Type: "depository", Subtype: "savings", Mask: "1111"},
		},
		institution: dto.PlaidInstitution{InstitutionID: "ins_1", Name: "First Platypus Bank"},
	}
}

func TestExchangePublicToken(t *testing.T) {
	store := newFakeBankAccountStore()
	svc := NewPlaidService(exchangeClient(), store, &stubTokenizer{})

	result, err := svc.ExchangePublicToken(helpers.TestCtx(), "user-1", dto.ExchangeTokenRequest{
		PublicToken:   "public-sandbox-abc",
		InstitutionID: "ins_1",
	})
	if err != nil {
		t.Fatalf("ExchangePublicToken returned error: %v", err)
	}
	if result.ItemID != "item-1" {
		t.Fatalf("item id = %q, want item-1", result.ItemID)
	}
	if result.AccountsLinked != 2 {
		t.Fatalf("accounts linked = %d, want 2", result.AccountsLinked)
	}
	if len(store.accounts) != 2 {
		t.Fatalf("stored %d accounts, want 2", len(store.accounts))
	}

	for _, a := range store.accounts {
		if a.AccessToken == "access-sandbox-123" {
			t.Fatalf("access token stored in plaintext")
		}
		if a.AccessToken != "tok:access-sandbox-123" {
			t.Fatalf("stored access token = %q, want tokenized form", a.AccessToken)
		}
		if a.InstitutionName != "First Platypus Bank" {
			t.Fatalf("institution name = %q", a.InstitutionName)
		}
	}
}

func TestExchangePublicTokenRelinkRefreshesRow(t *testing.T) {
	store := newFakeBankAccountStore()
	svc := NewPlaidService(exchangeClient(), store, &stubTokenizer{})
	ctx := helpers.TestCtx()
	req := dto.ExchangeTokenRequest{PublicToken: "public-sandbox-abc", InstitutionID: "ins_1"}

	if _, err := svc.ExchangePublicToken(ctx, "user-1", req); err != nil {
		t.Fatalf("ExchangePublicToken returned error: %v", err)
	}
	if _, err := svc.ExchangePublicToken(ctx, "user-1", req); err != nil {
		t.Fatalf("ExchangePublicToken returned error: %v", err)
	}

	if len(store.accounts) != 2 {
		t.Fatalf("stored %d accounts after re-link, want 2", len(store.accounts))
	}
}

func TestExchangePublicTokenValidation(t *testing.T) {
	svc := NewPlaidService(exchangeClient(), newFakeBankAccountStore(), &stubTokenizer{})

	cases := []dto.ExchangeTokenRequest{
		{InstitutionID: "ins_1"},
		{PublicToken: "public-sandbox-abc"},
	}
	for i, req := range cases {
		_, err := svc.ExchangePublicToken(helpers.TestCtx(), "user-1", req)
		var validation *errs.ValidationError
		if !asErr(err, &validation) {
			t.Fatalf("case %d: error = %v, want ValidationError", i, err)
		}
	}
}

func TestExchangePublicTokenPlaidFailure(t *testing.T) {
	client := exchangeClient()
	client.exchangeErr = errors.New("INVALID_PUBLIC_TOKEN")
	store := newFakeBankAccountStore()
	svc := NewPlaidService(client, store, &stubTokenizer{})

	_, err := svc.ExchangePublicToken(helpers.TestCtx(), "user-1", dto.ExchangeTokenRequest{
		PublicToken:   "public-sandbox-abc",
		InstitutionID: "ins_1",
	})

	var external *errs.ExternalServiceError
	if !asErr(err, &external) {
		t.Fatalf("error = %v, want ExternalServiceError", err)
	}
	if external.Service != "plaid" {
		t.Fatalf("service = %q, want plaid", external.Service)
	}
	if len(store.accounts) != 0 {
		t.Fatalf("accounts stored despite exchange failure")
	}
}

func TestCreateLinkToken(t *testing.T) {
	client := exchangeClient()
	client.linkToken = "link-sandbox-xyz"
	svc := NewPlaidService(client, newFakeBankAccountStore(), &stubTokenizer{})

	token, err := svc.CreateLinkToken(helpers.TestCtx(), "user-1")
	if err != nil {
		t.Fatalf("CreateLinkToken returned error: %v", err)
	}
	if token != "link-sandbox-xyz" {
		t.Fatalf("link token = %q", token)
	}
}

func TestListLinkedAccountsExposesOnlyMask(t *testing.T) {
	store := newFakeBankAccountStore(&models.BankAccount{
		AccountID:       "acc-1",
		UID:             "user-1",
		AccessToken:     "tok:secret",
		InstitutionName: "First Platypus Bank",
		AccountName:     "Plaid Checking",
		AccountType:     "depository",
		Mask:            "0000",
	})
	svc := NewPlaidService(exchangeClient(), store, &stubTokenizer{})

	accounts, err := svc.ListLinkedAccounts(helpers.TestCtx(), "user-1")
	if err != nil {
		t.Fatalf("ListLinkedAccounts returned error: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("got %d accounts, want 1", len(accounts))
	}
	if accounts[0].AccountNumber != "0000" {
		t.Fatalf("account number = %q, want mask 0000", accounts[0].AccountNumber)
	}
	if accounts[0].BankName != "First Platypus Bank" {
		t.Fatalf("bank name = %q", accounts[0].BankName)
	}
}

func TestUnlinkAccountRejectsForeignCaller(t *testing.T) {
	store := newFakeBankAccountStore(&models.BankAccount{AccountID: "acc-1", UID: "user-1"})
	svc := NewPlaidService(exchangeClient(), store, &stubTokenizer{})

	err := svc.UnlinkAccount(helpers.TestCtx(), "other-user", "acc-1")

	var notAuthorized *errs.NotAuthorizedError
	if !asErr(err, &notAuthorized) {
		t.Fatalf("error = %v, want NotAuthorizedError", err)
	}
	if _, ok := store.accounts["acc-1"]; !ok {
		t.Fatalf("account deleted despite authorization failure")
	}
}

func TestUnlinkAccount(t *testing.T) {
	store := newFakeBankAccountStore(&models.BankAccount{AccountID: "acc-1", UID: "user-1"})
	svc := NewPlaidService(exchangeClient(), store, &stubTokenizer{})

	if err := svc.UnlinkAccount(helpers.TestCtx(), "user-1", "acc-1"); err != nil {
		t.Fatalf("UnlinkAccount returned error: %v", err)
	}
	if len(store.accounts) != 0 {
		t.Fatalf("account still stored after unlink")
	}
}
