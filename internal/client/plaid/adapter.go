package plaidclient

import (
	"context"

	"github.com/plaid/plaid-go/v24/plaid"

	"github.com/mwhitfield/pocketbook-backend/internal/dto"
)

type Adapter struct {
	client *plaid.APIClient
}

func NewAdapter(clientID, secret string, env dto.PlaidEnvironment) *Adapter {
	cfg := plaid.NewConfiguration()
	cfg.AddDefaultHeader("PLAID-CLIENT-ID", clientID)
	cfg.AddDefaultHeader("PLAID-SECRET", secret)
	cfg.UseEnvironment(toPlaidEnv(env))

	return &Adapter{
		client: plaid.NewAPIClient(cfg),
	}
}

func (a *Adapter) CreateLinkToken(ctx context.Context, uid string) (string, error) {
	req := plaid.NewLinkTokenCreateRequest(
		"Pocketbook",
		"en",
		[]plaid.CountryCode{plaid.CountryCode("US")},
		plaid.LinkTokenCreateRequestUser{ClientUserId: uid},
	)
	req.SetProducts([]plaid.Products{plaid.PRODUCTS_AUTH, plaid.PRODUCTS_TRANSACTIONS})

	resp, _, err := a.client.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*req).Execute()
	if err != nil {
		return "", err
	}
	return resp.GetLinkToken(), nil
}

func (a *Adapter) ExchangePublicToken(ctx context.Context, publicToken string) (itemID, accessToken string, err error) {
	req := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, _, err := a.client.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*req).Execute()
	if err != nil {
		return "", "", err
	}
	return resp.GetItemId(), resp.GetAccessToken(), nil
}

func (a *Adapter) GetAccounts(ctx context.Context, accessToken string) ([]dto.PlaidAccount, error) {
	req := plaid.NewAccountsGetRequest(accessToken)
	resp, _, err := a.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*req).Execute()
	if err != nil {
		return nil, err
	}

	raw := resp.GetAccounts()
	accounts := make([]dto.PlaidAccount, 0, len(raw))
	for _, acct := range raw {
		accounts = append(accounts, dto.PlaidAccount{
			AccountID: acct.GetAccountId(),
			Name:      acct.GetName(),
			Type:      string(acct.GetType()),
			Subtype:   string(acct.GetSubtype()),
			Mask:      acct.GetMask(),
		})
	}
	return accounts, nil
}

func (a *Adapter) GetInstitution(ctx context.Context, institutionID string) (dto.PlaidInstitution, error) {
	req := plaid.NewInstitutionsGetByIdRequest(institutionID, []plaid.CountryCode{plaid.CountryCode("US")})
	resp, _, err := a.client.PlaidApi.InstitutionsGetById(ctx).InstitutionsGetByIdRequest(*req).Execute()
	if err != nil {
		return dto.PlaidInstitution{}, err
	}

	inst := resp.GetInstitution()
	return dto.PlaidInstitution{
		InstitutionID: inst.GetInstitutionId(),
		Name:          inst.GetName(),
	}, nil
}

func toPlaidEnv(env dto.PlaidEnvironment) plaid.Environment {
	switch env {
	case dto.PlaidSandbox:
		return plaid.Sandbox
	case dto.PlaidDevelopment:
		return plaid.Development
	default: // dto.PlaidProduction
		return plaid.Production
	}
}
