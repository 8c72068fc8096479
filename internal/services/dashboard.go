package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mwhitfield/pocketbook-backend/internal/dto"
	"github.com/mwhitfield/pocketbook-backend/internal/models"
)

const dashboardRecentLimit = 5

type userDSStore interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type walletDSStore interface {
	ListByUser(ctx context.Context, uid string) ([]*models.Wallet, error)
}

type transactionDSStore interface {
	ListRecent(ctx context.Context, uid string, limit int) ([]models.Transaction, error)
	ListByUser(ctx context.Context, uid string) ([]models.Transaction, error)
}

type dashboardService struct {
	users   userDSStore
	wallets walletDSStore
	txs     transactionDSStore
}

func NewDashboardService(users userDSStore, wallets walletDSStore, txs transactionDSStore) *dashboardService {
	return &dashboardService{
		users:   users,
		wallets: wallets,
		txs:     txs,
	}
}

// GetDashboard assembles the landing-page aggregate: profile, total
// balance across all wallets, the five most recent transactions, and
// lifetime income/expense/savings figures.
func (s *dashboardService) GetDashboard(ctx context.Context, uid string) (*dto.DashboardResponse, error) {
	user, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	wallets, err := s.wallets.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, w := range wallets {
		total = total.Add(decimal.NewFromFloat(w.Balance))
	}

	recent, err := s.txs.ListRecent(ctx, uid, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}

	all, err := s.txs.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	income := decimal.Zero
	expenses := decimal.Zero
	for _, tx := range all {
		amount := decimal.NewFromFloat(tx.Amount)
		if tx.Type == models.TransactionIncome {
			income = income.Add(amount)
		} else {
			expenses = expenses.Add(amount)
		}
	}

	return &dto.DashboardResponse{
		User:               user,
		TotalBalance:       total.InexactFloat64(),
		RecentTransactions: recent,
		Analytics: dto.DashboardAnalytics{
			Income:   income.InexactFloat64(),
			Expenses: expenses.InexactFloat64(),
			Savings:  income.Sub(expenses).InexactFloat64(),
		},
	}, nil
}
