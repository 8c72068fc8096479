package services

import (
	"context"
	"testing"
	"time"

	"github.com/mwhitfield/pocketbook-backend/internal/errs"
	"github.com/mwhitfield/pocketbook-backend/internal/models"
	"github.com/mwhitfield/pocketbook-backend/pkg/helpers"
)

type fakeDashboardTxStore struct {
	txs []models.Transaction
}

func (s *fakeDashboardTxStore) ListRecent(ctx context.Context, uid string, limit int) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range s.txs {
		if tx.UID != uid {
			continue
		}
		out = append(out, tx)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeDashboardTxStore) ListByUser(ctx context.Context, uid string) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range s.txs {
		if tx.UID == uid {
			out = append(out, tx)
		}
	}
	return out, nil
}

func dashboardTx(txType models.TransactionType, amount float64) models.Transaction {
	return models.Transaction{
		TransactionID: "tx-" + string(txType),
		WalletID:      "wallet-1",
		UID:           "user-1",
		Type:          txType,
		Category:      "general",
		Amount:        amount,
		Date:          time.Now(),
	}
}

func TestGetDashboard(t *testing.T) {
	users := newFakeUserStore(&models.User{UID: "user-1", Email: "jo@example.com", Name: "Jo"})
	wallets := newFakeWalletStore(
		&models.Wallet{WalletID: "wallet-1", UID: "user-1", Balance: 100.10},
		&models.Wallet{WalletID: "wallet-2", UID: "user-1", Balance: 200.20},
		&models.Wallet{WalletID: "wallet-3", UID: "other-user", Balance: 999},
	)
	txs := &fakeDashboardTxStore{txs: []models.Transaction{
		dashboardTx(models.TransactionIncome, 400),
		dashboardTx(models.TransactionExpense, 60),
		dashboardTx(models.TransactionTransfer, 40),
	}}
	svc := NewDashboardService(users, wallets, txs)

	resp, err := svc.GetDashboard(helpers.TestCtx(), "user-1")
	if err != nil {
		t.Fatalf("GetDashboard returned error: %v", err)
	}
	if resp.User.Name != "Jo" {
		t.Fatalf("user name = %q, want Jo", resp.User.Name)
	}
	if resp.TotalBalance != 300.30 {
		t.Fatalf("total balance = %v, want 300.30", resp.TotalBalance)
	}
	if len(resp.RecentTransactions) != 3 {
		t.Fatalf("got %d recent transactions, want 3", len(resp.RecentTransactions))
	}
	if resp.Analytics.Income != 400 {
		t.Fatalf("income = %v, want 400", resp.Analytics.Income)
	}
	if resp.Analytics.Expenses != 100 {
		t.Fatalf("expenses = %v, want 100", resp.Analytics.Expenses)
	}
	if resp.Analytics.Savings != 300 {
		t.Fatalf("savings = %v, want 300", resp.Analytics.Savings)
	}
}

func TestGetDashboardCapsRecentTransactions(t *testing.T) {
	users := newFakeUserStore(&models.User{UID: "user-1", Name: "Jo"})
	wallets := newFakeWalletStore()
	txStore := &fakeDashboardTxStore{}
	for i := 0; i < 8; i++ {
		txStore.txs = append(txStore.txs, dashboardTx(models.TransactionIncome, float64(i+1)))
	}
	svc := NewDashboardService(users, wallets, txStore)

	resp, err := svc.GetDashboard(helpers.TestCtx(), "user-1")
	if err != nil {
		t.Fatalf("GetDashboard returned error: %v", err)
	}
	if len(resp.RecentTransactions) != 5 {
		t.Fatalf("got %d recent transactions, want 5", len(resp.RecentTransactions))
	}
}

func TestGetDashboardUnknownUser(t *testing.T) {
	svc := NewDashboardService(newFakeUserStore(), newFakeWalletStore(), &fakeDashboardTxStore{})

	_, err := svc.GetDashboard(helpers.TestCtx(), "missing")

	var notFound *errs.NotFoundError
	if !asErr(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}
