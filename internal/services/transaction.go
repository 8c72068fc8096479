package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mwhitfield/pocketbook-backend/internal/dto"
	"github.com/mwhitfield/pocketbook-backend/internal/errs"
	"github.com/mwhitfield/pocketbook-backend/internal/models"
	"github.com/mwhitfield/pocketbook-backend/pkg/helpers"
	"github.com/mwhitfield/pocketbook-backend/pkg/logger"
)

const recentTransactionLimit = 10

// --- Dependencies (minimal interfaces scoped to this service) ---

// transactionTSStore supplies atomicity: each mutate callback runs against
// freshly read documents inside one storage transaction, and a returned
// error aborts with nothing written.
type transactionTSStore interface {
	CreateAtomic(ctx context.Context, tx *models.Transaction, mutate func(w *models.Wallet) error) (*models.Wallet, error)
	UpdateAtomic(ctx context.Context, transactionID string, mutate func(tx *models.Transaction, w *models.Wallet) error) (*models.Transaction, *models.Wallet, error)
	DeleteAtomic(ctx context.Context, transactionID string, mutate func(tx *models.Transaction, w *models.Wallet) error) (*models.Wallet, error)
	ListByWallet(ctx context.Context, walletID string) ([]models.Transaction, error)
	ListRecent(ctx context.Context, uid string, limit int) ([]models.Transaction, error)
}

type walletTSStore interface {
	Get(ctx context.Context, walletID string) (*models.Wallet, error)
}

type transactionService struct {
	txs      transactionTSStore
	wallets  walletTSStore
	clockNow func() time.Time
}

func NewTransactionService(txs transactionTSStore, wallets walletTSStore) *transactionService {
	return &transactionService{
		txs:      txs,
		wallets:  wallets,
		clockNow: time.Now,
	}
}

// CreateTransaction records a movement and applies its signed amount to
// the owning wallet's balance. An expense larger than the current balance
// fails before anything is written.
func (s *transactionService) CreateTransaction(ctx context.Context, uid string, req dto.CreateTransactionRequest) (*dto.TransactionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.clockNow()
	tx := &models.Transaction{
		TransactionID: uuid.NewString(),
		WalletID:      req.WalletID,
		UID:           uid,
		Type:          models.TransactionType(req.Type),
		Category:      req.Category,
		Amount:        req.Amount,
		Description:   req.Description,
		Date:          helpers.ValueOr(req.Date, now),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	wallet, err := s.txs.CreateAtomic(ctx, tx, func(w *models.Wallet) error {
		if w.UID != uid {
			return errs.NewNotAuthorizedError("wallet does not belong to caller")
		}
		if tx.Type == models.TransactionExpense && lessThan(w.Balance, tx.Amount) {
			return errs.NewInsufficientFundsError("insufficient funds in wallet", w.Balance)
		}
		w.Balance = applyDelta(w.Balance, signedAmount(tx.Type, tx.Amount))
		return nil
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("transaction created",
		"transaction_id", tx.TransactionID,
		"wallet_id", tx.WalletID,
		"type", tx.Type)

	return &dto.TransactionResult{Transaction: tx, Wallet: dto.NewWalletSummary(wallet)}, nil
}

// UpdateTransaction merges the requested fields into the stored record and
// rebalances the wallet as "undo old, apply new" in one atomic unit. The
// insufficient-funds check runs against the reversed balance and the
// merged type/amount, so a partial update (say, type only) is handled the
// same as a full one.
func (s *transactionService) UpdateTransaction(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*dto.TransactionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, wallet, err := s.txs.UpdateAtomic(ctx, transactionID, func(tx *models.Transaction, w *models.Wallet) error {
		if tx.UID != uid {
			return errs.NewNotAuthorizedError("transaction does not belong to caller")
		}

		reversed := applyDelta(w.Balance, signedAmount(tx.Type, tx.Amount).Neg())

		newType := tx.Type
		if req.Type != nil {
			newType = models.TransactionType(*req.Type)
		}
		newAmount := tx.Amount
		if req.Amount != nil {
			newAmount = *req.Amount
		}

		if newType == models.TransactionExpense && lessThan(reversed, newAmount) {
			// Abort before any merge; the caller sees the pre-reversal
			// balance, which is the stored state.
			return errs.NewInsufficientFundsError("insufficient funds in wallet for this update", w.Balance)
		}

		tx.Type = newType
		tx.Amount = newAmount
		if req.Category != nil {
			tx.Category = *req.Category
		}
		if req.Description != nil {
			tx.Description = *req.Description
		}
		if req.Date != nil {
			tx.Date = *req.Date
		}

		w.Balance = applyDelta(reversed, signedAmount(newType, newAmount))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.TransactionResult{Transaction: tx, Wallet: dto.NewWalletSummary(wallet)}, nil
}

// DeleteTransaction reverses the record's effect on the wallet balance and
// removes it. A deletion is a correction of the books, so it is allowed
// even when reversing an income drives the balance negative; the negative
// number is the true state and is logged.
func (s *transactionService) DeleteTransaction(ctx context.Context, uid, transactionID string) (*dto.WalletSummary, error) {
	wallet, err := s.txs.DeleteAtomic(ctx, transactionID, func(tx *models.Transaction, w *models.Wallet) error {
		if tx.UID != uid {
			return errs.NewNotAuthorizedError("transaction does not belong to caller")
		}
		w.Balance = applyDelta(w.Balance, signedAmount(tx.Type, tx.Amount).Neg())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if wallet.Balance < 0 {
		log := logger.FromContext(ctx)
		log.Warn("wallet balance negative after deletion",
			"wallet_id", wallet.WalletID,
			"balance", wallet.Balance)
	}

	summary := dto.NewWalletSummary(wallet)
	return &summary, nil
}

func (s *transactionService) ListByWallet(ctx context.Context, uid, walletID string) ([]models.Transaction, error) {
	if _, err := s.authorizedWallet(ctx, uid, walletID); err != nil {
		return nil, err
	}
	return s.txs.ListByWallet(ctx, walletID)
}

func (s *transactionService) ListRecent(ctx context.Context, uid string) ([]models.Transaction, error) {
	return s.txs.ListRecent(ctx, uid, recentTransactionLimit)
}

// Stats sums the wallet's transactions by side. Transfers count toward
// expenses here for the same reason they subtract from the balance;
// income - expenses therefore always reconciles with the balance drift
// since the wallet was opened.
func (s *transactionService) Stats(ctx context.Context, uid, walletID string) (*dto.WalletStats, error) {
	wallet, err := s.authorizedWallet(ctx, uid, walletID)
	if err != nil {
		return nil, err
	}

	txs, err := s.txs.ListByWallet(ctx, walletID)
	if err != nil {
		return nil, err
	}

	income := decimal.Zero
	expenses := decimal.Zero
	for _, tx := range txs {
		amount := decimal.NewFromFloat(tx.Amount)
		if tx.Type == models.TransactionIncome {
			income = income.Add(amount)
		} else {
			expenses = expenses.Add(amount)
		}
	}

	return &dto.WalletStats{
		Income:   income.InexactFloat64(),
		Expenses: expenses.InexactFloat64(),
		Balance:  wallet.Balance,
		Savings:  income.Sub(expenses).InexactFloat64(),
	}, nil
}

func (s *transactionService) authorizedWallet(ctx context.Context, uid, walletID string) (*models.Wallet, error) {
	wallet, err := s.wallets.Get(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.UID != uid {
		return nil, errs.NewNotAuthorizedError("wallet does not belong to caller")
	}
	return wallet, nil
}
