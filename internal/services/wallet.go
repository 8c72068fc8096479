package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitfield/pocketbook-backend/internal/crypto"
	"github.com/mwhitfield/pocketbook-backend/internal/dto"
	"github.com/mwhitfield/pocketbook-backend/internal/errs"
	"github.com/mwhitfield/pocketbook-backend/internal/models"
	"github.com/mwhitfield/pocketbook-backend/pkg/helpers"
	"github.com/mwhitfield/pocketbook-backend/pkg/logger"
)

const (
	defaultWalletName = "My Wallet"
	defaultCurrency   = "USD"

	// maskPlaceholder is shown when a stored bank account token can no
	// longer be decrypted. Display degrades; the list itself never fails.
	maskPlaceholder = "****"
)

// --- Dependencies (minimal interfaces scoped to this service) ---

type walletWSStore interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	Get(ctx context.Context, walletID string) (*models.Wallet, error)
	ListByUser(ctx context.Context, uid string) ([]*models.Wallet, error)
	Update(ctx context.Context, wallet *models.Wallet) error
	Delete(ctx context.Context, walletID string) error
}

type transactionWSStore interface {
	DeleteByWallet(ctx context.Context, walletID string) (int, error)
}

type walletTokenizer interface {
	Tokenize(plaintext string) (string, error)
	Detokenize(token string) (string, error)
}

type walletService struct {
	wallets   walletWSStore
	txs       transactionWSStore
	tokenizer walletTokenizer
	clockNow  func() time.Time
}

func NewWalletService(wallets walletWSStore, txs transactionWSStore, tokenizer walletTokenizer) *walletService {
	return &walletService{
		wallets:   wallets,
		txs:       txs,
		tokenizer: tokenizer,
		clockNow:  time.Now,
	}
}

func (s *walletService) CreateWallet(ctx context.Context, uid string, req dto.CreateWalletRequest) (*dto.WalletResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	token, err := s.tokenizer.Tokenize(req.BankAccount)
	if err != nil {
		return nil, errs.NewEncryptionError("failed to tokenize bank account")
	}

	now := s.clockNow()
	wallet := &models.Wallet{
		WalletID:         uuid.NewString(),
		UID:              uid,
		Name:             req.Name,
		Balance:          helpers.Value(req.Balance),
		Currency:         req.Currency,
		BankAccountToken: token,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if wallet.Name == "" {
		wallet.Name = defaultWalletName
	}
	if wallet.Currency == "" {
		wallet.Currency = defaultCurrency
	}

	if err := s.wallets.Create(ctx, wallet); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("wallet created", "wallet_id", wallet.WalletID, "currency", wallet.Currency)

	// Mask straight from the request input; no need to round-trip the
	// token we just minted.
	return walletResponse(wallet, crypto.Mask(req.BankAccount), false), nil
}

func (s *walletService) ListWallets(ctx context.Context, uid string) ([]*dto.WalletResponse, error) {
	wallets, err := s.wallets.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.WalletResponse, 0, len(wallets))
	for _, w := range wallets {
		masked, degraded := s.maskedAccount(ctx, w)
		resp = append(resp, walletResponse(w, masked, degraded))
	}
	return resp, nil
}

func (s *walletService) GetWallet(ctx context.Context, uid, walletID string) (*dto.WalletResponse, error) {
	wallet, err := s.authorizedWallet(ctx, uid, walletID)
	if err != nil {
		return nil, err
	}
	masked, degraded := s.maskedAccount(ctx, wallet)
	return walletResponse(wallet, masked, degraded), nil
}

func (s *walletService) UpdateWallet(ctx context.Context, uid, walletID string, req dto.UpdateWalletRequest) (*dto.WalletResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	wallet, err := s.authorizedWallet(ctx, uid, walletID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		wallet.Name = *req.Name
	}
	if req.Currency != nil {
		wallet.Currency = *req.Currency
	}
	if req.BankAccount != nil {
		// Empty string clears the stored token.
		token, err := s.tokenizer.Tokenize(*req.BankAccount)
		if err != nil {
			return nil, errs.NewEncryptionError("failed to tokenize bank account")
		}
		wallet.BankAccountToken = token
	}

	if err := s.wallets.Update(ctx, wallet); err != nil {
		return nil, err
	}

	masked, degraded := s.maskedAccount(ctx, wallet)
	return walletResponse(wallet, masked, degraded), nil
}

// DeleteWallet removes the wallet together with every transaction that
// references it; no orphaned transactions may remain. The two steps are
// sequential, so a crash between them can leave the wallet behind with no
// transactions, never the reverse.
func (s *walletService) DeleteWallet(ctx context.Context, uid, walletID string) error {
	if _, err := s.authorizedWallet(ctx, uid, walletID); err != nil {
		return err
	}

	removed, err := s.txs.DeleteByWallet(ctx, walletID)
	if err != nil {
		return err
	}
	if err := s.wallets.Delete(ctx, walletID); err != nil {
		return err
	}

	log := logger.FromContext(ctx)
	log.Info("wallet deleted", "wallet_id", walletID, "transactions_removed", removed)
	return nil
}

// authorizedWallet resolves the id first and checks ownership second, so
// "someone else's wallet" answers 401 while "no such wallet" answers 404.
func (s *walletService) authorizedWallet(ctx context.Context, uid, walletID string) (*models.Wallet, error) {
	wallet, err := s.wallets.Get(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.UID != uid {
		return nil, errs.NewNotAuthorizedError("wallet does not belong to caller")
	}
	return wallet, nil
}

func (s *walletService) maskedAccount(ctx context.Context, w *models.Wallet) (masked string, degraded bool) {
	if w.BankAccountToken == "" {
		return "", false
	}
	plain, err := s.tokenizer.Detokenize(w.BankAccountToken)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Warn("failed to detokenize bank account", "wallet_id", w.WalletID, "error", err)
		return maskPlaceholder, true
	}
	return crypto.Mask(plain), false
}

func walletResponse(w *models.Wallet, masked string, degraded bool) *dto.WalletResponse {
	return &dto.WalletResponse{
		WalletID:          w.WalletID,
		Name:              w.Name,
		Balance:           w.Balance,
		Currency:          w.Currency,
		MaskedBankAccount: masked,
		MaskDegraded:      degraded,
		CreatedAt:         w.CreatedAt,
	}
}
