package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mwhitfield/pocketbook-backend/internal/errs"
	"github.com/mwhitfield/pocketbook-backend/internal/models"
)

// Wallets live in a top-level collection keyed by wallet id with a uid
// field, so a get by id can distinguish "absent" from "owned by someone
// else". Ownership is checked in the service layer, never here.
type walletStore struct {
	client *firestore.Client
}

func NewWalletStore(client *firestore.Client) *walletStore {
	return &walletStore{client: client}
}

func (s *walletStore) collection() *firestore.CollectionRef {
	return s.client.Collection("wallets")
}

func (s *walletStore) Create(ctx context.Context, wallet *models.Wallet) error {
	now := time.Now()
	if wallet.CreatedAt.IsZero() {
		wallet.CreatedAt = now
	}
	wallet.UpdatedAt = now
	_, err := s.collection().Doc(wallet.WalletID).Create(ctx, wallet)
	if err != nil {
		return errs.NewDatabaseError("wallet.create", err.Error())
	}
	return nil
}

func (s *walletStore) Get(ctx context.Context, walletID string) (*models.Wallet, error) {
	doc, err := s.collection().Doc(walletID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("wallet not found")
		}
		return nil, errs.NewDatabaseError("wallet.get", err.Error())
	}
	var w models.Wallet
	if err := doc.DataTo(&w); err != nil {
		return nil, errs.NewDatabaseError("wallet.get", err.Error())
	}
	return &w, nil
}

func (s *walletStore) ListByUser(ctx context.Context, uid string) ([]*models.Wallet, error) {
	docs, err := s.collection().
		Where("uid", "==", uid).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("wallet.list", err.Error())
	}
	wallets := make([]*models.Wallet, 0, len(docs))
	for _, d := range docs {
		var w models.Wallet
		if err := d.DataTo(&w); err != nil {
			return nil, errs.NewDatabaseError("wallet.list", err.Error())
		}
		wallets = append(wallets, &w)
	}
	return wallets, nil
}

func (s *walletStore) Update(ctx context.Context, wallet *models.Wallet) error {
	wallet.UpdatedAt = time.Now()
	_, err := s.collection().Doc(wallet.WalletID).Set(ctx, wallet)
	if err != nil {
		return errs.NewDatabaseError("wallet.update", err.Error())
	}
	return nil
}

func (s *walletStore) Delete(ctx context.Context, walletID string) error {
	_, err := s.collection().Doc(walletID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("wallet.delete", err.Error())
	}
	return nil
}
