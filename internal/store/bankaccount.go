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

type bankAccountStore struct {
	client *firestore.Client
}

func NewBankAccountStore(client *firestore.Client) *bankAccountStore {
	return &bankAccountStore{client: client}
}

func (s *bankAccountStore) collection() *firestore.CollectionRef {
	return s.client.Collection("bank_accounts")
}

// Upsert creates or replaces the link for (uid, externalAccountId).
// Re-linking the same external account refreshes the stored metadata and
// access token instead of duplicating the row.
func (s *bankAccountStore) Upsert(ctx context.Context, account *models.BankAccount) error {
	now := time.Now()

	existing, err := s.collection().
		Where("uid", "==", account.UID).
		Where("externalAccountId", "==", account.ExternalAccountID).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return errs.NewDatabaseError("bankAccount.upsert", err.Error())
	}

	if len(existing) > 0 {
		var prev models.BankAccount
		if err := existing[0].DataTo(&prev); err != nil {
			return errs.NewDatabaseError("bankAccount.upsert", err.Error())
		}
		account.AccountID = prev.AccountID
		account.CreatedAt = prev.CreatedAt
	} else if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	_, err = s.collection().Doc(account.AccountID).Set(ctx, account)
	if err != nil {
		return errs.NewDatabaseError("bankAccount.upsert", err.Error())
	}
	return nil
}

func (s *bankAccountStore) Get(ctx context.Context, accountID string) (*models.BankAccount, error) {
	doc, err := s.collection().Doc(accountID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("account not found")
		}
		return nil, errs.NewDatabaseError("bankAccount.get", err.Error())
	}
	var a models.BankAccount
	if err := doc.DataTo(&a); err != nil {
		return nil, errs.NewDatabaseError("bankAccount.get", err.Error())
	}
	return &a, nil
}

func (s *bankAccountStore) ListByUser(ctx context.Context, uid string) ([]*models.BankAccount, error) {
	docs, err := s.collection().
		Where("uid", "==", uid).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("bankAccount.list", err.Error())
	}
	accounts := make([]*models.BankAccount, 0, len(docs))
	for _, d := range docs {
		var a models.BankAccount
		if err := d.DataTo(&a); err != nil {
			return nil, errs.NewDatabaseError("bankAccount.list", err.Error())
		}
		accounts = append(accounts, &a)
	}
	return accounts, nil
}

func (s *bankAccountStore) Delete(ctx context.Context, accountID string) error {
	_, err := s.collection().Doc(accountID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("bankAccount.delete", err.Error())
	}
	return nil
}
