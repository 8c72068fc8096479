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

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) collection() *firestore.CollectionRef {
	return s.client.Collection("transactions")
}

func (s *transactionStore) walletRef(walletID string) *firestore.DocumentRef {
	return s.client.Collection("wallets").Doc(walletID)
}

// CreateAtomic writes the transaction and its wallet's new balance in one
// Firestore transaction. mutate receives the freshly read wallet and
// applies the balance rules; returning an error aborts with nothing
// written. Firestore retries the whole unit on contention, which closes
// the concurrent lost-update window on the balance.
func (s *transactionStore) CreateAtomic(ctx context.Context, tx *models.Transaction, mutate func(w *models.Wallet) error) (*models.Wallet, error) {
	var wallet models.Wallet

	err := s.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		wref := s.walletRef(tx.WalletID)
		snap, err := t.Get(wref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errs.NewNotFoundError("wallet not found")
			}
			return errs.NewDatabaseError("transaction.create", err.Error())
		}
		if err := snap.DataTo(&wallet); err != nil {
			return errs.NewDatabaseError("transaction.create", err.Error())
		}

		if err := mutate(&wallet); err != nil {
			return err
		}
		wallet.UpdatedAt = time.Now()

		if err := t.Set(wref, &wallet); err != nil {
			return errs.NewDatabaseError("transaction.create", err.Error())
		}
		if err := t.Create(s.collection().Doc(tx.TransactionID), tx); err != nil {
			return errs.NewDatabaseError("transaction.create", err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// UpdateAtomic re-reads the transaction and its wallet, lets mutate merge
// the update into the transaction and rebalance the wallet, then writes
// both or neither.
func (s *transactionStore) UpdateAtomic(ctx context.Context, transactionID string, mutate func(tx *models.Transaction, w *models.Wallet) error) (*models.Transaction, *models.Wallet, error) {
	var transaction models.Transaction
	var wallet models.Wallet

	err := s.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		tref := s.collection().Doc(transactionID)
		snap, err := t.Get(tref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errs.NewNotFoundError("transaction not found")
			}
			return errs.NewDatabaseError("transaction.update", err.Error())
		}
		if err := snap.DataTo(&transaction); err != nil {
			return errs.NewDatabaseError("transaction.update", err.Error())
		}

		wref := s.walletRef(transaction.WalletID)
		wsnap, err := t.Get(wref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errs.NewNotFoundError("wallet not found")
			}
			return errs.NewDatabaseError("transaction.update", err.Error())
		}
		if err := wsnap.DataTo(&wallet); err != nil {
			return errs.NewDatabaseError("transaction.update", err.Error())
		}

		if err := mutate(&transaction, &wallet); err != nil {
			return err
		}
		now := time.Now()
		transaction.UpdatedAt = now
		wallet.UpdatedAt = now

		if err := t.Set(tref, &transaction); err != nil {
			return errs.NewDatabaseError("transaction.update", err.Error())
		}
		if err := t.Set(wref, &wallet); err != nil {
			return errs.NewDatabaseError("transaction.update", err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &transaction, &wallet, nil
}

// DeleteAtomic reverses the transaction's balance effect and removes the
// record as one unit.
func (s *transactionStore) DeleteAtomic(ctx context.Context, transactionID string, mutate func(tx *models.Transaction, w *models.Wallet) error) (*models.Wallet, error) {
	var transaction models.Transaction
	var wallet models.Wallet

	err := s.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		tref := s.collection().Doc(transactionID)
		snap, err := t.Get(tref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errs.NewNotFoundError("transaction not found")
			}
			return errs.NewDatabaseError("transaction.delete", err.Error())
		}
		if err := snap.DataTo(&transaction); err != nil {
			return errs.NewDatabaseError("transaction.delete", err.Error())
		}

		wref := s.walletRef(transaction.WalletID)
		wsnap, err := t.Get(wref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errs.NewNotFoundError("wallet not found")
			}
			return errs.NewDatabaseError("transaction.delete", err.Error())
		}
		if err := wsnap.DataTo(&wallet); err != nil {
			return errs.NewDatabaseError("transaction.delete", err.Error())
		}

		if err := mutate(&transaction, &wallet); err != nil {
			return err
		}
		wallet.UpdatedAt = time.Now()

		if err := t.Set(wref, &wallet); err != nil {
			return errs.NewDatabaseError("transaction.delete", err.Error())
		}
		if err := t.Delete(tref); err != nil {
			return errs.NewDatabaseError("transaction.delete", err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (s *transactionStore) ListByWallet(ctx context.Context, walletID string) ([]models.Transaction, error) {
	docs, err := s.collection().
		Where("walletId", "==", walletID).
		OrderBy("date", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("transaction.list", err.Error())
	}
	return docsToTransactions(docs)
}

func (s *transactionStore) ListRecent(ctx context.Context, uid string, limit int) ([]models.Transaction, error) {
	docs, err := s.collection().
		Where("uid", "==", uid).
		OrderBy("date", firestore.Desc).
		Limit(limit).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("transaction.list", err.Error())
	}
	return docsToTransactions(docs)
}

func (s *transactionStore) ListByUser(ctx context.Context, uid string) ([]models.Transaction, error) {
	docs, err := s.collection().
		Where("uid", "==", uid).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("transaction.list", err.Error())
	}
	return docsToTransactions(docs)
}

// DeleteByWallet removes every transaction referencing the wallet.
// Used by the wallet cascade delete; a BulkWriter keeps it one round of
// parallel deletes rather than N sequential calls.
func (s *transactionStore) DeleteByWallet(ctx context.Context, walletID string) (int, error) {
	docs, err := s.collection().
		Where("walletId", "==", walletID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errs.NewDatabaseError("transaction.deleteByWallet", err.Error())
	}
	if len(docs) == 0 {
		return 0, nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for _, d := range docs {
		job, err := bw.Delete(d.Ref)
		if err != nil {
			bw.End()
			return 0, errs.NewDatabaseError("transaction.deleteByWallet", err.Error())
		}
		jobs = append(jobs, job)
	}

	// Flush and close the writer, then wait on each job for errors.
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return 0, errs.NewDatabaseError("transaction.deleteByWallet", err.Error())
		}
	}

	return len(docs), nil
}

func docsToTransactions(docs []*firestore.DocumentSnapshot) ([]models.Transaction, error) {
	txs := make([]models.Transaction, 0, len(docs))
	for _, d := range docs {
		var tx models.Transaction
		if err := d.DataTo(&tx); err != nil {
			return nil, errs.NewDatabaseError("transaction.list", err.Error())
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
