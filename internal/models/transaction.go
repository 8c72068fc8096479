package models

import (
	"time"
)

type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

// Transaction records one movement of money against a wallet. Amount is
// always a positive magnitude; the sign applied to the wallet balance is
// derived from Type (income adds, expense and transfer subtract).
type Transaction struct {
	TransactionID string          `firestore:"transactionId" json:"transactionId"`
	WalletID      string          `firestore:"walletId" json:"walletId"`
	UID           string          `firestore:"uid" json:"-"`
	Type          TransactionType `firestore:"type" json:"type"`
	Category      string          `firestore:"category" json:"category"`
	Amount        float64         `firestore:"amount" json:"amount"`
	Description   string          `firestore:"description" json:"description,omitempty"`
	Date          time.Time       `firestore:"date" json:"date"`
	CreatedAt     time.Time       `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time       `firestore:"updatedAt" json:"updatedAt"`
}
