package models

import (
	"time"
)

// Wallet is a named balance-bearing account owned by a single user.
// Balance is only ever mutated through the transaction service; the wallet
// update path deliberately has no way to set it.
type Wallet struct {
	WalletID         string    `firestore:"walletId" json:"walletId"`
	UID              string    `firestore:"uid" json:"-"`
	Name             string    `firestore:"name" json:"name"`
	Balance          float64   `firestore:"balance" json:"balance"`
	Currency         string    `firestore:"currency" json:"currency"`
	BankAccountToken string    `firestore:"bankAccountToken" json:"-"`
	CreatedAt        time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `firestore:"updatedAt" json:"updatedAt"`
}
