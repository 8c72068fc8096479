package models

import (
	"time"
)

// BankAccount is the stored snapshot of one externally linked account.
// AccessToken holds the Plaid access token tokenized via internal/crypto;
// the raw token never reaches storage or the wire.
type BankAccount struct {
	AccountID         string    `firestore:"accountId" json:"accountId"`
	UID               string    `firestore:"uid" json:"-"`
	AccessToken       string    `firestore:"accessToken" json:"-"`
	ItemID            string    `firestore:"itemId" json:"-"`
	ExternalAccountID string    `firestore:"externalAccountId" json:"externalAccountId"`
	InstitutionID     string    `firestore:"institutionId" json:"institutionId"`
	InstitutionName   string    `firestore:"institutionName" json:"institutionName"`
	AccountName       string    `firestore:"accountName" json:"accountName"`
	AccountType       string    `firestore:"accountType" json:"accountType"`
	AccountSubtype    string    `firestore:"accountSubtype" json:"accountSubtype,omitempty"`
	Mask              string    `firestore:"mask" json:"mask,omitempty"`
	CreatedAt         time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `firestore:"updatedAt" json:"updatedAt"`
}
