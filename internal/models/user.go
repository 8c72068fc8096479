package models

import (
	"time"
)

type User struct {
	UID       string    `firestore:"uid" json:"uid"`
	Email     string    `firestore:"email" json:"email"`
	Name      string    `firestore:"name" json:"name"`
	PhotoURL  string    `firestore:"photoUrl" json:"photoUrl,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
