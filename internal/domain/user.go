package domain

import "time"

// Account is the login identity. Email is unique across accounts.
type Account struct {
	ID           string    `bson:"_id" json:"accountId"`
	Email        string    `bson:"email" json:"email"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"passwordHash" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// User is the profile document created right after sign-up.
// It links an account to the name shown in the app and is never mutated.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	AccountID string    `bson:"accountId" json:"accountId"`
	Email     string    `bson:"email" json:"email"`
	Username  string    `bson:"username" json:"username"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
