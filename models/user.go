package models

import "time"

// User is an account that can authenticate and act on reservations.
type User struct {
	ID           string    `bson:"id" json:"userId"`
	Email        string    `bson:"email" json:"email"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	IsAdmin      bool      `bson:"is_admin" json:"isAdmin"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// Actor identifies the caller of a reservation operation, as resolved
// from the bearer token. Role checks compare it against the reservation's
// requesting user or the location's owner.
type Actor struct {
	UserID  string
	IsAdmin bool
}
