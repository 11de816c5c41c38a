package identity

import "time"

// User represents a registered wallet owner. AccountID points at the ledger
// account created for the user at registration.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	AccountID    string
	CreatedAt    time.Time
}

// Credentials carries the fields supplied at registration and login.
type Credentials struct {
	Name     string
	Email    string
	Password string
}
