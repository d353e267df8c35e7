package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// ID is the identity provider's subject id (prefixed per provider) for
// OAuth accounts, or a generated UUID for local accounts. Rows are
// immutable once created.
//
// PasswordHash holds a bcrypt hash for local accounts and is empty for
// OAuth-derived accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
