package entity

import (
	"time"
)

// User is the aggregate root for the credential domain.
// Passwords are stored as bcrypt hashes in PasswordHash.
//
// Username is stored trimmed and is unique across the table.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
