package models

import "time"

// User represents a registered account of the finance tracker.
// It contains identity attributes and credential-related data.
// PasswordHash must never leave the service layer in any user-facing output.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Username is the unique, case-sensitive login identifier.
	Username string `json:"username"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// The digest embeds its own per-user random salt; plaintext passwords
	// are never persisted or compared directly.
	PasswordHash []byte `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
