package domain

import "time"

// User represents an account in the identity store
type User struct {
	ID           int64
	Username     string // Unique username
	PasswordHash string // Bcrypt hashed password (never rendered in API responses)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines data access for users
type UserRepository interface {
	Create(user *User) error
	GetByID(id int64) (*User, error)
	GetByUsername(username string) (*User, error)
}
