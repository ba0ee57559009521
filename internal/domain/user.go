package domain

import "time"

// User represents a registered account. PasswordHash never leaves the service layer.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultCategories are provisioned for every new account.
var DefaultCategories = []string{"Work", "Personal", "Shopping"}
