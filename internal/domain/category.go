package domain

import "time"

// Category is a named bucket of tasks owned by a single user.
type Category struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}
