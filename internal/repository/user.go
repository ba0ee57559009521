package repository

import (
	"context"

	"taskboard/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	// CreateWithCategories inserts the user and its starter categories in one transaction.
	// A duplicate email yields a domain conflict error.
	CreateWithCategories(ctx context.Context, user *domain.User, categories []string) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
