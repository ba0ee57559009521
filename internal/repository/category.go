package repository

import (
	"context"

	"taskboard/internal/domain"
)

// CategoryRepository persists categories. Every method is scoped to owner; an id owned by
// somebody else behaves exactly like an id that does not exist.
type CategoryRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context, owner int64) ([]domain.Category, error)
	Create(ctx context.Context, owner int64, name string) (*domain.Category, error)
	Update(ctx context.Context, owner, id int64, name string) (*domain.Category, error)
	Delete(ctx context.Context, owner, id int64) error
}
