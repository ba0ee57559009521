package repository

import (
	"context"

	"taskboard/internal/domain"
)

// TaskFilter narrows List results. Zero values mean "no filter".
type TaskFilter struct {
	Status   domain.TaskStatus
	Category string
	Search   string
}

// TaskRepository exposes owner-scoped persistence operations for tasks.
type TaskRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context, owner int64, filter TaskFilter) ([]domain.Task, error)
	Get(ctx context.Context, owner, id int64) (*domain.Task, error)
	Create(ctx context.Context, owner int64, fields domain.TaskFields) (*domain.Task, error)
	Update(ctx context.Context, owner, id int64, fields domain.TaskFields) (*domain.Task, error)
	Delete(ctx context.Context, owner, id int64) error
}
