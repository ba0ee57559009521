package service

import (
	"context"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// TaskService coordinates task level operations backed by repositories.
type TaskService interface {
	ListTasks(ctx context.Context, owner int64, filter repository.TaskFilter) ([]domain.Task, error)
	GetTask(ctx context.Context, owner, id int64) (*domain.Task, error)
	CreateTask(ctx context.Context, owner int64, fields domain.TaskFields) (*domain.Task, error)
	UpdateTask(ctx context.Context, owner, id int64, fields domain.TaskFields) (*domain.Task, error)
	DeleteTask(ctx context.Context, owner, id int64) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) ListTasks(ctx context.Context, owner int64, filter repository.TaskFilter) ([]domain.Task, error) {
	return s.tasks.List(ctx, owner, filter)
}

func (s *taskService) GetTask(ctx context.Context, owner, id int64) (*domain.Task, error) {
	return s.tasks.Get(ctx, owner, id)
}

func (s *taskService) CreateTask(ctx context.Context, owner int64, fields domain.TaskFields) (*domain.Task, error) {
	return s.tasks.Create(ctx, owner, fields)
}

func (s *taskService) UpdateTask(ctx context.Context, owner, id int64, fields domain.TaskFields) (*domain.Task, error) {
	return s.tasks.Update(ctx, owner, id, fields)
}

func (s *taskService) DeleteTask(ctx context.Context, owner, id int64) error {
	return s.tasks.Delete(ctx, owner, id)
}
