package service

import (
	"context"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// CategoryService manages the caller's categories.
type CategoryService interface {
	List(ctx context.Context, owner int64) ([]domain.Category, error)
	Create(ctx context.Context, owner int64, name string) (*domain.Category, error)
	Rename(ctx context.Context, owner, id int64, name string) (*domain.Category, error)
	Delete(ctx context.Context, owner, id int64) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context, owner int64) ([]domain.Category, error) {
	return s.categories.List(ctx, owner)
}

func (s *categoryService) Create(ctx context.Context, owner int64, name string) (*domain.Category, error) {
	return s.categories.Create(ctx, owner, strings.TrimSpace(name))
}

func (s *categoryService) Rename(ctx context.Context, owner, id int64, name string) (*domain.Category, error) {
	return s.categories.Update(ctx, owner, id, strings.TrimSpace(name))
}

func (s *categoryService) Delete(ctx context.Context, owner, id int64) error {
	return s.categories.Delete(ctx, owner, id)
}
