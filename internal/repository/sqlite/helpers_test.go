package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

type testStore struct {
	db         *sql.DB
	users      repository.UserRepository
	categories repository.CategoryRepository
	tasks      repository.TaskRepository
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "taskboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := &testStore{
		db:         db,
		users:      NewUserRepository(db, 5*time.Second),
		categories: NewCategoryRepository(db, 5*time.Second),
		tasks:      NewTaskRepository(db, 5*time.Second),
	}
	require.NoError(t, Migrate(context.Background(), s.users, s.categories, s.tasks))
	return s
}

// addUser registers a user with the default categories and returns its id.
func (s *testStore) addUser(t *testing.T, email string) int64 {
	t.Helper()
	id, err := s.users.CreateWithCategories(context.Background(), &domain.User{
		Email:        email,
		Name:         "Test " + email,
		PasswordHash: "hash",
	}, domain.DefaultCategories)
	require.NoError(t, err)
	return id
}

// categoryID looks up one of the owner's categories by name.
func (s *testStore) categoryID(t *testing.T, owner int64, name string) int64 {
	t.Helper()
	categories, err := s.categories.List(context.Background(), owner)
	require.NoError(t, err)
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("category %q not found for user %d", name, owner)
	return 0
}

func (s *testStore) addTask(t *testing.T, owner int64, fields domain.TaskFields) *domain.Task {
	t.Helper()
	task, err := s.tasks.Create(context.Background(), owner, fields)
	require.NoError(t, err)
	return task
}
