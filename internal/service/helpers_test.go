package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/auth"
	"taskboard/internal/repository"
	"taskboard/internal/repository/sqlite"
)

type fixture struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
	tasks      repository.TaskRepository
	tokens     *auth.Tokens
	auth       AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		users:      sqlite.NewUserRepository(db, 5*time.Second),
		categories: sqlite.NewCategoryRepository(db, 5*time.Second),
		tasks:      sqlite.NewTaskRepository(db, 5*time.Second),
		tokens:     auth.NewTokens("test-secret", 7*24*time.Hour),
	}
	require.NoError(t, sqlite.Migrate(context.Background(), f.users, f.categories, f.tasks))
	f.auth = NewAuthService(f.users, f.tokens, bcrypt.MinCost)
	return f
}
