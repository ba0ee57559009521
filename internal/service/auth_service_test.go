package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
)

func TestRegisterIssuesTokenAndDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.auth.Register(ctx, " ann@example.com ", "hunter22", "Ann")
	require.NoError(t, err)
	require.NotNil(t, session.User)
	assert.Equal(t, "ann@example.com", session.User.Email)
	assert.Equal(t, "Ann", session.User.Name)
	assert.Empty(t, session.User.PasswordHash)
	assert.NotEmpty(t, session.Token)

	principal, err := f.auth.ValidateToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, principal)

	categories, err := f.categories.List(ctx, principal)
	require.NoError(t, err)
	assert.Len(t, categories, len(domain.DefaultCategories))

	stored, err := f.users.GetByID(ctx, principal)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, in := range [][3]string{
		{"", "pw", "Ann"},
		{"ann@example.com", "", "Ann"},
		{"ann@example.com", "pw", "   "},
	} {
		_, err := f.auth.Register(ctx, in[0], in[1], in[2])
		assert.ErrorIs(t, err, domain.ErrValidation, in)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "ann@example.com", "pw", "Ann")
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, "ann@example.com", "other", "Imposter")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)

	const attempts = 6
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.auth.Register(context.Background(), "race@example.com", "pw", "Racer")
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, ok)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	registered, err := f.auth.Register(ctx, "ann@example.com", "hunter22", "Ann")
	require.NoError(t, err)

	session, err := f.auth.Login(ctx, "ann@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, session.User.ID)
	assert.Empty(t, session.User.PasswordHash)

	_, err = f.auth.Login(ctx, "ann@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.auth.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.auth.Login(ctx, "", "hunter22")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCurrentUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.auth.Register(ctx, "ann@example.com", "pw", "Ann")
	require.NoError(t, err)

	user, err := f.auth.CurrentUser(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
	assert.Empty(t, user.PasswordHash)

	_, err = f.auth.CurrentUser(ctx, 4242)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
