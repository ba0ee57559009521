package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

var (
	// ErrUserExists is returned when registering an email that is already taken.
	ErrUserExists = domain.Conflict("user already exists")
	// ErrUnknownEmail is returned by Login when no account has the given email.
	ErrUnknownEmail = domain.NotFound("user with this email does not exist")
	// ErrWrongPassword is returned by Login when the password does not match.
	ErrWrongPassword = domain.Unauthorized("password is incorrect")
)

// Session is what a successful register or login hands back to the client.
type Session struct {
	User  *domain.User
	Token string
}

// AuthService registers users, checks credentials and resolves bearer tokens to principals.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	ValidateToken(ctx context.Context, token string) (int64, error)
	CurrentUser(ctx context.Context, userID int64) (*domain.User, error)
}

type authService struct {
	users      repository.UserRepository
	tokens     *auth.Tokens
	bcryptCost int
}

func NewAuthService(users repository.UserRepository, tokens *auth.Tokens, bcryptCost int) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

func (s *authService) Register(ctx context.Context, email, password, name string) (*Session, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, domain.Validation("email, password, and name are required")
	}

	// advisory only: the unique index on users.email is what stops concurrent duplicates
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.Validation("password must be at most 72 bytes")
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if _, err := s.users.CreateWithCategories(ctx, user, domain.DefaultCategories); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return s.session(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.Validation("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	return s.session(user)
}

func (s *authService) ValidateToken(_ context.Context, token string) (int64, error) {
	return s.tokens.Validate(token)
}

func (s *authService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *authService) session(user *domain.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: sanitizeUser(user), Token: token}, nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
