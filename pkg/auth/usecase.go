package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UseCase describes registration and login behavior.
type UseCase interface {
	Register(ctx context.Context, email, password, name string) (User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type service struct {
	repo   UserRepository
	tokens TokenIssuer
}

// NewService returns the default implementation of UseCase.
func NewService(repo UserRepository, tokens TokenIssuer) UseCase {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, email, password, name string) (User, error) {
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now().UTC(),
	}
	// Uniqueness is enforced by the store; a duplicate email surfaces as
	// ErrUserAlreadyExists without touching the existing record.
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password return the same error so responses cannot be used to probe
// which addresses are registered.
func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(ctx, user.Email)
}
