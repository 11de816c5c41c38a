package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sango-pay/sango_pay/internal/ledger"
)

// ErrInvalidCredentials occurs when login email or password do not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service manages user lifecycle. Registration provisions the user's ledger
// account alongside the user record.
type Service struct {
	repo     Repository
	accounts ledger.AccountStore
}

// NewService creates a new identity service.
func NewService(repo Repository, accounts ledger.AccountStore) *Service {
	return &Service{repo: repo, accounts: accounts}
}

// Register creates a user with a hashed password and a fresh zero-balance account.
func (s *Service) Register(ctx context.Context, creds Credentials) (User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, errors.New("a valid email is required")
	}
	if len(creds.Password) < 8 {
		return User{}, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	account, err := s.accounts.Create(ctx, 0)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(creds.Name),
		Email:        email,
		PasswordHash: hash,
		AccountID:    account.ID,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies email and password.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
