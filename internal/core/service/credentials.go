package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
	"github.com/vogueline/agency-api/internal/pkg/metrics"
)

// NewAccount is everything CreateAccount needs besides the plaintext password.
type NewAccount struct {
	Email       string
	DisplayName string
	Kind        domain.AccountKind
	Status      domain.AccountStatus
	Profile     domain.Profile
}

// CredentialStore owns password hashing and account creation for every flow
// (client signup, admin signup, model onboarding).
type CredentialStore struct {
	repo    ports.AccountRepository
	cost    int
	compare func(hash, password []byte) error

	dummyOnce sync.Once
	dummyHash []byte
}

func NewCredentialStore(repo ports.AccountRepository) *CredentialStore {
	return &CredentialStore{repo: repo, cost: bcrypt.DefaultCost, compare: bcrypt.CompareHashAndPassword}
}

// CreateAccount validates the password policy, hashes the password and
// persists the account. Email uniqueness is enforced by the repository.
func (s *CredentialStore) CreateAccount(ctx context.Context, in NewAccount, password string) (*domain.Account, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" {
		return nil, domain.NewValidationError("email", "email is required")
	}
	if !in.Kind.Valid() {
		return nil, domain.NewValidationError("kind", "unknown account kind")
	}
	if err := domain.CheckPassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.AccountActive
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Account{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  in.DisplayName,
		Kind:         in.Kind,
		Status:       status,
		Profile:      in.Profile,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	metrics.AccountsCreatedTotal.WithLabelValues(string(in.Kind)).Inc()
	return created, nil
}

// FindByEmail looks an account up by its normalised email.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
}

// VerifyPassword compares in constant time via bcrypt.
func (s *CredentialStore) VerifyPassword(account *domain.Account, password string) bool {
	if account == nil || account.PasswordHash == "" {
		return false
	}
	return s.compare([]byte(account.PasswordHash), []byte(password)) == nil
}

// RejectUnknown burns one bcrypt comparison for a login whose account does
// not exist, so the miss costs as much as a wrong password.
func (s *CredentialStore) RejectUnknown(password string) {
	_ = s.compare(s.dummy(), []byte(password))
}

func (s *CredentialStore) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("agency-unknown-account"), s.cost)
	})
	return s.dummyHash
}

// HashPassword applies the policy and returns a hash for password changes.
func (s *CredentialStore) HashPassword(password string) (string, error) {
	if err := domain.CheckPassword(password); err != nil {
		return "", err
	}
	return s.hash(password)
}

func (s *CredentialStore) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.NewValidationError("password", "password must be at most 72 bytes")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}
