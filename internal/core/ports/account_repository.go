package ports

import (
	"context"

	"github.com/vogueline/agency-api/internal/core/domain"
)

// AccountUpdate lists the mutable account fields; nil pointers are left unchanged.
type AccountUpdate struct {
	DisplayName  *string
	Profile      *domain.Profile
	AvatarURL    *string
	PasswordHash *string
	Status       *domain.AccountStatus
}

// AccountRepository persists every kind of account in a single namespace so
// that email uniqueness holds across clients, models and admins.
type AccountRepository interface {
	// Create fails with domain.ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Update(ctx context.Context, id string, update AccountUpdate) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
}
