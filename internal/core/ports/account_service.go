package ports

import (
	"context"

	"github.com/vogueline/agency-api/internal/core/domain"
)

// UpdateAccountInput carries a partial account update; nil fields are untouched.
type UpdateAccountInput struct {
	DisplayName *string
	CompanyName *string
	Industry    *string
	Phone       *string
	Password    *string
}

// AccountService serves /users/:id. Callers may act on themselves; admins on anyone.
type AccountService interface {
	Get(ctx context.Context, actor domain.SessionClaims, id string) (*domain.Account, error)
	Update(ctx context.Context, actor domain.SessionClaims, id string, in UpdateAccountInput) (*domain.Account, error)
	Delete(ctx context.Context, actor domain.SessionClaims, id string) error
}
