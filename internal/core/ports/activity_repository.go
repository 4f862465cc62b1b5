package ports

import (
	"context"

	"github.com/vogueline/agency-api/internal/core/domain"
)

// ActivityRepository is the per-account audit trail of lifecycle changes.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
	ListByAccount(ctx context.Context, accountID string, limit int) ([]domain.Activity, error)
}
