package ports

import (
	"context"

	"github.com/vogueline/agency-api/internal/core/domain"
)

// AssetRepository stores references to externally hosted files.
type AssetRepository interface {
	Insert(ctx context.Context, asset *domain.AssetRef) error
	// ListByOwner returns the owner's assets, newest first. An empty purpose
	// matches every purpose.
	ListByOwner(ctx context.Context, ownerID string, purpose domain.AssetPurpose) ([]domain.AssetRef, error)
}
