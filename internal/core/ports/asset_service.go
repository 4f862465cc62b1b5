package ports

import (
	"context"
	"io"

	"github.com/vogueline/agency-api/internal/core/domain"
)

// UploadInput is a single file received from a multipart form.
type UploadInput struct {
	OwnerID  string
	Purpose  domain.AssetPurpose
	Filename string
	Size     int64
	File     io.Reader
}

// AssetMeta is optional descriptive data recorded with an asset reference.
type AssetMeta struct {
	ObjectKey   string
	ContentType string
	SizeBytes   int64
	Width       int
	Height      int
}

// AssetService uploads files and keeps the reference bookkeeping.
type AssetService interface {
	Upload(ctx context.Context, in UploadInput) (*domain.AssetRef, error)
	RecordAsset(ctx context.Context, ownerID string, purpose domain.AssetPurpose, url string, meta AssetMeta) (*domain.AssetRef, error)
	ListAssets(ctx context.Context, ownerID string, purpose domain.AssetPurpose) ([]domain.AssetRef, error)
}
