package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"

	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
	"github.com/vogueline/agency-api/internal/pkg/metrics"
)

const DefaultMaxUploadBytes int64 = 10 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AssetService uploads images to object storage and records their references.
type AssetService struct {
	storage  ports.ObjectStorage
	repo     ports.AssetRepository
	accounts ports.AccountRepository
	maxBytes int64
	logger   zerolog.Logger
}

func NewAssetService(storage ports.ObjectStorage, repo ports.AssetRepository, accounts ports.AccountRepository, maxBytes int64, logger zerolog.Logger) *AssetService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &AssetService{storage: storage, repo: repo, accounts: accounts, maxBytes: maxBytes, logger: logger}
}

// Upload sniffs and stores one image, then records it. The reference is only
// written after the object store accepted the bytes. Avatar uploads also
// replace the owner's avatar URL.
func (s *AssetService) Upload(ctx context.Context, in ports.UploadInput) (*domain.AssetRef, error) {
	if in.OwnerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if !in.Purpose.Valid() {
		return nil, domain.NewValidationError("type", "type must be one of avatar, product-image, portfolio")
	}
	if in.File == nil {
		return nil, domain.NewValidationError("file", "file is required")
	}
	if in.Size > s.maxBytes {
		return nil, domain.NewValidationError("file", fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}

	data, err := io.ReadAll(io.LimitReader(in.File, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, domain.NewValidationError("file", fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}
	if len(data) == 0 {
		return nil, domain.NewValidationError("file", "file is empty")
	}

	contentType := mimetype.Detect(data).String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, domain.NewValidationError("file", "unsupported file type "+contentType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewValidationError("file", "file is not a readable image")
	}

	key := objectKey(in.OwnerID, in.Purpose, ext)
	url, err := s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		s.logger.Error().Err(err).Str("object_key", key).Msg("object storage upload failed")
		return nil, fmt.Errorf("store object: %w", err)
	}

	metrics.AssetsUploadedTotal.WithLabelValues(string(in.Purpose)).Inc()
	metrics.AssetUploadBytes.Observe(float64(len(data)))

	asset, err := s.RecordAsset(ctx, in.OwnerID, in.Purpose, url, ports.AssetMeta{
		ObjectKey:   key,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		Width:       cfg.Width,
		Height:      cfg.Height,
	})
	if err != nil {
		return nil, err
	}

	if in.Purpose == domain.PurposeAvatar {
		if _, err := s.accounts.Update(ctx, in.OwnerID, ports.AccountUpdate{AvatarURL: &url}); err != nil {
			return nil, fmt.Errorf("update avatar: %w", err)
		}
	}

	s.logger.Info().Str("owner_id", in.OwnerID).Str("purpose", string(in.Purpose)).Str("object_key", key).Msg("asset uploaded")
	return asset, nil
}

// RecordAsset stores a reference to already hosted content. The URL is not fetched.
func (s *AssetService) RecordAsset(ctx context.Context, ownerID string, purpose domain.AssetPurpose, url string, meta ports.AssetMeta) (*domain.AssetRef, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, domain.NewValidationError("url", "url is required")
	}
	if !purpose.Valid() {
		return nil, domain.NewValidationError("purpose", "unknown purpose "+string(purpose))
	}

	asset := &domain.AssetRef{
		OwnerID:     ownerID,
		Purpose:     purpose,
		URL:         url,
		ObjectKey:   meta.ObjectKey,
		ContentType: meta.ContentType,
		SizeBytes:   meta.SizeBytes,
		Width:       meta.Width,
		Height:      meta.Height,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// ListAssets returns the owner's assets, optionally restricted to one purpose.
func (s *AssetService) ListAssets(ctx context.Context, ownerID string, purpose domain.AssetPurpose) ([]domain.AssetRef, error) {
	if purpose != "" && !purpose.Valid() {
		return nil, domain.NewValidationError("purpose", "unknown purpose "+string(purpose))
	}
	assets, err := s.repo.ListByOwner(ctx, ownerID, purpose)
	if err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []domain.AssetRef{}
	}
	return assets, nil
}

// objectKey lays out uploads as <purpose>/<owner>/<ulid><ext>.
func objectKey(ownerID string, purpose domain.AssetPurpose, ext string) string {
	return string(purpose) + "/" + ownerID + "/" + strings.ToLower(ulid.Make().String()) + ext
}
