// Package storage uploads asset bytes to an S3-compatible bucket (Supabase
// Storage exposes one at <project>.supabase.co/storage/v1/s3).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds the S3 endpoint, credentials and the public URL prefix under
// which uploaded objects are served.
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Region        string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// S3Storage implements ports.ObjectStorage with minio-go.
type S3Storage struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// New builds the client. No request is made until the first Put or Ping.
func New(cfg Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket is required")
	}
	endpoint, secure := splitEndpoint(cfg.Endpoint, cfg.UseSSL)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}

	return &S3Storage{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: publicBase(cfg, endpoint, secure),
	}, nil
}

// Put uploads size bytes from r and returns the object's public URL.
func (s *S3Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.URL(key), nil
}

// Ping reports an error when the bucket is unreachable or missing.
func (s *S3Storage) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("storage ping: %w", err)
	}
	if !ok {
		return fmt.Errorf("storage ping: bucket %q does not exist", s.bucket)
	}
	return nil
}

// URL is the public address of key.
func (s *S3Storage) URL(key string) string {
	return s.publicBase + "/" + strings.TrimLeft(key, "/")
}

// splitEndpoint accepts either host[:port][/path] or a full URL. minio-go
// wants the bare host; a scheme in the value overrides useSSL.
func splitEndpoint(raw string, useSSL bool) (string, bool) {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https") {
		return u.Host, u.Scheme == "https"
	}
	if i := strings.IndexByte(raw, '/'); i >= 0 {
		raw = raw[:i]
	}
	return raw, useSSL
}

func publicBase(cfg Config, endpoint string, secure bool) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	scheme := "http"
	if secure {
		scheme = "https"
	}
	return scheme + "://" + endpoint + "/" + cfg.Bucket
}
