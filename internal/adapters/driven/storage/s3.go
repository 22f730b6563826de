package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ObjectStore = (*S3Store)(nil)

// Config holds S3-compatible storage configuration
type Config struct {
	// Endpoint is the host:port of the storage service (no scheme)
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string

	// UseSSL selects https for generated URLs
	UseSSL bool
}

// S3Store implements driven.ObjectStore against any S3-compatible
// service (AWS S3, MinIO, R2). Presigning is local computation; only
// Delete talks to the service.
type S3Store struct {
	client *minio.Client
	bucket string
}

// New creates an S3Store and verifies the configuration
func New(cfg Config) (*S3Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &S3Store{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// PresignPut returns a presigned upload URL for the given key.
// The content type is pinned into the signature so the client must
// upload with the declared type.
func (s *S3Store) PresignPut(key, contentType string, expiry time.Duration) (string, error) {
	headers := http.Header{}
	if contentType != "" {
		headers.Set("Content-Type", contentType)
	}

	u, err := s.client.PresignHeader(context.Background(), http.MethodPut, s.bucket, key, expiry, url.Values{}, headers)
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}

	return u.String(), nil
}

// PresignGet returns a presigned download URL for the given key
func (s *S3Store) PresignGet(key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(context.Background(), s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}

	return u.String(), nil
}

// Delete removes an object
func (s *S3Store) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
