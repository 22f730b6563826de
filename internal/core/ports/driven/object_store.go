package driven

import (
	"context"
	"time"
)

// ObjectStore is the boundary to S3-compatible object storage. Uploads
// happen browser-to-bucket via presigned URLs; the backend only signs
// and deletes.
type ObjectStore interface {
	// PresignPut returns a presigned upload URL for the given key
	PresignPut(key, contentType string, expiry time.Duration) (string, error)

	// PresignGet returns a presigned download URL for the given key
	PresignGet(key string, expiry time.Duration) (string, error)

	// Delete removes an object. Used best-effort on document deletion.
	Delete(ctx context.Context, key string) error
}
