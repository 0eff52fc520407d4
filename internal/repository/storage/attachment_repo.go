package storage

import (
	"context"
	"io"
	"time"
)

// AttachmentRepository defines the interface for attachment storage operations.
// Objects stay private; access goes through presigned URLs.
type AttachmentRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	PresignURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}
