package storage

import (
	"context"
	"errors"
)

// Error kinds reported by ObjectStorage implementations. Callers classify
// failures with errors.Is; the wrapped chain keeps the backend detail.
var (
	// ErrConnectivity covers network and authentication failures talking to
	// the store.
	ErrConnectivity = errors.New("storage: connectivity failure")

	// ErrNotFound means the local file to upload is missing or unreadable.
	ErrNotFound = errors.New("storage: local file not found")

	// ErrConflict means the bucket was created concurrently by someone else.
	ErrConflict = errors.New("storage: bucket already exists")

	// ErrStorage covers any other backend-reported fault.
	ErrStorage = errors.New("storage: backend fault")
)

// ObjectStorage captures the minimal S3-compatible operations the uploader needs.
type ObjectStorage interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string) error
	PutObject(ctx context.Context, bucket, key, localPath string) (int64, error)
}
