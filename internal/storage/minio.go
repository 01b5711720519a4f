package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig encapsulates the connection info for a MinIO / S3-compatible service.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Secure    bool
}

// MinioClient implements ObjectStorage on top of the MinIO SDK.
type MinioClient struct {
	client *minio.Client
}

// NewMinioClient builds a new MinioClient. Multipart handling, retries and
// TLS all live inside the SDK.
func NewMinioClient(cfg MinioConfig) (*MinioClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials must be provided")
	}

	// The SDK wants host:port; Secure picks the scheme.
	endpoint := strings.TrimPrefix(cfg.Endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for %s: %w", endpoint, err)
	}

	return &MinioClient{client: client}, nil
}

// BucketExists reports whether the bucket exists.
func (c *MinioClient) BucketExists(ctx context.Context, bucket string) (bool, error) {
	exists, err := c.client.BucketExists(ctx, bucket)
	if err != nil {
		return false, fmt.Errorf("bucket check %s: %w: %w", bucket, classify(err), err)
	}
	return exists, nil
}

// MakeBucket creates the bucket.
func (c *MinioClient) MakeBucket(ctx context.Context, bucket string) error {
	if err := c.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket %s: %w: %w", bucket, classify(err), err)
	}
	return nil
}

// PutObject streams the local file to bucket/key and returns the uploaded size.
func (c *MinioClient) PutObject(ctx context.Context, bucket, key, localPath string) (int64, error) {
	info, err := os.Stat(localPath)
	if err != nil || !info.Mode().IsRegular() {
		return 0, fmt.Errorf("local file %s: %w", localPath, ErrNotFound)
	}

	uploaded, err := c.client.FPutObject(ctx, bucket, key, localPath, minio.PutObjectOptions{
		ContentType: detectContentType(localPath),
	})
	if err != nil {
		return 0, fmt.Errorf("put object %s/%s: %w: %w", bucket, key, classify(err), err)
	}
	return uploaded.Size, nil
}

var _ ObjectStorage = (*MinioClient)(nil)

// detectContentType sniffs the file content, falling back to a generic type.
func detectContentType(localPath string) string {
	if mt, err := mimetype.DetectFile(localPath); err == nil {
		return mt.String()
	}
	return "application/octet-stream"
}

// classify maps an SDK error to one of the package error kinds.
func classify(err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return ErrNotFound
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ErrConnectivity
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrConnectivity
	}

	switch minio.ToErrorResponse(err).Code {
	case "BucketAlreadyOwnedByYou", "BucketAlreadyExists":
		return ErrConflict
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return ErrConnectivity
	}
	return ErrStorage
}
