package uploader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/minio-uploader/internal/storage"
)

// ErrBadMapping reports a malformed local:relative mapping in a batch spec.
var ErrBadMapping = errors.New("uploader: invalid file mapping")

// Uploader drives single, batch and directory uploads against an object
// store. Per-item failures never escape its public methods; they are logged
// and folded into the returned BatchResult.
type Uploader struct {
	store      storage.ObjectStorage
	bucket     string
	basePrefix string
	workers    int
	log        zerolog.Logger

	now func() time.Time
}

// New builds an Uploader. workers bounds the batch worker pool; values
// below 1 are raised to 1.
func New(store storage.ObjectStorage, bucket, basePrefix string, workers int, log zerolog.Logger) *Uploader {
	if workers < 1 {
		workers = 1
	}
	return &Uploader{
		store:      store,
		bucket:     bucket,
		basePrefix: basePrefix,
		workers:    workers,
		log:        log,
		now:        time.Now,
	}
}

// EnsureBucket makes sure the target bucket exists, creating it when absent.
// Returns false on any gateway failure so the caller can decide whether to
// abort; a bucket created concurrently by someone else counts as success.
func (u *Uploader) EnsureBucket(ctx context.Context) bool {
	exists, err := u.store.BucketExists(ctx, u.bucket)
	if err != nil {
		u.log.Error().Err(err).Str("bucket", u.bucket).Msg("bucket check failed")
		return false
	}
	if exists {
		u.log.Info().Str("bucket", u.bucket).Msg("bucket already exists")
		return true
	}

	if err := u.store.MakeBucket(ctx, u.bucket); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			u.log.Info().Str("bucket", u.bucket).Msg("bucket created concurrently")
			return true
		}
		u.log.Error().Err(err).Str("bucket", u.bucket).Msg("bucket creation failed")
		return false
	}

	u.log.Info().Str("bucket", u.bucket).Msg("bucket created")
	return true
}

// UploadOne uploads a single file. Every failure mode is logged and
// reported as false; nothing propagates to the caller.
func (u *Uploader) UploadOne(ctx context.Context, localPath, relativePath string) bool {
	return u.upload(ctx, UploadItem{LocalPath: localPath, RelativePath: relativePath}) == nil
}

// upload is the single-attempt upload path shared by all modes. No retries;
// retry policy lives in the SDK.
func (u *Uploader) upload(ctx context.Context, item UploadItem) error {
	info, err := os.Stat(item.LocalPath)
	if err != nil || !info.Mode().IsRegular() {
		err = fmt.Errorf("local file %s: %w", item.LocalPath, storage.ErrNotFound)
		u.log.Error().
			Str("local", item.LocalPath).
			Str("relative", item.RelativePath).
			Msg("file missing or not a regular file")
		return err
	}

	key := ComputeObjectKey(u.basePrefix, item.RelativePath, u.now())

	u.log.Info().
		Str("local", item.LocalPath).
		Str("relative", item.RelativePath).
		Str("key", key).
		Str("size", units.HumanSize(float64(info.Size()))).
		Msg("uploading file")

	if _, err := u.store.PutObject(ctx, u.bucket, key, item.LocalPath); err != nil {
		u.log.Error().Err(err).
			Str("local", item.LocalPath).
			Str("relative", item.RelativePath).
			Str("key", key).
			Msg("upload failed")
		return err
	}

	u.log.Info().Str("key", key).Msg("upload succeeded")
	return nil
}

// UploadBatch uploads items through a bounded worker pool. Items are fully
// isolated: one failure never stops the rest. Outcomes land in a slot per
// input index, so Failures keeps input order regardless of worker count.
// Once ctx is cancelled no further items are dispatched; in-flight items
// finish and are recorded, the undispatched remainder is recorded as failed.
func (u *Uploader) UploadBatch(ctx context.Context, items []UploadItem) BatchResult {
	if len(items) == 0 {
		return BatchResult{}
	}

	u.log.Info().Int("total", len(items)).Msg("starting batch upload")

	outcomes := make([]UploadOutcome, len(items))
	g := new(errgroup.Group)
	g.SetLimit(u.workers)

dispatch:
	for i, item := range items {
		select {
		case <-ctx.Done():
			for j := i; j < len(items); j++ {
				outcomes[j] = UploadOutcome{Item: items[j], Err: ctx.Err()}
			}
			break dispatch
		default:
		}

		g.Go(func() error {
			outcomes[i] = UploadOutcome{Item: item, Err: u.upload(ctx, item)}
			return nil
		})
	}
	_ = g.Wait()

	result := Summarize(outcomes)

	u.log.Info().
		Int("total", result.Total).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("batch upload finished")

	if result.Failed > 0 {
		for _, item := range result.Failures {
			u.log.Warn().
				Str("local", item.LocalPath).
				Str("relative", item.RelativePath).
				Msg("failed file")
		}
	}

	return result
}

// UploadDirectory uploads every regular file under rootDir, prefixing each
// discovered relative path with baseRelative when non-empty. A rootDir that
// is missing or not a directory yields a zeroed result.
func (u *Uploader) UploadDirectory(ctx context.Context, rootDir, baseRelative string) BatchResult {
	info, err := os.Stat(rootDir)
	if err != nil || !info.IsDir() {
		u.log.Error().Str("directory", rootDir).Msg("directory missing or not a directory")
		return BatchResult{}
	}

	items, err := Walk(rootDir)
	if err != nil {
		u.log.Error().Err(err).Str("directory", rootDir).Msg("directory enumeration failed")
		return BatchResult{}
	}

	if base := strings.Trim(baseRelative, "/"); base != "" {
		for i := range items {
			items[i].RelativePath = path.Join(base, items[i].RelativePath)
		}
	}

	return u.UploadBatch(ctx, items)
}

// ParseMappings parses batch specs of the form local:relative. The local
// half keeps everything up to the first colon, matching how mappings are
// written on the command line.
func ParseMappings(specs []string) ([]UploadItem, error) {
	items := make([]UploadItem, 0, len(specs))
	for _, spec := range specs {
		local, relative, ok := strings.Cut(spec, ":")
		if !ok || local == "" || relative == "" {
			return nil, fmt.Errorf("%w: %q (want local:relative)", ErrBadMapping, spec)
		}
		items = append(items, UploadItem{LocalPath: local, RelativePath: relative})
	}
	return items, nil
}
