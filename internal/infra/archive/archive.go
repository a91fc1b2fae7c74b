// Package archive keeps copies of rendered exports in a gocloud blob bucket.
package archive

import (
	"context"
	"log/slog"

	"backoffice/config"
	"backoffice/internal/domain/service"
	"backoffice/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
)

// Params holds dependencies for the export archive, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket. Archiving is disabled without a bucket URL.
func New(params Params) (service.ExportArchive, error) {
	cfg := params.Config.Exports
	if cfg == nil || cfg.BucketURL == "" {
		return disabled{}, nil
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open export bucket %s", cfg.BucketURL)
	}

	params.Logger.Info("Export archive enabled", slog.String("bucket_url", cfg.BucketURL))
	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return NewBlobArchive(bucket, params.Logger), nil
}

type blobArchive struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// NewBlobArchive archives into an already opened bucket.
func NewBlobArchive(bucket *blob.Bucket, logger *slog.Logger) service.ExportArchive {
	return &blobArchive{bucket: bucket, logger: logger}
}

func (a *blobArchive) Enabled() bool {
	return true
}

// Store writes data under key with its SHA256 in the object metadata.
func (a *blobArchive) Store(ctx context.Context, key string, data []byte) (string, error) {
	checksum := util.ChecksumBytes(data)
	if err := a.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		Metadata: map[string]string{"sha256": checksum},
	}); err != nil {
		return "", errors.Wrapf(err, "failed to archive export %s", key)
	}

	a.logger.InfoContext(ctx, "Export archived",
		slog.String("key", key),
		slog.String("size", util.FormatBytes(int64(len(data)))),
		slog.String("sha256", checksum),
	)

	return key, nil
}

type disabled struct{}

func (disabled) Enabled() bool {
	return false
}

func (disabled) Store(context.Context, string, []byte) (string, error) {
	return "", nil
}
