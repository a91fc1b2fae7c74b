package archive

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"backoffice/config"
	"backoffice/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"gocloud.dev/blob/memblob"
)

func TestBlobArchive_Store(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	archive := NewBlobArchive(bucket, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.True(t, archive.Enabled())

	data := []byte("id,name\n1,Acme\n")
	key, err := archive.Store(ctx, "suppliers/20240110T080000.csv", data)
	require.NoError(t, err)
	assert.Equal(t, "suppliers/20240110T080000.csv", key)

	stored, err := bucket.ReadAll(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	attrs, err := bucket.Attributes(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, util.ChecksumBytes(data), attrs.Metadata["sha256"])
}

func TestNew_DisabledWithoutBucket(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	archive, err := New(Params{
		Lc:     lc,
		Ctx:    context.Background(),
		Config: &config.Config{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	assert.False(t, archive.Enabled())

	key, err := archive.Store(context.Background(), "x.csv", []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestNew_MemBucket(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	cfg := &config.Config{Exports: &config.ExportsConfig{BucketURL: "mem://"}}

	archive, err := New(Params{
		Lc:     lc,
		Ctx:    context.Background(),
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	assert.True(t, archive.Enabled())

	lc.RequireStart().RequireStop()
}
