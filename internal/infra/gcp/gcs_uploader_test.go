package gcp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainstorage "weather-etl/internal/domain/gateway/storage"
)

type memoryObject struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (o *memoryObject) Close() error {
	o.closed = true
	return o.closeErr
}

type memoryBucket struct {
	objects  map[string]*memoryObject
	closeErr error
}

func (b *memoryBucket) writer(_ context.Context, bucket, object string) io.WriteCloser {
	o := &memoryObject{closeErr: b.closeErr}
	b.objects[bucket+"/"+object] = o
	return o
}

func artifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weather_data_latest.parquet")
	require.NoError(t, os.WriteFile(path, []byte("PAR1 data PAR1"), 0o644))
	return path
}

func TestGCSUploader_Upload(t *testing.T) {
	t.Run("streams file to bucket", func(t *testing.T) {
		bucket := &memoryBucket{objects: map[string]*memoryObject{}}

		ref, err := NewGCSUploader(bucket.writer, "").Upload(context.Background(), "agro-weather", artifact(t))

		require.NoError(t, err)
		assert.Equal(t, "gs://agro-weather/weather_data_latest.parquet", ref.URI)
		assert.Equal(t, ProviderGCS, ref.Provider)
		object := bucket.objects["agro-weather/weather_data_latest.parquet"]
		require.NotNil(t, object)
		assert.True(t, object.closed)
		assert.Equal(t, "PAR1 data PAR1", object.String())
	})

	t.Run("close failure is an upload error", func(t *testing.T) {
		bucket := &memoryBucket{objects: map[string]*memoryObject{}, closeErr: fmt.Errorf("googleapi: %w", storage.ErrBucketNotExist)}

		_, err := NewGCSUploader(bucket.writer, "raw").Upload(context.Background(), "missing", artifact(t))

		var uploadErr *domainstorage.UploadError
		require.ErrorAs(t, err, &uploadErr)
		assert.Equal(t, "raw/weather_data_latest.parquet", uploadErr.Object)
		assert.ErrorIs(t, err, storage.ErrBucketNotExist)
	})

	t.Run("missing local file", func(t *testing.T) {
		bucket := &memoryBucket{objects: map[string]*memoryObject{}}

		_, err := NewGCSUploader(bucket.writer, "").Upload(context.Background(), "agro-weather", "/nonexistent/weather.parquet")

		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Empty(t, bucket.objects)
	})
}
