package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"weather-etl/internal/domain/model"
)

func TestUploadError(t *testing.T) {
	cause := errors.New("403 forbidden")
	err := fmt.Errorf("loader: %w", &UploadError{Provider: "gcs", Bucket: "agro", Object: "weather.parquet", Err: cause})

	var uploadErr *UploadError
	assert.True(t, errors.As(err, &uploadErr))
	assert.Equal(t, "agro", uploadErr.Bucket)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, `loader: upload of weather.parquet to gcs bucket "agro" failed: 403 forbidden`, err.Error())
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "weather_data_latest.parquet", ObjectName("", "data/raw/weather_data_latest.parquet"))
	assert.Equal(t, "raw/weather_data_latest.parquet", ObjectName("/raw/", "data/raw/weather_data_latest.parquet"))
	assert.Equal(t, "a/b/file.parquet", ObjectName("a/b", "/tmp/file.parquet"))
}

func TestHealthOutputGateway(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "raw")

	status := (&HealthOutputGateway{Dir: dir}).Health()
	assert.Equal(t, model.StatusUp, status.Status)
	assert.DirExists(t, dir)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)

	blocker := filepath.Join(t.TempDir(), "file")
	assert.NoError(t, os.WriteFile(blocker, nil, 0o644))
	status = (&HealthOutputGateway{Dir: filepath.Join(blocker, "raw")}).Health()
	assert.Equal(t, model.StatusDown, status.Status)
}
