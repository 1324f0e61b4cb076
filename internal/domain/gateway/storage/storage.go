package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"weather-etl/internal/domain/entity"
)

// TableWriter persists a weather table as a local file, replacing any previous file at path.
type TableWriter interface {
	WriteTable(ctx context.Context, table *entity.WeatherTable, path string) error
}

// ObjectStoreUploader copies a local artifact to a bucket, keyed by the file base name.
type ObjectStoreUploader interface {
	Upload(ctx context.Context, bucket string, localPath string) (entity.RemoteRef, error)
}

// UploadError reports a transport, auth or local read failure while uploading.
type UploadError struct {
	Provider string
	Bucket   string
	Object   string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %s to %s bucket %q failed: %v", e.Object, e.Provider, e.Bucket, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// ObjectName is the object key of localPath: its base name, under prefix when one is set.
func ObjectName(prefix, localPath string) string {
	name := filepath.Base(localPath)
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
