package gcp

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"weather-etl/internal/domain/entity"
	domainstorage "weather-etl/internal/domain/gateway/storage"
)

const (
	ProviderGCS        = "gcs"
	parquetContentType = "application/vnd.apache.parquet"
)

// ObjectWriterFunc opens a writer for bucket/object; the object exists once Close returns nil.
type ObjectWriterFunc func(ctx context.Context, bucket, object string) io.WriteCloser

// ClientOptions configures the storage client. Empty values use Application Default Credentials
// and the public endpoint. STORAGE_EMULATOR_HOST is honoured by the client itself.
type ClientOptions struct {
	CredentialsFile string
	Endpoint        string
}

func NewStorageClient(ctx context.Context, opts ClientOptions) (*storage.Client, error) {
	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}
	return client, nil
}

// ClientWriter writes objects through a storage client.
func ClientWriter(client *storage.Client) ObjectWriterFunc {
	return func(ctx context.Context, bucket, object string) io.WriteCloser {
		w := client.Bucket(bucket).Object(object).NewWriter(ctx)
		w.ContentType = parquetContentType
		return w
	}
}

type GCSUploader struct {
	newWriter ObjectWriterFunc
	prefix    string
}

var _ domainstorage.ObjectStoreUploader = (*GCSUploader)(nil)

func NewGCSUploader(newWriter ObjectWriterFunc, prefix string) *GCSUploader {
	return &GCSUploader{newWriter: newWriter, prefix: prefix}
}

// Upload streams localPath to bucket, overwriting an existing object of the same name.
func (u *GCSUploader) Upload(ctx context.Context, bucket, localPath string) (entity.RemoteRef, error) {
	object := domainstorage.ObjectName(u.prefix, localPath)
	fail := func(err error) (entity.RemoteRef, error) {
		return entity.RemoteRef{}, &domainstorage.UploadError{Provider: ProviderGCS, Bucket: bucket, Object: object, Err: err}
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fail(err)
	}
	defer file.Close()

	// cancelling ctx makes the storage writer discard a partial upload
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := u.newWriter(ctx, bucket, object)
	if _, err = io.Copy(w, file); err != nil {
		cancel()
		_ = w.Close()
		return fail(err)
	}
	if err = w.Close(); err != nil {
		return fail(err)
	}

	return entity.RemoteRef{
		Provider: ProviderGCS,
		Bucket:   bucket,
		Object:   object,
		URI:      fmt.Sprintf("gs://%s/%s", bucket, object),
	}, nil
}
