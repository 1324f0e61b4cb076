package aws

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"weather-etl/internal/domain/entity"
	"weather-etl/internal/domain/gateway/storage"
)

const (
	ProviderS3         = "s3"
	parquetContentType = "application/vnd.apache.parquet"
)

// S3PutObjectAPI is the subset of the S3 client used by the uploader
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client creates an S3 client. A custom endpoint (LocalStack, MinIO) switches to path style addressing.
func NewS3Client(awsCfg aws.Config, endpoint string) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
}

type S3Uploader struct {
	client S3PutObjectAPI
	prefix string
}

var _ storage.ObjectStoreUploader = (*S3Uploader)(nil)

// NewS3Uploader stores objects under prefix, which may be empty.
func NewS3Uploader(client S3PutObjectAPI, prefix string) *S3Uploader {
	return &S3Uploader{client: client, prefix: prefix}
}

// Upload puts localPath under its base name. The object is overwritten when it exists.
func (u *S3Uploader) Upload(ctx context.Context, bucket, localPath string) (entity.RemoteRef, error) {
	object := storage.ObjectName(u.prefix, localPath)
	fail := func(err error) (entity.RemoteRef, error) {
		return entity.RemoteRef{}, &storage.UploadError{Provider: ProviderS3, Bucket: bucket, Object: object, Err: err}
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fail(err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fail(err)
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(object),
		Body:          file,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(parquetContentType),
		Metadata:      map[string]string{"source-file": filepath.Base(localPath)},
	})
	if err != nil {
		return fail(err)
	}

	return entity.RemoteRef{
		Provider: ProviderS3,
		Bucket:   bucket,
		Object:   object,
		URI:      fmt.Sprintf("s3://%s/%s", bucket, object),
	}, nil
}
