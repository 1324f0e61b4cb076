package parquetfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/compress"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"

	"weather-etl/internal/domain/entity"
	"weather-etl/internal/domain/gateway/storage"
)

const createdBy = "weather-etl"

// WeatherSchema is the column layout of every file written by Writer.
var WeatherSchema = arrow.NewSchema([]arrow.Field{
	{Name: "city", Type: arrow.BinaryTypes.String},
	{Name: "country", Type: arrow.BinaryTypes.String},
	{Name: "current_temp_c", Type: arrow.PrimitiveTypes.Float64},
	{Name: "humidity_percent", Type: arrow.PrimitiveTypes.Int64},
	{Name: "weather_description", Type: arrow.BinaryTypes.String},
	{Name: "extraction_date", Type: &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}},
}, nil)

// Writer encodes a weather table as a single row group Parquet file.
type Writer struct {
	allocator   memory.Allocator
	compression compress.Compression
}

var _ storage.TableWriter = (*Writer)(nil)

// NewWriter accepts snappy, gzip, zstd or none. Empty means snappy.
func NewWriter(compression string) (*Writer, error) {
	codec, err := ParseCompression(compression)
	if err != nil {
		return nil, err
	}
	return &Writer{allocator: memory.NewGoAllocator(), compression: codec}, nil
}

func ParseCompression(name string) (compress.Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "snappy":
		return compress.Codecs.Snappy, nil
	case "gzip":
		return compress.Codecs.Gzip, nil
	case "zstd":
		return compress.Codecs.Zstd, nil
	case "none", "uncompressed":
		return compress.Codecs.Uncompressed, nil
	default:
		return compress.Codecs.Uncompressed, fmt.Errorf("unsupported parquet compression %q", name)
	}
}

// WriteTable creates the parent directory when needed and replaces path atomically,
// so a failed write never leaves a partial file behind.
func (w *Writer) WriteTable(ctx context.Context, table *entity.WeatherTable, path string) error {
	if table.Len() == 0 {
		return errors.New("refusing to write an empty weather table")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := w.encode(table, &buf); err != nil {
		return fmt.Errorf("failed to encode parquet: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	return replaceFile(dir, path, buf.Bytes())
}

func (w *Writer) encode(table *entity.WeatherTable, buf *bytes.Buffer) error {
	record := w.buildRecord(table)
	defer record.Release()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(w.compression),
		parquet.WithCreatedBy(createdBy),
		parquet.WithAllocator(w.allocator),
	)
	fw, err := pqarrow.NewFileWriter(WeatherSchema, buf, props, pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema()))
	if err != nil {
		return err
	}
	if err = fw.Write(record); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func (w *Writer) buildRecord(table *entity.WeatherTable) arrow.Record {
	builder := array.NewRecordBuilder(w.allocator, WeatherSchema)
	defer builder.Release()

	city := builder.Field(0).(*array.StringBuilder)
	country := builder.Field(1).(*array.StringBuilder)
	temp := builder.Field(2).(*array.Float64Builder)
	humidity := builder.Field(3).(*array.Int64Builder)
	description := builder.Field(4).(*array.StringBuilder)
	extracted := builder.Field(5).(*array.TimestampBuilder)

	for _, row := range table.Rows {
		city.Append(row.City)
		country.Append(row.Country)
		temp.Append(row.CurrentTempC)
		humidity.Append(row.HumidityPercent)
		description.Append(row.WeatherDescription)
		extracted.Append(arrow.Timestamp(row.ExtractionDate.UTC().UnixMicro()))
	}

	return builder.NewRecord()
}

func replaceFile(dir, path string, content []byte) error {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move parquet file to %s: %w", path, err)
	}
	return nil
}
