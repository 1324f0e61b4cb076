package parquetfile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"

	"weather-etl/internal/domain/entity"
)

// ReadTable loads a file produced by Writer back into rows.
func ReadTable(ctx context.Context, path string) (*entity.WeatherTable, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	table, err := pqarrow.ReadTable(ctx, bytes.NewReader(content), parquet.NewReaderProperties(memory.DefaultAllocator),
		pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet %s: %w", path, err)
	}
	defer table.Release()

	if err = checkColumns(table.Schema()); err != nil {
		return nil, fmt.Errorf("unexpected schema in %s: %w", path, err)
	}

	reader := array.NewTableReader(table, table.NumRows())
	defer reader.Release()

	result := &entity.WeatherTable{Rows: make([]entity.WeatherRow, 0, table.NumRows())}
	for reader.Next() {
		record := reader.Record()
		city := record.Column(0).(*array.String)
		country := record.Column(1).(*array.String)
		temp := record.Column(2).(*array.Float64)
		humidity := record.Column(3).(*array.Int64)
		description := record.Column(4).(*array.String)
		extracted := record.Column(5).(*array.Timestamp)

		for i := 0; i < int(record.NumRows()); i++ {
			result.Rows = append(result.Rows, entity.WeatherRow{
				City:               city.Value(i),
				Country:            country.Value(i),
				CurrentTempC:       temp.Value(i),
				HumidityPercent:    humidity.Value(i),
				WeatherDescription: description.Value(i),
				ExtractionDate:     time.UnixMicro(int64(extracted.Value(i))).UTC(),
			})
		}
	}

	return result, nil
}

func checkColumns(schema *arrow.Schema) error {
	if schema.NumFields() != WeatherSchema.NumFields() {
		return fmt.Errorf("expected %d columns, got %d", WeatherSchema.NumFields(), schema.NumFields())
	}
	for i, field := range WeatherSchema.Fields() {
		got := schema.Field(i)
		if got.Name != field.Name || !arrow.TypeEqual(got.Type, field.Type) {
			return fmt.Errorf("column %d: expected %s %s, got %s %s", i, field.Name, field.Type, got.Name, got.Type)
		}
	}
	return nil
}
