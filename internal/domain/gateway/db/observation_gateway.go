package db

import (
	"context"

	"weather-etl/internal/domain/entity"
)

// ObservationGateway stores extracted rows in the warehouse
type ObservationGateway interface {
	// SaveAll inserts every row of the table tagged with the run id, all or nothing
	SaveAll(ctx context.Context, runID string, table *entity.WeatherTable) error
}
