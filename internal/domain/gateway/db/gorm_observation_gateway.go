package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"weather-etl/internal/domain/entity"
)

// WeatherObservation is the warehouse model of a WeatherRow
type WeatherObservation struct {
	ID                 uint      `gorm:"primaryKey"`
	RunID              string    `gorm:"column:run_id;size:36;index"`
	City               string    `gorm:"column:city;size:120;not null"`
	Country            string    `gorm:"column:country;size:2;not null"`
	CurrentTempC       float64   `gorm:"column:current_temp_c;not null"`
	HumidityPercent    int64     `gorm:"column:humidity_percent;not null"`
	WeatherDescription string    `gorm:"column:weather_description"`
	ExtractionDate     time.Time `gorm:"column:extraction_date;not null"`
}

func (WeatherObservation) TableName() string {
	return "weather_observations"
}

type GormObservationGateway struct {
	DB        *gorm.DB
	BatchSize int
}

var _ ObservationGateway = (*GormObservationGateway)(nil)

func NewGormObservationGateway(db *gorm.DB, batchSize int) *GormObservationGateway {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &GormObservationGateway{DB: db, BatchSize: batchSize}
}

// Migrate creates or updates the observations table
func (gateway *GormObservationGateway) Migrate(ctx context.Context) error {
	return gateway.DB.WithContext(ctx).AutoMigrate(&WeatherObservation{})
}

func (gateway *GormObservationGateway) SaveAll(ctx context.Context, runID string, table *entity.WeatherTable) error {
	if table.Len() == 0 {
		return nil
	}

	// gorm wraps multi batch inserts in a transaction, a single batch is one statement
	observations := toObservations(runID, table)
	if err := gateway.DB.WithContext(ctx).CreateInBatches(&observations, gateway.BatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert %d weather observations: %w", len(observations), err)
	}
	return nil
}

func toObservations(runID string, table *entity.WeatherTable) []WeatherObservation {
	observations := make([]WeatherObservation, 0, table.Len())
	for _, row := range table.Rows {
		observations = append(observations, WeatherObservation{
			RunID:              runID,
			City:               row.City,
			Country:            row.Country,
			CurrentTempC:       row.CurrentTempC,
			HumidityPercent:    row.HumidityPercent,
			WeatherDescription: row.WeatherDescription,
			ExtractionDate:     row.ExtractionDate.UTC(),
		})
	}
	return observations
}
