package db

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"weather-etl/internal/domain/entity"
)

func dryRunDB(t *testing.T, statements *[]string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=etl dbname=weather sslmode=disable"}), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	err = db.Callback().Create().After("gorm:create").Register("test:capture", func(tx *gorm.DB) {
		*statements = append(*statements, tx.Statement.SQL.String())
	})
	require.NoError(t, err)
	return db
}

func observationTable() *entity.WeatherTable {
	extracted := time.Date(2024, 5, 1, 9, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	return &entity.WeatherTable{Rows: []entity.WeatherRow{
		{City: "Sao Paulo", Country: "BR", CurrentTempC: 21.5, HumidityPercent: 70, WeatherDescription: "clear sky", ExtractionDate: extracted},
		{City: "Rio de Janeiro", Country: "BR", CurrentTempC: 25, HumidityPercent: 80, WeatherDescription: "mist", ExtractionDate: extracted},
		{City: "Curitiba", Country: "BR", CurrentTempC: 12, HumidityPercent: 90, WeatherDescription: "rain", ExtractionDate: extracted},
	}}
}

func TestGormObservationGateway_SaveAll(t *testing.T) {
	t.Run("inserts in batches", func(t *testing.T) {
		var statements []string
		gateway := NewGormObservationGateway(dryRunDB(t, &statements), 2)

		require.NoError(t, gateway.SaveAll(context.Background(), "run-1", observationTable()))

		require.Len(t, statements, 2)
		for _, statement := range statements {
			assert.True(t, strings.HasPrefix(statement, `INSERT INTO "weather_observations"`), statement)
			assert.Contains(t, statement, `"run_id"`)
			assert.Contains(t, statement, `"current_temp_c"`)
		}
	})

	t.Run("empty table is a no-op", func(t *testing.T) {
		var statements []string
		gateway := NewGormObservationGateway(dryRunDB(t, &statements), 0)

		require.NoError(t, gateway.SaveAll(context.Background(), "run-1", &entity.WeatherTable{}))
		assert.Empty(t, statements)
		assert.Equal(t, 100, gateway.BatchSize)
	})
}

func TestToObservations(t *testing.T) {
	observations := toObservations("run-1", observationTable())

	require.Len(t, observations, 3)
	assert.Equal(t, "run-1", observations[0].RunID)
	assert.Equal(t, "Sao Paulo", observations[0].City)
	assert.Equal(t, 21.5, observations[0].CurrentTempC)
	assert.Equal(t, time.UTC, observations[0].ExtractionDate.Location())
	assert.Equal(t, 12, observations[0].ExtractionDate.Hour())
	assert.Equal(t, "weather_observations", WeatherObservation{}.TableName())
}
