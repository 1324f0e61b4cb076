package etl

import (
	"weather-etl/internal/domain/entity"
	"weather-etl/pkg/util/numberutils"
)

const currentTempColumn = "current_temp_c"

// Transform builds the weather table, coercing current_temp_c to float64.
// A value that is neither a number nor a numeric string fails the whole table.
func Transform(records []entity.WeatherRecord) (*entity.WeatherTable, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	table := &entity.WeatherTable{Rows: make([]entity.WeatherRow, 0, len(records))}
	for _, record := range records {
		raw := record.CurrentTemp.Text()
		temp, err := numberutils.ToFloat64WithError(raw)
		if err != nil {
			return nil, &CoercionError{City: record.City, Column: currentTempColumn, Value: raw, Err: err}
		}

		table.Rows = append(table.Rows, entity.WeatherRow{
			City:               record.City,
			Country:            record.Country,
			CurrentTempC:       temp,
			HumidityPercent:    record.HumidityPercent,
			WeatherDescription: record.WeatherDescription,
			ExtractionDate:     record.ExtractionDate,
		})
	}

	return table, nil
}
