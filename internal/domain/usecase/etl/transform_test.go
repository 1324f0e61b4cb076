package etl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-etl/internal/domain/entity"
)

func TestTransform(t *testing.T) {
	t.Run("coerces temperature", func(t *testing.T) {
		records := []entity.WeatherRecord{
			{City: "Sao Paulo", Country: "BR", CurrentTemp: "21.5", HumidityPercent: 70, WeatherDescription: "clear sky", ExtractionDate: fixedClock()},
			{City: "Curitiba", Country: "BR", CurrentTemp: `"22.0"`, HumidityPercent: 65, WeatherDescription: "few clouds", ExtractionDate: fixedClock()},
		}

		table, err := Transform(records)

		require.NoError(t, err)
		require.Equal(t, 2, table.Len())
		assert.Equal(t, entity.WeatherRow{
			City:               "Sao Paulo",
			Country:            "BR",
			CurrentTempC:       21.5,
			HumidityPercent:    70,
			WeatherDescription: "clear sky",
			ExtractionDate:     fixedClock(),
		}, table.Rows[0])
		assert.Equal(t, 22.0, table.Rows[1].CurrentTempC)
		assert.Equal(t, "Curitiba", table.Rows[1].City)
	})

	t.Run("non numeric temperature fails the table", func(t *testing.T) {
		records := []entity.WeatherRecord{
			{City: "Sao Paulo", CurrentTemp: "21.5"},
			{City: "Recife", CurrentTemp: `"hot"`},
		}

		table, err := Transform(records)

		assert.Nil(t, table)
		var coercion *CoercionError
		require.ErrorAs(t, err, &coercion)
		assert.Equal(t, "Recife", coercion.City)
		assert.Equal(t, "current_temp_c", coercion.Column)
		assert.Equal(t, "hot", coercion.Value)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Transform(nil)
		assert.ErrorIs(t, err, ErrNoRecords)
	})
}

func TestParseMalformedPolicy(t *testing.T) {
	policy, err := ParseMalformedPolicy("")
	require.NoError(t, err)
	assert.Equal(t, MalformedSkip, policy)

	policy, err = ParseMalformedPolicy(" FATAL ")
	require.NoError(t, err)
	assert.Equal(t, MalformedFatal, policy)

	_, err = ParseMalformedPolicy("retry")
	assert.Error(t, err)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrRunInProgress))
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(fmt.Errorf("extraction aborted: %w", context.DeadlineExceeded)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(&CoercionError{City: "Recife", Err: errors.New("bad")}))
}
