package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawValueText(t *testing.T) {
	assert.Equal(t, "21.5", RawValue("21.5").Text())
	assert.Equal(t, "21.5", RawValue(`"21.5"`).Text())
	assert.Equal(t, "clear sky", RawValue(` "clear sky" `).Text())
	assert.Equal(t, "", RawValue("").Text())
}

func TestLocationQuery(t *testing.T) {
	assert.Equal(t, "Sao Paulo,BR", Location{City: "Sao Paulo", Country: "BR"}.Query())
	assert.Equal(t, "Lisbon", Location{City: "Lisbon"}.String())
}

func TestWeatherTableLen(t *testing.T) {
	var nilTable *WeatherTable
	assert.Equal(t, 0, nilTable.Len())
	assert.Equal(t, 2, (&WeatherTable{Rows: make([]WeatherRow, 2)}).Len())
}
