package entity

import (
	"strconv"
	"strings"
	"time"
)

// RawValue is an unparsed JSON scalar token, either a number literal or a quoted string.
type RawValue string

// Text returns the token without JSON string quoting.
func (v RawValue) Text() string {
	s := strings.TrimSpace(string(v))
	if strings.HasPrefix(s, `"`) {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return unquoted
		}
	}
	return s
}

// WeatherRecord is one successful extraction, created once per location and never mutated.
type WeatherRecord struct {
	City               string
	Country            string
	CurrentTemp        RawValue
	HumidityPercent    int64
	WeatherDescription string
	ExtractionDate     time.Time
}

// WeatherRow is a WeatherRecord after numeric coercion.
type WeatherRow struct {
	City               string    `json:"city" gorm:"column:city"`
	Country            string    `json:"country" gorm:"column:country"`
	CurrentTempC       float64   `json:"current_temp_c" gorm:"column:current_temp_c"`
	HumidityPercent    int64     `json:"humidity_percent" gorm:"column:humidity_percent"`
	WeatherDescription string    `json:"weather_description" gorm:"column:weather_description"`
	ExtractionDate     time.Time `json:"extraction_date" gorm:"column:extraction_date"`
}

// WeatherTable keeps rows in location iteration order.
type WeatherTable struct {
	Rows []WeatherRow
}

// Len returns the number of rows.
func (t *WeatherTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
