package api

import (
	"context"
	"errors"

	"weather-etl/internal/domain/entity"
	"weather-etl/internal/domain/model/external"
)

// ErrInvalidBody is returned when a successful response cannot be decoded.
var ErrInvalidBody = errors.New("invalid response body")

// WeatherGateway defines the interface for weather-related external API calls
type WeatherGateway interface {
	// GetCurrentWeather fetches the current conditions of a location in metric units.
	// A 2xx response whose body does not decode wraps ErrInvalidBody.
	GetCurrentWeather(ctx context.Context, location entity.Location) (*external.CurrentWeatherResponse, error)
}
