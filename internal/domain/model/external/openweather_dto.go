package external

import "encoding/json"

// CurrentWeatherResponse represents the subset of the OpenWeather /data/2.5/weather response used by the ETL.
// Only extracted fields are declared so unrelated fields never fail decoding.
// Numeric fields stay raw so presence and coercion are decided by the caller.
type CurrentWeatherResponse struct {
	Main    *MainDTO              `json:"main"`
	Weather []WeatherConditionDTO `json:"weather"`
}

// MainDTO represents the "main" block of the response
type MainDTO struct {
	Temp     json.RawMessage `json:"temp"`
	Humidity json.RawMessage `json:"humidity"`
}

// WeatherConditionDTO represents an entry of the "weather" array
type WeatherConditionDTO struct {
	Description *string `json:"description"`
}

// APIErrorResponse represents error responses from OpenWeather, cod arrives as string or number
type APIErrorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}
