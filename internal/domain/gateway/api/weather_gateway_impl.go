package api

import (
	"context"
	"fmt"

	"weather-etl/internal/domain/entity"
	"weather-etl/internal/domain/model/external"
	"weather-etl/pkg/http"
)

const (
	currentWeatherPath = "/data/2.5/weather"
	metricUnits        = "metric"
	apiKeyParam        = "appid"
)

// weatherGatewayImpl implements the WeatherGateway interface
type weatherGatewayImpl struct {
	httpClient *http.Client
	apiKey     string
}

// NewWeatherGateway creates a new instance of WeatherGateway with HTTP client.
// The API key is always redacted from logged URLs.
func NewWeatherGateway(baseUrl string, apiKey string, clientOptions http.ClientOptions) WeatherGateway {
	clientOptions.RedactedParams = append(clientOptions.RedactedParams, apiKeyParam)
	httpClient := http.NewHttpClient(baseUrl, clientOptions)

	return &weatherGatewayImpl{
		httpClient: httpClient,
		apiKey:     apiKey,
	}
}

// GetCurrentWeather fetches current weather for a location
func (w *weatherGatewayImpl) GetCurrentWeather(ctx context.Context, location entity.Location) (*external.CurrentWeatherResponse, error) {
	successResp, errResp, status, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(currentWeatherPath).
		WithQueryParams(map[string]string{
			"q":         location.Query(),
			apiKeyParam: w.apiKey,
			"units":     metricUnits,
		}).
		WithSuccessResp(&external.CurrentWeatherResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err == nil {
		return successResp.(*external.CurrentWeatherResponse), nil
	}

	if status >= 200 && status < 300 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	if errResp != nil {
		errorResponse := errResp.(*external.APIErrorResponse)
		if errorResponse.Message != "" {
			return nil, fmt.Errorf("%w: %s", err, errorResponse.Message)
		}
	}

	return nil, err
}
