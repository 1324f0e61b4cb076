package etl

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"weather-etl/internal/domain/entity"
	"weather-etl/internal/domain/model/external"
)

type MockWeatherGateway struct {
	mock.Mock
}

func (m *MockWeatherGateway) GetCurrentWeather(ctx context.Context, location entity.Location) (*external.CurrentWeatherResponse, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*external.CurrentWeatherResponse), args.Error(1)
}

type MockTableWriter struct {
	mock.Mock
}

func (m *MockTableWriter) WriteTable(ctx context.Context, table *entity.WeatherTable, path string) error {
	return m.Called(ctx, table, path).Error(0)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, bucket, localPath string) (entity.RemoteRef, error) {
	args := m.Called(ctx, bucket, localPath)
	return args.Get(0).(entity.RemoteRef), args.Error(1)
}

type MockSink struct {
	mock.Mock
}

func (m *MockSink) SaveAll(ctx context.Context, runID string, table *entity.WeatherTable) error {
	return m.Called(ctx, runID, table).Error(0)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessage(queueName string, body any) error {
	return m.Called(queueName, body).Error(0)
}

type MockRunLock struct {
	mock.Mock
}

func (m *MockRunLock) TryLock(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockRunLock) Unlock(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func weatherResponse(temp, humidity, description string) *external.CurrentWeatherResponse {
	response := &external.CurrentWeatherResponse{
		Main: &external.MainDTO{Temp: json.RawMessage(temp), Humidity: json.RawMessage(humidity)},
	}
	if description != "" {
		response.Weather = []external.WeatherConditionDTO{{Description: &description}}
	}
	return response
}
