package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"weather-etl/internal/domain/model"
	"weather-etl/internal/domain/usecase/etl"
)

type MockEtlUseCase struct {
	mock.Mock
}

func (m *MockEtlUseCase) Run(ctx context.Context) (etl.RunResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(etl.RunResult), args.Error(1)
}

type stubHealthUseCase struct {
	response model.HealthResponse
}

func (s stubHealthUseCase) CheckHealth() model.HealthResponse {
	return s.response
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestEtlController_Run(t *testing.T) {
	newServer := func(useCase etl.UseCase) *echo.Echo {
		e := echo.New()
		NewEtlController(e.Group(""), useCase).InitEtlRoutes()
		return e
	}

	t.Run("processed", func(t *testing.T) {
		useCase := &MockEtlUseCase{}
		useCase.On("Run", mock.Anything).Return(etl.RunResult{
			RunID:      "run-1",
			Outcome:    etl.OutcomeProcessed,
			Message:    "Processamento ETL concluído com sucesso!",
			StatusCode: http.StatusOK,
			Rows:       3,
		}, nil)

		rec := serve(newServer(useCase), http.MethodPost, "/etl/run")

		assert.Equal(t, http.StatusOK, rec.Code)
		var body etl.RunResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, etl.OutcomeProcessed, body.Outcome)
		assert.Equal(t, 3, body.Rows)
		assert.Equal(t, "Processamento ETL concluído com sucesso!", body.Message)
	})

	t.Run("no data with 204", func(t *testing.T) {
		useCase := &MockEtlUseCase{}
		useCase.On("Run", mock.Anything).Return(etl.RunResult{Outcome: etl.OutcomeNoData, StatusCode: http.StatusNoContent}, nil)

		rec := serve(newServer(useCase), http.MethodGet, "/etl/run")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("run in progress", func(t *testing.T) {
		useCase := &MockEtlUseCase{}
		useCase.On("Run", mock.Anything).Return(etl.RunResult{}, etl.ErrRunInProgress)

		rec := serve(newServer(useCase), http.MethodPost, "/etl/run")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "in progress")
	})

	t.Run("failure", func(t *testing.T) {
		useCase := &MockEtlUseCase{}
		useCase.On("Run", mock.Anything).Return(etl.RunResult{}, errors.New("failed to write out.parquet: disk full"))

		rec := serve(newServer(useCase), http.MethodPost, "/etl/run")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "disk full")
	})
}

func TestHealthController_CheckHealth(t *testing.T) {
	newServer := func(response model.HealthResponse) *echo.Echo {
		e := echo.New()
		NewHealthController(e.Group(""), stubHealthUseCase{response: response}).InitHealthRoutes()
		return e
	}

	rec := serve(newServer(model.HealthResponse{Status: model.StatusUp}), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"UP"`)

	rec = serve(newServer(model.HealthResponse{Status: model.StatusDown}), http.MethodGet, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
