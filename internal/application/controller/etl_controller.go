package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"weather-etl/internal/domain/usecase/etl"
	"weather-etl/pkg/log"
)

type EtlController struct {
	api     *echo.Group
	useCase etl.UseCase
}

func NewEtlController(api *echo.Group, useCase etl.UseCase) *EtlController {
	return &EtlController{api: api, useCase: useCase}
}

// InitEtlRoutes initializes the pipeline trigger routes. GET is kept for schedulers that only issue GETs.
func (controller *EtlController) InitEtlRoutes() {
	controller.api.POST("/etl/run", controller.Run)
	controller.api.GET("/etl/run", controller.Run)
}

// Run executes one pipeline run synchronously and answers with its result
func (controller *EtlController) Run(c echo.Context) error {
	result, err := controller.useCase.Run(c.Request().Context())
	if err != nil {
		log.Error("ETL run failed", zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)), zap.Error(err))
		return c.JSON(etl.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	if result.StatusCode == http.StatusNoContent {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(result.StatusCode, result)
}
