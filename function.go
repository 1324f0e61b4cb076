// Package weatheretl exposes the pipeline as the RunWeatherETL Cloud Function.
package weatheretl

import (
	"context"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"go.uber.org/zap"

	"weather-etl/configs"
	"weather-etl/internal/application/app"
	"weather-etl/internal/application/function"
	"weather-etl/pkg/log"
)

var (
	initOnce sync.Once
	handler  http.Handler
	initErr  error
)

func init() {
	functions.HTTP("RunWeatherETL", RunWeatherETL)
}

// RunWeatherETL builds the application on the first invocation and runs the pipeline on every call.
// The instance is reused while the runtime keeps it warm.
func RunWeatherETL(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(func() {
		cfg, err := configs.Load("")
		if err != nil {
			initErr = err
			return
		}
		application, err := app.New(context.Background(), cfg)
		if err != nil {
			initErr = err
			return
		}
		handler = function.NewHTTPHandler(application.Etl)
	})

	if initErr != nil {
		log.Error("Weather ETL function is not configured", zap.Error(initErr))
		http.Error(w, initErr.Error(), http.StatusInternalServerError)
		return
	}
	handler.ServeHTTP(w, r)
}
