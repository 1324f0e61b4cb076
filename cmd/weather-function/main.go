package main

import (
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"go.uber.org/zap"

	_ "weather-etl"
	"weather-etl/pkg/log"
)

// Serves RunWeatherETL locally the way the Cloud Functions runtime does
func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := funcframework.Start(port); err != nil {
		log.Fatal("funcframework.Start failed", zap.Error(err))
	}
}
