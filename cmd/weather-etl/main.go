package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"weather-etl/configs"
	"weather-etl/internal/application/app"
	"weather-etl/pkg/log"
	"weather-etl/pkg/msg"
)

func main() {
	propertiesPath := flag.String("config", "", "path to an application.yml overriding the embedded defaults")
	flag.Parse()

	os.Exit(run(*propertiesPath))
}

func run(propertiesPath string) int {
	defer log.Sync()
	log.Info(msg.GetMessage("app.local-test"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := configs.Load(propertiesPath)
	if err != nil {
		log.Error("Failed to load configuration", zap.Error(err))
		return 1
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Error("Failed to initialize weather etl", zap.Error(err))
		return 1
	}
	defer application.Close()

	result, err := application.Etl.Run(ctx)
	if err != nil {
		log.Error("Weather etl run failed", zap.Error(err))
		return 1
	}

	fmt.Printf("Resultado: (%q, %d)\n", result.Message, result.StatusCode)
	return 0
}
