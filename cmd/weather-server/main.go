package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"weather-etl/configs"
	"weather-etl/internal/application/app"
	"weather-etl/internal/application/controller"
	"weather-etl/internal/application/middleware"
	"weather-etl/internal/application/schedule"
	"weather-etl/pkg/log"
	"weather-etl/pkg/msg"
)

func main() {
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := configs.Load("")
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	log.Info(msg.GetMessage("app.start", cfg.ApplicationName))

	// Init app
	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize weather etl", zap.Error(err))
	}
	defer application.Close()

	// Init infra
	e := echo.New()
	e.HideBanner = true
	middleware.SetupRequestLogger(e)
	api := e.Group(cfg.Server.ContextPath)

	// Init Controller
	healthController := controller.NewHealthController(api, application.Health)
	etlController := controller.NewEtlController(api, application.Etl)

	// Init Routes
	healthController.InitHealthRoutes()
	etlController.InitEtlRoutes()

	// Init Schedule
	if cfg.Schedule.Enabled {
		etlScheduler := schedule.NewEtlScheduler(application.Etl, cfg.Schedule.Cron, 0)
		if err = etlScheduler.InitEtlScheduleTasks(); err != nil {
			log.Fatal("Failed to register etl schedule", zap.Error(err))
		}
		defer etlScheduler.Stop()
	}

	// Start Routes
	go func() {
		log.Info(msg.GetMessage("app.started", cfg.ApplicationName, cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown server", zap.Error(err))
	}
	log.Info(msg.GetMessage("app.stop", cfg.ApplicationName))
}
