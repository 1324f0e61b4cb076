package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"weather-etl/configs"
	"weather-etl/internal/domain/gateway/api"
	"weather-etl/internal/domain/gateway/db"
	"weather-etl/internal/domain/gateway/lock"
	"weather-etl/internal/domain/gateway/storage"
	"weather-etl/internal/domain/model"
	"weather-etl/internal/domain/usecase/etl"
	"weather-etl/internal/domain/usecase/health"
	"weather-etl/internal/infra/aws"
	"weather-etl/internal/infra/database/gorm"
	"weather-etl/internal/infra/gcp"
	"weather-etl/internal/infra/parquetfile"
	"weather-etl/pkg/http"
	"weather-etl/pkg/log"
	"weather-etl/pkg/redis"
)

// App holds the pipeline and health use cases built from a Config, plus the clients to close on exit.
type App struct {
	Config *configs.Config
	Etl    etl.UseCase
	Health health.UseCase

	closers []func() error
}

// New validates cfg and wires every enabled collaborator. Disabled ones stay nil.
func New(ctx context.Context, cfg *configs.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{Config: cfg}
	deps, components, err := a.dependencies(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Etl, err = etl.NewEtlUseCase(etl.Options{
		Locations:       cfg.Locations,
		OutputPath:      cfg.ETL.OutputPath,
		MalformedPolicy: cfg.ETL.MalformedPolicy,
		NoDataStatus:    cfg.ETL.NoDataStatus,
		Bucket:          cfg.Storage.Bucket,
		NotifyQueue:     cfg.Notify.Queue,
	}, deps)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Health = health.NewHealthUseCase(components)
	return a, nil
}

func (a *App) dependencies(ctx context.Context) (etl.Dependencies, map[string]health.Component, error) {
	cfg := a.Config
	components := map[string]health.Component{
		"weatherApi": health.ComponentFunc(func() model.ComponentHealthStatus {
			if cfg.Weather.APIKey == "" {
				return model.DownStatus(errors.New("api key is not configured"))
			}
			return model.UpStatus(map[string]string{"baseUrl": cfg.Weather.BaseURL, "locations": fmt.Sprint(len(cfg.Locations))})
		}),
		"output":   &storage.HealthOutputGateway{Dir: filepath.Dir(cfg.ETL.OutputPath)},
		"database": nil,
		"lock":     nil,
	}

	writer, err := parquetfile.NewWriter(cfg.ETL.Compression)
	if err != nil {
		return etl.Dependencies{}, nil, err
	}

	deps := etl.Dependencies{
		Weather: api.NewWeatherGateway(cfg.Weather.BaseURL, cfg.Weather.APIKey, http.ClientOptions{
			ReadTimeout:       cfg.Weather.Timeout,
			ConnectionTimeout: cfg.Weather.Timeout,
			Logger:            &http.ZapLogger{},
		}),
		Writer: writer,
	}

	if deps.Uploader, err = a.uploader(ctx); err != nil {
		return etl.Dependencies{}, nil, err
	}

	if cfg.DB.Enabled {
		gormDB, err := gorm.Open(gorm.Config{
			Host:         cfg.DB.Host,
			Port:         cfg.DB.Port,
			Username:     cfg.DB.Username,
			Password:     cfg.DB.Password,
			Database:     cfg.DB.Database,
			Schema:       cfg.DB.Schema,
			SSLMode:      cfg.DB.SSLMode,
			MaxOpenConns: cfg.DB.MaxOpenConns,
		})
		if err != nil {
			return etl.Dependencies{}, nil, err
		}
		if sqlDB, err := gormDB.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}

		sink := db.NewGormObservationGateway(gormDB, cfg.DB.BatchSize)
		if cfg.DB.AutoMigrate {
			if err = sink.Migrate(ctx); err != nil {
				return etl.Dependencies{}, nil, fmt.Errorf("failed to migrate weather_observations: %w", err)
			}
		}
		deps.Sink = sink
		components["database"] = db.NewGormHealthDBGateway(gormDB)
	}

	if cfg.Redis.Enabled {
		redisCfg := redis.NewRedisConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.Database = cfg.Redis.Database

		client, err := redis.NewClient(redisCfg)
		if err != nil {
			return etl.Dependencies{}, nil, err
		}
		a.closers = append(a.closers, client.Close)

		deps.Lock = redis.NewLock(client.GetClient(), cfg.Lock.Key, redis.LockOptions{
			TTL:           cfg.Lock.TTL,
			LockNamespace: cfg.Lock.Namespace,
		})
		components["lock"] = lock.NewHealthLockGateway(client, client.GetConfig().Addr())
	}

	if cfg.Notify.Enabled {
		awsCfg, err := aws.LoadConfig(ctx, a.awsConfig())
		if err != nil {
			return etl.Dependencies{}, nil, err
		}
		deps.Notifier = aws.NewSQSSenderAdapter(aws.NewSqsClient(awsCfg, cfg.Cloud.AWSEndpoint), 0)
	}

	return deps, components, nil
}

// uploader returns nil when the file stays local. A nil interface, not a typed nil, keeps the upload step off.
func (a *App) uploader(ctx context.Context) (storage.ObjectStoreUploader, error) {
	cfg := a.Config
	switch cfg.Storage.Provider {
	case configs.StorageGCS:
		client, err := gcp.NewStorageClient(ctx, gcp.ClientOptions{
			CredentialsFile: cfg.Cloud.GCPCredentialsFile,
			Endpoint:        cfg.Cloud.GCSEndpoint,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return gcp.NewGCSUploader(gcp.ClientWriter(client), cfg.Storage.Prefix), nil
	case configs.StorageS3:
		awsCfg, err := aws.LoadConfig(ctx, a.awsConfig())
		if err != nil {
			return nil, err
		}
		return aws.NewS3Uploader(aws.NewS3Client(awsCfg, cfg.Cloud.AWSEndpoint), cfg.Storage.Prefix), nil
	default:
		return nil, nil
	}
}

func (a *App) awsConfig() aws.Config {
	return aws.Config{
		Region:          a.Config.Cloud.AWSRegion,
		Endpoint:        a.Config.Cloud.AWSEndpoint,
		AccessKeyID:     a.Config.Cloud.AWSAccessKeyID,
		SecretAccessKey: a.Config.Cloud.AWSSecretAccessKey,
	}
}

// Close releases every client opened by New, in reverse order
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil

	if err := errors.Join(errs...); err != nil {
		log.Warn("Failed to close application clients", zap.Error(err))
		return err
	}
	return nil
}
