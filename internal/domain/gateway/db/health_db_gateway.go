package db

import "weather-etl/internal/domain/model"

type HealthDBGateway interface {
	Health() model.ComponentHealthStatus
}
