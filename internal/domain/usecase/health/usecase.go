package health

import "weather-etl/internal/domain/model"

// Component reports the health of one dependency
type Component interface {
	Health() model.ComponentHealthStatus
}

// ComponentFunc adapts a function to Component
type ComponentFunc func() model.ComponentHealthStatus

func (f ComponentFunc) Health() model.ComponentHealthStatus {
	return f()
}

type UseCase interface {
	CheckHealth() model.HealthResponse
}
