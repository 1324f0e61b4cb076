package storage

import (
	"os"

	"weather-etl/internal/domain/model"
)

// HealthOutputGateway checks that the output directory exists or can be created, and accepts new files.
type HealthOutputGateway struct {
	Dir string
}

func (gateway *HealthOutputGateway) Health() model.ComponentHealthStatus {
	if err := os.MkdirAll(gateway.Dir, 0o755); err != nil {
		return model.DownStatus(err)
	}

	probe, err := os.CreateTemp(gateway.Dir, ".health-*")
	if err != nil {
		return model.DownStatus(err)
	}
	_ = probe.Close()
	_ = os.Remove(probe.Name())

	return model.UpStatus(map[string]string{"dir": gateway.Dir})
}
