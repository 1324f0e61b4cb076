package lock

import (
	"context"
	"time"

	"weather-etl/internal/domain/model"
)

// Pinger is satisfied by the redis client wrapper
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthLockGateway struct {
	pinger Pinger
	addr   string
}

func NewHealthLockGateway(pinger Pinger, addr string) *HealthLockGateway {
	return &HealthLockGateway{pinger: pinger, addr: addr}
}

func (gateway *HealthLockGateway) Health() model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := gateway.pinger.Ping(ctx); err != nil {
		return model.DownStatus(err)
	}
	return model.UpStatus(map[string]string{"addr": gateway.addr})
}
