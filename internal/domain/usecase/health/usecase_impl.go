package health

import (
	"sort"
	"sync"

	"weather-etl/internal/domain/model"
)

type healthUseCase struct {
	components map[string]Component
	names      []string
}

// NewHealthUseCase checks every named component. A nil component is reported as UNKNOWN
// and does not affect the overall status.
func NewHealthUseCase(components map[string]Component) UseCase {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)

	return &healthUseCase{components: components, names: names}
}

func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	results := make([]model.ComponentHealthStatus, len(useCase.names))

	var wg sync.WaitGroup
	for i, name := range useCase.names {
		component := useCase.components[name]
		if component == nil {
			results[i] = model.UnknownStatus("disabled")
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = component.Health()
		}()
	}
	wg.Wait()

	overallStatus := model.StatusUp
	components := make(map[string]model.ComponentHealthStatus, len(results))
	for i, name := range useCase.names {
		components[name] = results[i]
		if results[i].Status == model.StatusDown {
			overallStatus = model.StatusDown
		}
	}

	return model.HealthResponse{
		Status:     overallStatus,
		Components: components,
	}
}
