package etl

import (
	"context"

	"weather-etl/internal/domain/entity"
)

// Outcome distinguishes a run that wrote data from one that found nothing.
type Outcome string

const (
	OutcomeProcessed Outcome = "PROCESSED"
	OutcomeNoData    Outcome = "NO_DATA"
)

// RunResult is the (message, status code) pair returned to every invocation surface.
type RunResult struct {
	RunID      string            `json:"runId"`
	Outcome    Outcome           `json:"outcome"`
	Message    string            `json:"message"`
	StatusCode int               `json:"statusCode"`
	Rows       int               `json:"rows"`
	Failures   int               `json:"failures"`
	OutputPath string            `json:"outputPath,omitempty"`
	Remote     *entity.RemoteRef `json:"remote,omitempty"`
}

type UseCase interface {
	// Run extracts, transforms and loads the configured locations once.
	// Per-location failures are absorbed; every other failure is returned as an error.
	Run(ctx context.Context) (RunResult, error)
}
