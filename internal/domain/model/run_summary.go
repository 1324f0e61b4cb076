package model

import (
	"time"

	"weather-etl/internal/domain/entity"
)

// RunSummary is the message published after each pipeline run
type RunSummary struct {
	RunID      string            `json:"runId"`
	Outcome    string            `json:"outcome"`
	Rows       int               `json:"rows"`
	Failures   int               `json:"failures"`
	OutputPath string            `json:"outputPath,omitempty"`
	Remote     *entity.RemoteRef `json:"remote,omitempty"`
	FinishedAt time.Time         `json:"finishedAt"`
}
