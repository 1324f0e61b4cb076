package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weather-etl/internal/domain/usecase/etl"
	"weather-etl/pkg/log"
	"weather-etl/pkg/msg"
)

// EtlScheduler triggers pipeline runs on a cron expression. A tick is skipped while the
// previous run is still going; cross process exclusion is left to the run lock.
type EtlScheduler struct {
	cron           *cron.Cron
	useCase        etl.UseCase
	cronExpression string
	runTimeout     time.Duration
}

// NewEtlScheduler accepts standard five field cron expressions and descriptors such as @hourly
func NewEtlScheduler(useCase etl.UseCase, cronExpression string, runTimeout time.Duration) *EtlScheduler {
	if runTimeout <= 0 {
		runTimeout = 10 * time.Minute
	}
	return &EtlScheduler{
		cron:           cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		useCase:        useCase,
		cronExpression: cronExpression,
		runTimeout:     runTimeout,
	}
}

// InitEtlScheduleTasks registers the run and starts the cron loop
func (s *EtlScheduler) InitEtlScheduleTasks() error {
	if _, err := s.cron.AddFunc(s.cronExpression, s.ExecuteScheduledTask); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", s.cronExpression, err)
	}

	s.cron.Start()
	log.Info(msg.GetMessage("etl.cron.registered", s.cronExpression))
	return nil
}

// ExecuteScheduledTask runs the pipeline once
func (s *EtlScheduler) ExecuteScheduledTask() {
	requestID := uuid.New().String()
	log.Info(msg.GetMessage("etl.cron.start"), zap.String("request_id", requestID))

	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	result, err := s.useCase.Run(ctx)
	if err != nil {
		log.Error(msg.GetMessage("etl.cron.failed"), zap.String("request_id", requestID), zap.Error(err))
		return
	}

	log.Info(msg.GetMessage("etl.cron.end"),
		zap.String("request_id", requestID),
		zap.String("run_id", result.RunID),
		zap.String("outcome", string(result.Outcome)),
		zap.Int("rows", result.Rows))
}

// Stop gracefully stops the scheduler, waiting for a running task
func (s *EtlScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}
