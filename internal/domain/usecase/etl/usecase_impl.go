package etl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weather-etl/internal/domain/entity"
	"weather-etl/internal/domain/gateway/api"
	"weather-etl/internal/domain/gateway/db"
	"weather-etl/internal/domain/gateway/lock"
	"weather-etl/internal/domain/gateway/queue"
	"weather-etl/internal/domain/gateway/storage"
	"weather-etl/internal/domain/model"
	"weather-etl/pkg/log"
	"weather-etl/pkg/msg"
)

// Options carries the run configuration.
type Options struct {
	Locations       []entity.Location
	OutputPath      string
	MalformedPolicy MalformedPolicy
	// NoDataStatus is the status code of a run without records, 200 when zero.
	NoDataStatus int
	// Bucket receives the artifact when an Uploader is set.
	Bucket string
	// NotifyQueue receives the run summary when a Notifier is set.
	NotifyQueue string
}

// Dependencies are the collaborators of the pipeline. Only Weather and Writer are required.
type Dependencies struct {
	Weather  api.WeatherGateway
	Writer   storage.TableWriter
	Uploader storage.ObjectStoreUploader
	Sink     db.ObservationGateway
	Notifier queue.Sender
	Lock     lock.RunLock
	Clock    func() time.Time
	NewRunID func() string
}

type etlUseCase struct {
	options   Options
	deps      Dependencies
	extractor *Extractor
}

func NewEtlUseCase(options Options, deps Dependencies) (UseCase, error) {
	if deps.Weather == nil {
		return nil, errors.New("weather gateway is required")
	}
	if deps.Writer == nil {
		return nil, errors.New("table writer is required")
	}
	if options.OutputPath == "" {
		return nil, errors.New("output path is required")
	}
	if deps.Uploader != nil && options.Bucket == "" {
		return nil, errors.New("bucket is required when an uploader is configured")
	}
	if deps.Notifier != nil && options.NotifyQueue == "" {
		return nil, errors.New("queue name is required when a notifier is configured")
	}
	if options.NoDataStatus == 0 {
		options.NoDataStatus = http.StatusOK
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.NewRunID == nil {
		deps.NewRunID = func() string { return uuid.New().String() }
	}

	return &etlUseCase{
		options:   options,
		deps:      deps,
		extractor: NewExtractor(deps.Weather, options.MalformedPolicy, deps.Clock),
	}, nil
}

func (uc *etlUseCase) Run(ctx context.Context) (RunResult, error) {
	runID := uc.deps.NewRunID()
	start := uc.deps.Clock()

	if uc.deps.Lock != nil {
		acquired, err := uc.deps.Lock.TryLock(ctx)
		if err != nil {
			return RunResult{}, fmt.Errorf("failed to acquire run lock: %w", err)
		}
		if !acquired {
			log.Warn(msg.GetMessage("etl.lock.busy"), zap.String("run_id", runID))
			return RunResult{}, ErrRunInProgress
		}
		defer uc.releaseLock(runID)
	}

	extracted, err := uc.extractor.Extract(ctx, runID, uc.options.Locations)
	if err != nil {
		return RunResult{}, fmt.Errorf("extraction aborted: %w", err)
	}

	if extracted.Empty() {
		log.Warn(msg.GetMessage("etl.extract.empty"), zap.String("run_id", runID), zap.Int("failures", len(extracted.Failures)))
		result := RunResult{
			RunID:      runID,
			Outcome:    OutcomeNoData,
			Message:    msg.GetMessage("etl.result.no-data"),
			StatusCode: uc.options.NoDataStatus,
			Failures:   len(extracted.Failures),
		}
		return result, uc.notify(result)
	}

	table, err := Transform(extracted.Records)
	if err != nil {
		return RunResult{}, fmt.Errorf("transformation failed: %w", err)
	}
	log.Info(msg.GetMessage("etl.transform.loaded", table.Len()), zap.String("run_id", runID))

	if err = uc.deps.Writer.WriteTable(ctx, table, uc.options.OutputPath); err != nil {
		return RunResult{}, fmt.Errorf("failed to write %s: %w", uc.options.OutputPath, err)
	}
	log.Info(msg.GetMessage("etl.load.success", uc.options.OutputPath), zap.String("run_id", runID))

	result := RunResult{
		RunID:      runID,
		Outcome:    OutcomeProcessed,
		Message:    msg.GetMessage("etl.result.processed"),
		StatusCode: http.StatusOK,
		Rows:       table.Len(),
		Failures:   len(extracted.Failures),
		OutputPath: uc.options.OutputPath,
	}

	if uc.deps.Uploader != nil {
		remote, err := uc.deps.Uploader.Upload(ctx, uc.options.Bucket, uc.options.OutputPath)
		if err != nil {
			return RunResult{}, fmt.Errorf("failed to upload %s: %w", uc.options.OutputPath, err)
		}
		result.Remote = &remote
		log.Info(msg.GetMessage("etl.upload.success", uc.options.OutputPath, remote.URI), zap.String("run_id", runID))
	}

	if uc.deps.Sink != nil {
		if err = uc.deps.Sink.SaveAll(ctx, runID, table); err != nil {
			return RunResult{}, fmt.Errorf("failed to store observations: %w", err)
		}
		log.Info(msg.GetMessage("etl.warehouse.success", table.Len()), zap.String("run_id", runID))
	}

	if err = uc.notify(result); err != nil {
		return RunResult{}, err
	}

	log.Info(result.Message,
		zap.String("run_id", runID),
		zap.Int("rows", result.Rows),
		zap.Int("failures", result.Failures),
		zap.Duration("elapsed", uc.deps.Clock().Sub(start)))
	return result, nil
}

func (uc *etlUseCase) notify(result RunResult) error {
	if uc.deps.Notifier == nil {
		return nil
	}

	summary := model.RunSummary{
		RunID:      result.RunID,
		Outcome:    string(result.Outcome),
		Rows:       result.Rows,
		Failures:   result.Failures,
		OutputPath: result.OutputPath,
		Remote:     result.Remote,
		FinishedAt: uc.deps.Clock().UTC(),
	}
	if err := uc.deps.Notifier.SendMessage(uc.options.NotifyQueue, summary); err != nil {
		return fmt.Errorf("failed to publish run summary: %w", err)
	}
	log.Info(msg.GetMessage("etl.notify.success", uc.options.NotifyQueue), zap.String("run_id", result.RunID))
	return nil
}

func (uc *etlUseCase) releaseLock(runID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := uc.deps.Lock.Unlock(ctx); err != nil {
		log.Warn("Failed to release run lock", zap.String("run_id", runID), zap.Error(err))
	}
}
