package jobs

import (
	"context"
	"errors"
	"log/slog"

	"logistics/internal/core/domain/model/trip"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultTripStatusSchedule runs the job every fifteen seconds.
const DefaultTripStatusSchedule = "*/15 * * * * *"

// StatusGauge receives the status of the active trip.
type StatusGauge interface {
	SetStatus(status trip.Status)
	ClearStatus()
}

// TripStatusJob periodically reads the ledger slot and publishes the status
// of the active trip. It reads without a unit of work lock so it never
// delays a writer.
type TripStatusJob struct {
	uowFactory ports.UnitOfWorkFactory
	gauge      StatusGauge
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewTripStatusJob creates the job. An empty schedule falls back to
// DefaultTripStatusSchedule; schedules use the six field cron format.
func NewTripStatusJob(
	uowFactory ports.UnitOfWorkFactory,
	gauge StatusGauge,
	schedule string,
	logger *slog.Logger,
) *TripStatusJob {
	if schedule == "" {
		schedule = DefaultTripStatusSchedule
	}
	return &TripStatusJob{
		uowFactory: uowFactory,
		gauge:      gauge,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "trip_status_job"),
	}
}

// Run performs a single pass.
func (j *TripStatusJob) Run(ctx context.Context) error {
	aggregate, err := j.uowFactory.Create().TripRepository().Get(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			j.gauge.ClearStatus()
			return nil
		}
		return err
	}

	j.gauge.SetStatus(aggregate.Status())
	return nil
}

// Start schedules the job.
func (j *TripStatusJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Trip status job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Trip status job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *TripStatusJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Trip status job stopped")
}
