package jobs

import (
	"context"
	"log/slog"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// LocationReportJob samples the location source on a fixed cadence and feeds
// the position into the decision core as input context.
type LocationReportJob struct {
	source  ports.LocationSource
	handler commands.ReportLocationCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewLocationReportJob creates a new job for periodic location reports.
func NewLocationReportJob(
	source ports.LocationSource,
	handler commands.ReportLocationCommandHandler,
	logger *slog.Logger,
) *LocationReportJob {
	return &LocationReportJob{
		source:  source,
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "location_report_job"),
	}
}

// Start begins the location report job to run every fifteen seconds.
func (j *LocationReportJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", func() {
		ctx := context.Background()

		point, err := j.source.Current(ctx)
		if err != nil {
			j.logger.WarnContext(ctx, "Location sample failed", "error", err)
			return
		}

		cmd, err := commands.NewReportLocationCommand(point)
		if err != nil {
			j.logger.ErrorContext(ctx, "Location report rejected", "error", err)
			return
		}

		if err = j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Location report job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location report job started (running every 15 seconds)")
	return nil
}

// Stop stops the location report job.
func (j *LocationReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Location report job stopped")
}
