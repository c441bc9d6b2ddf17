package jobs

import (
	"fmt"
	"log/slog"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	locationReportJob *LocationReportJob
	ledgerRolloverJob *LedgerRolloverJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	locationSource ports.LocationSource,
	reportLocationHandler commands.ReportLocationCommandHandler,
	rolloverLedgerHandler commands.RolloverLedgerCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		locationReportJob: NewLocationReportJob(locationSource, reportLocationHandler, logger),
		ledgerRolloverJob: NewLedgerRolloverJob(rolloverLedgerHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.locationReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start location report job: %w", err)
	}

	if err := jm.ledgerRolloverJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.locationReportJob.Stop()
		return fmt.Errorf("failed to start ledger rollover job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.ledgerRolloverJob.Stop()
	jm.locationReportJob.Stop()
}
