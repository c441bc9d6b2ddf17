package jobs

import (
	"context"
	"log/slog"

	"courier/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// LedgerRolloverJob zeroes the today earnings bucket at midnight.
// The pending balance carries over untouched.
type LedgerRolloverJob struct {
	handler commands.RolloverLedgerCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewLedgerRolloverJob creates a new job for the daily ledger rollover.
func NewLedgerRolloverJob(handler commands.RolloverLedgerCommandHandler, logger *slog.Logger) *LedgerRolloverJob {
	return &LedgerRolloverJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "ledger_rollover_job"),
	}
}

// Start begins the ledger rollover job to run at midnight every day.
func (j *LedgerRolloverJob) Start() error {
	_, err := j.cron.AddFunc("0 0 0 * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewRolloverLedgerCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Ledger rollover rejected", "error", err)
			return
		}

		if err = j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Ledger rollover job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ledger rollover job started (running at midnight)")
	return nil
}

// Stop stops the ledger rollover job.
func (j *LedgerRolloverJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Ledger rollover job stopped")
}
