package commands

import (
	"context"

	"courier/internal/core/application/session"
)

// ReportLocationCommandHandler records the courier's last-known position and
// persists it. The position is pure input context for the decision core; it
// gates no transition.
type ReportLocationCommandHandler struct {
	session    *session.Session
	uowFactory CourierUoWFactory
}

// NewReportLocationCommandHandler creates a handler for location reports.
func NewReportLocationCommandHandler(s *session.Session, uowFactory CourierUoWFactory) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		session:    s,
		uowFactory: uowFactory,
	}
}

// Handle processes the location report command.
func (h *ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	checkpoint, err := h.session.UpdateLocation(cmd.Point())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CourierStateRepository().Save(ctx, checkpoint.State, checkpoint.Ledger); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
