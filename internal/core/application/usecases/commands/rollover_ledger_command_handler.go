package commands

import (
	"context"

	"courier/internal/core/application/session"
)

// RolloverLedgerCommandHandler zeroes the today bucket and persists the
// rolled-over ledger.
type RolloverLedgerCommandHandler struct {
	session    *session.Session
	uowFactory CourierUoWFactory
}

// NewRolloverLedgerCommandHandler creates a handler for ledger rollover.
func NewRolloverLedgerCommandHandler(s *session.Session, uowFactory CourierUoWFactory) RolloverLedgerCommandHandler {
	return RolloverLedgerCommandHandler{
		session:    s,
		uowFactory: uowFactory,
	}
}

// Handle processes the rollover command.
func (h *RolloverLedgerCommandHandler) Handle(ctx context.Context, cmd RolloverLedgerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	checkpoint := h.session.RolloverLedger()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.CourierStateRepository().Save(ctx, checkpoint.State, checkpoint.Ledger); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
