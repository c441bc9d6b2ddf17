package commands

import (
	"context"
	"log/slog"

	"courier/internal/core/application/session"
)

// SetAvailabilityCommandHandler flips the courier's availability and persists
// the new state. Going offline auto-rejects any pending offer before the flag
// changes, so no offer can resolve against an offline courier.
type SetAvailabilityCommandHandler struct {
	session    *session.Session
	uowFactory CourierUoWFactory
	logger     *slog.Logger
}

// NewSetAvailabilityCommandHandler creates a handler for availability changes.
func NewSetAvailabilityCommandHandler(
	s *session.Session,
	uowFactory CourierUoWFactory,
	logger *slog.Logger,
) SetAvailabilityCommandHandler {
	return SetAvailabilityCommandHandler{
		session:    s,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle processes the availability command.
func (h *SetAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	checkpoint, rejected, err := h.session.SetAvailability(cmd.Online())
	if err != nil {
		return err
	}

	if rejected != nil {
		h.logger.Info("pending offer auto-rejected on going offline",
			"offer_id", rejected.ID().String())
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
