package commands

import (
	"context"

	"courier/internal/core/application/session"
	"courier/internal/core/domain/model/order"
	"courier/internal/core/ports"
)

// AdvanceOrderCommandHandler drives the checkpointed order lifecycle with
// optimistic reconciliation: apply locally, confirm over the network, roll
// back to the pre-operation snapshot on failure.
//
// The terminal Delivered transition additionally settles earnings, seals the
// order into history, and persists the checkpoint — all after the server has
// confirmed, so settlement happens exactly once per delivered order and a
// failed confirmation leaves the ledger untouched.
type AdvanceOrderCommandHandler struct {
	session    *session.Session
	jobService ports.JobService
	uowFactory UoWFactory
}

// NewAdvanceOrderCommandHandler creates a handler for lifecycle transitions.
func NewAdvanceOrderCommandHandler(
	s *session.Session,
	jobService ports.JobService,
	uowFactory UoWFactory,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		session:    s,
		jobService: jobService,
		uowFactory: uowFactory,
	}
}

// Handle processes the lifecycle transition command.
//
// Re-confirming the current arrival stage is a no-op that never reaches the
// network. While a previous reconciliation is in flight the command fails
// with session.ErrOperationInProgress; requests are rejected, never queued.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	snapshot, advanced, err := h.session.BeginTransition(cmd.Target(), cmd.Code())
	if err != nil {
		return err
	}
	if !advanced {
		return nil
	}

	var canonical *order.ActiveOrder
	if cmd.Target() == order.Delivered {
		canonical, err = h.jobService.Complete(ctx, snapshot.ID(), cmd.Code())
	} else {
		canonical, err = h.jobService.UpdateStatus(ctx, snapshot.ID(), cmd.Target(), h.session.LastLocation())
	}
	if err != nil {
		h.session.RollbackTransition(snapshot)
		return err
	}

	if cmd.Target() != order.Delivered {
		return h.session.ConfirmTransition(canonical)
	}

	entry, checkpoint, err := h.session.SettleDelivered(canonical)
	if err != nil {
		h.session.RollbackTransition(snapshot)
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.HistoryRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.CourierStateRepository().Save(ctx, checkpoint.State, checkpoint.Ledger); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
