package commands_test

import (
	"errors"
	"testing"

	"courier/internal/core/application/session"
	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvanceOrderCommandHandler_Handle_UpdateStatus(t *testing.T) {
	ctx := t.Context()
	sess, orderID := sessionWithActiveOrder(t, order.Accepted)

	jobService := new(MockJobService)
	jobService.On("UpdateStatus", ctx, orderID, order.ArrivedAtPickup, mock.Anything).
		Return(canonicalOrder(t, orderID, order.ArrivedAtPickup), nil).Once()

	h := commands.NewAdvanceOrderCommandHandler(sess, jobService, new(MockUoWFactory))
	cmd, err := commands.NewAdvanceOrderCommand(order.ArrivedAtPickup, "")
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.ArrivedAtPickup, sess.ActiveOrder().Status())
	jobService.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_NetworkFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	sess, orderID := sessionWithActiveOrder(t, order.Accepted)

	jobService := new(MockJobService)
	jobService.On("UpdateStatus", ctx, orderID, order.ArrivedAtPickup, mock.Anything).
		Return(nil, errors.New("connection refused")).Once()

	h := commands.NewAdvanceOrderCommandHandler(sess, jobService, new(MockUoWFactory))
	cmd, err := commands.NewAdvanceOrderCommand(order.ArrivedAtPickup, "")
	require.NoError(t, err)

	require.Error(t, h.Handle(ctx, cmd))

	// The optimistic transition rolled back and nothing is in flight:
	// a retry of the same transition is possible.
	assert.Equal(t, order.Accepted, sess.ActiveOrder().Status())
	jobService.On("UpdateStatus", ctx, orderID, order.ArrivedAtPickup, mock.Anything).
		Return(canonicalOrder(t, orderID, order.ArrivedAtPickup), nil).Once()
	require.NoError(t, h.Handle(ctx, cmd))
	jobService.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_ReconfirmArrivalIsNoOp(t *testing.T) {
	ctx := t.Context()
	sess, _ := sessionWithActiveOrder(t, order.ArrivedAtPickup)

	jobService := new(MockJobService)
	h := commands.NewAdvanceOrderCommandHandler(sess, jobService, new(MockUoWFactory))
	cmd, err := commands.NewAdvanceOrderCommand(order.ArrivedAtPickup, "")
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))

	// Idempotent re-confirmation never reaches the network.
	jobService.AssertNotCalled(t, "UpdateStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvanceOrderCommandHandler_Handle_WrongOTP(t *testing.T) {
	ctx := t.Context()
	sess, _ := sessionWithActiveOrder(t, order.ArrivedAtPickup)

	jobService := new(MockJobService)
	h := commands.NewAdvanceOrderCommandHandler(sess, jobService, new(MockUoWFactory))
	cmd, err := commands.NewAdvanceOrderCommand(order.PickedUp, "9999")
	require.NoError(t, err)

	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidOTP)
	assert.Equal(t, order.ArrivedAtPickup, sess.ActiveOrder().Status())
	jobService.AssertNotCalled(t, "UpdateStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvanceOrderCommandHandler_Handle_Delivered(t *testing.T) {
	ctx := t.Context()
	sess, orderID := sessionWithActiveOrder(t, order.ArrivedAtDropoff)
	canonical := canonicalOrder(t, orderID, order.Delivered)

	jobService := new(MockJobService)
	jobService.On("Complete", ctx, orderID, "5678").Return(canonical, nil).Once()

	stateRepo := new(MockCourierStateRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("HistoryRepository").Return(historyRepo).Once(),
		historyRepo.On("Add", ctx, mock.AnythingOfType("order.HistoryEntry")).Return(nil).Once(),
		uow.On("CourierStateRepository").Return(stateRepo).Once(),
		stateRepo.On("Save", ctx,
			mock.AnythingOfType("*courier.State"),
			mock.AnythingOfType("*earnings.Ledger")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceOrderCommandHandler(sess, jobService, factory)
	cmd, err := commands.NewAdvanceOrderCommand(order.Delivered, "5678")
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))

	// Settlement happened exactly once and the slot cleared.
	assert.Nil(t, sess.ActiveOrder())
	today, pending := sess.LedgerTotals()
	assert.True(t, today.IsEqual(testMoney(t, 9.25)))
	assert.True(t, pending.IsEqual(testMoney(t, 9.25)))
	assert.Equal(t, 1, sess.CompletedDeliveries())
	require.Len(t, sess.RecentHistory(), 1)

	jobService.AssertExpectations(t)
	uow.AssertExpectations(t)
	stateRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_DeliveredCompleteFails(t *testing.T) {
	ctx := t.Context()
	sess, orderID := sessionWithActiveOrder(t, order.ArrivedAtDropoff)

	jobService := new(MockJobService)
	jobService.On("Complete", ctx, orderID, "5678").
		Return(nil, errors.New("connection refused")).Once()

	factory := new(MockUoWFactory)
	h := commands.NewAdvanceOrderCommandHandler(sess, jobService, factory)
	cmd, err := commands.NewAdvanceOrderCommand(order.Delivered, "5678")
	require.NoError(t, err)

	require.Error(t, h.Handle(ctx, cmd))

	// Nothing settled: the order is still active at the dropoff and the
	// ledger is untouched.
	assert.Equal(t, order.ArrivedAtDropoff, sess.ActiveOrder().Status())
	today, _ := sess.LedgerTotals()
	assert.True(t, today.IsZero())
	assert.Zero(t, sess.CompletedDeliveries())
	factory.AssertNotCalled(t, "Create")
	jobService.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_NoActiveOrder(t *testing.T) {
	ctx := t.Context()
	sess := onlineSession(t)

	h := commands.NewAdvanceOrderCommandHandler(sess, new(MockJobService), new(MockUoWFactory))
	cmd, err := commands.NewAdvanceOrderCommand(order.ArrivedAtPickup, "")
	require.NoError(t, err)

	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, session.ErrNoActiveOrder)
}

func TestAdvanceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := commands.NewAdvanceOrderCommandHandler(onlineSession(t), new(MockJobService), new(MockUoWFactory))

	cmd := commands.AdvanceOrderCommand{} // not constructed properly
	require.Error(t, h.Handle(ctx, cmd))
}
