package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"courier/internal/core/application/session"
	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/courier"
	"courier/internal/core/domain/model/earnings"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/offer"
	"courier/internal/core/domain/model/order"
	"courier/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJobService struct{ mock.Mock }

func (m *MockJobService) Claim(ctx context.Context, offerID kernel.UUID) (*order.ActiveOrder, error) {
	args := m.Called(ctx, offerID)
	if v := args.Get(0); v != nil {
		return v.(*order.ActiveOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJobService) UpdateStatus(ctx context.Context, orderID kernel.UUID, status order.Status, at *kernel.GeoPoint) (*order.ActiveOrder, error) {
	args := m.Called(ctx, orderID, status, at)
	if v := args.Get(0); v != nil {
		return v.(*order.ActiveOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJobService) Complete(ctx context.Context, orderID kernel.UUID, code string) (*order.ActiveOrder, error) {
	args := m.Called(ctx, orderID, code)
	if v := args.Get(0); v != nil {
		return v.(*order.ActiveOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCourierStateRepository struct{ mock.Mock }

func (m *MockCourierStateRepository) Save(ctx context.Context, state *courier.State, ledger *earnings.Ledger) error {
	args := m.Called(ctx, state, ledger)
	return args.Error(0)
}

func (m *MockCourierStateRepository) Get(_ context.Context, _ kernel.UUID) (*courier.State, *earnings.Ledger, error) {
	return nil, nil, errors.New("not implemented in mock")
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Add(ctx context.Context, entry order.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) GetRecent(_ context.Context, _ int) ([]order.HistoryEntry, error) {
	return nil, errors.New("not implemented in mock")
}

type MockCourierUoW struct{ mock.Mock }

func (m *MockCourierUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCourierUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCourierUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCourierUoW) CourierStateRepository() ports.CourierStateRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierStateRepository)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) CourierStateRepository() ports.CourierStateRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierStateRepository)
}
func (m *MockUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMoney(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromFloat(amount)
	require.NoError(t, err)
	return m
}

func testWaypoint(t *testing.T, address string) offer.Waypoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(55.75, 37.61)
	require.NoError(t, err)
	w, err := offer.NewWaypoint(address, point)
	require.NoError(t, err)
	return w
}

func testOffer(t *testing.T) *offer.Offer {
	t.Helper()
	o, err := offer.NewOffer(kernel.NewUUID(),
		testWaypoint(t, "1 Pickup St"), testWaypoint(t, "2 Dropoff St"),
		testMoney(t, 7.50), 30*time.Second, time.Now())
	require.NoError(t, err)
	return o
}

func testContact(t *testing.T, address string) order.Contact {
	t.Helper()
	point, err := kernel.NewGeoPoint(55.75, 37.61)
	require.NoError(t, err)
	c, err := order.NewContact("", "", address, point)
	require.NoError(t, err)
	return c
}

func canonicalOrder(t *testing.T, id kernel.UUID, status order.Status) *order.ActiveOrder {
	t.Helper()
	payout, err := order.NewPayout(
		testMoney(t, 5.00), testMoney(t, 1.50), testMoney(t, 0.75), testMoney(t, 2.00))
	require.NoError(t, err)

	pickupOTP, err := order.NewOTP("1234")
	require.NoError(t, err)
	dropoffOTP, err := order.NewOTP("5678")
	require.NoError(t, err)

	o, err := order.RestoreActiveOrder(id,
		testContact(t, "1 Pickup St"), testContact(t, "2 Dropoff St"),
		nil, payout, pickupOTP, dropoffOTP, status)
	require.NoError(t, err)
	return o
}

func onlineSession(t *testing.T) *session.Session {
	t.Helper()
	state, err := courier.NewState(kernel.NewUUID())
	require.NoError(t, err)
	state.GoOnline()

	sess := session.NewSession(state, earnings.NewLedger(), nil, testLogger())
	t.Cleanup(sess.Close)
	return sess
}

// sessionWithActiveOrder returns a session holding a canonical order in the
// given status, with the claim reconciliation already closed.
func sessionWithActiveOrder(t *testing.T, status order.Status) (*session.Session, kernel.UUID) {
	t.Helper()
	sess := onlineSession(t)
	id := kernel.NewUUID()
	require.NoError(t, sess.ConfirmClaim(canonicalOrder(t, id, status)))
	return sess, id
}

func TestAcceptOfferCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	sess := onlineSession(t)
	o := testOffer(t)
	require.NoError(t, sess.PresentOffer(o))

	canonical := canonicalOrder(t, o.ID(), order.Accepted)
	jobService := new(MockJobService)
	jobService.On("Claim", ctx, o.ID()).Return(canonical, nil).Once()

	h := commands.NewAcceptOfferCommandHandler(sess, jobService)
	cmd, err := commands.NewAcceptOfferCommand(o.ID())
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))

	// The canonical payload, OTPs included, replaced the provisional order:
	// the pickup gate opens with the real code.
	active := sess.ActiveOrder()
	require.NotNil(t, active)
	assert.True(t, active.ID().IsEqual(o.ID()))
	_, err = active.Advance(order.ArrivedAtPickup, "")
	require.NoError(t, err)
	advanced, err := active.Advance(order.PickedUp, "1234")
	require.NoError(t, err)
	assert.True(t, advanced)
	assert.Nil(t, sess.PendingOffer())
	jobService.AssertExpectations(t)
}

func TestAcceptOfferCommandHandler_Handle_ClaimFails(t *testing.T) {
	ctx := t.Context()
	sess := onlineSession(t)
	o := testOffer(t)
	require.NoError(t, sess.PresentOffer(o))

	jobService := new(MockJobService)
	jobService.On("Claim", ctx, o.ID()).Return(nil, errors.New("claim rejected")).Once()

	h := commands.NewAcceptOfferCommandHandler(sess, jobService)
	cmd, err := commands.NewAcceptOfferCommand(o.ID())
	require.NoError(t, err)

	require.Error(t, h.Handle(ctx, cmd))

	// The provisional order rolled back; the courier is eligible again.
	assert.Nil(t, sess.ActiveOrder())
	require.NoError(t, sess.PresentOffer(testOffer(t)))
	jobService.AssertExpectations(t)
}

func TestAcceptOfferCommandHandler_Handle_OfferGone(t *testing.T) {
	ctx := t.Context()
	sess := onlineSession(t)

	jobService := new(MockJobService)
	h := commands.NewAcceptOfferCommandHandler(sess, jobService)
	cmd, err := commands.NewAcceptOfferCommand(kernel.NewUUID())
	require.NoError(t, err)

	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, offer.ErrOfferExpired)

	// No network call is made for an expired offer.
	jobService.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything)
}

func TestAcceptOfferCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := commands.NewAcceptOfferCommandHandler(onlineSession(t), new(MockJobService))

	cmd := commands.AcceptOfferCommand{} // not constructed properly
	require.Error(t, h.Handle(ctx, cmd))
}
