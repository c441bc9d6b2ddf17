package http_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adapterhttp "courier/internal/adapters/in/http"
	"courier/internal/core/application/session"
	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/courier"
	"courier/internal/core/domain/model/earnings"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/offer"
	"courier/internal/core/domain/model/order"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubJobService answers job service calls from configurable functions.
type stubJobService struct {
	claim        func(offerID kernel.UUID) (*order.ActiveOrder, error)
	updateStatus func(orderID kernel.UUID, status order.Status) (*order.ActiveOrder, error)
	complete     func(orderID kernel.UUID, code string) (*order.ActiveOrder, error)
}

func (s *stubJobService) Claim(_ context.Context, offerID kernel.UUID) (*order.ActiveOrder, error) {
	return s.claim(offerID)
}

func (s *stubJobService) UpdateStatus(_ context.Context, orderID kernel.UUID, status order.Status, _ *kernel.GeoPoint) (*order.ActiveOrder, error) {
	return s.updateStatus(orderID, status)
}

func (s *stubJobService) Complete(_ context.Context, orderID kernel.UUID, code string) (*order.ActiveOrder, error) {
	return s.complete(orderID, code)
}

// In-memory unit of work stubs: persistence is exercised by the repository
// integration tests, the API tests only need the calls to succeed.
type stubCourierStateRepo struct{}

func (stubCourierStateRepo) Save(_ context.Context, _ *courier.State, _ *earnings.Ledger) error {
	return nil
}

func (stubCourierStateRepo) Get(_ context.Context, _ kernel.UUID) (*courier.State, *earnings.Ledger, error) {
	return nil, nil, errors.New("not implemented in stub")
}

type stubHistoryRepo struct{}

func (stubHistoryRepo) Add(_ context.Context, _ order.HistoryEntry) error { return nil }
func (stubHistoryRepo) GetRecent(_ context.Context, _ int) ([]order.HistoryEntry, error) {
	return nil, nil
}

type stubUoW struct{}

func (stubUoW) Begin(_ context.Context) error    { return nil }
func (stubUoW) Commit(_ context.Context) error   { return nil }
func (stubUoW) Rollback(_ context.Context) error { return nil }
func (stubUoW) CourierStateRepository() ports.CourierStateRepository {
	return stubCourierStateRepo{}
}
func (stubUoW) HistoryRepository() ports.HistoryRepository { return stubHistoryRepo{} }

type stubUoWFactory struct{}

func (stubUoWFactory) Create() commands.UoW { return stubUoW{} }

type stubCourierUoWFactory struct{}

func (stubCourierUoWFactory) Create() commands.CourierUoW { return stubUoW{} }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMoney(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromFloat(amount)
	require.NoError(t, err)
	return m
}

func testOffer(t *testing.T) *offer.Offer {
	t.Helper()
	point, err := kernel.NewGeoPoint(55.75, 37.61)
	require.NoError(t, err)
	pickup, err := offer.NewWaypoint("1 Pickup St", point)
	require.NoError(t, err)
	dropoff, err := offer.NewWaypoint("2 Dropoff St", point)
	require.NoError(t, err)

	o, err := offer.NewOffer(kernel.NewUUID(), pickup, dropoff,
		testMoney(t, 7.50), 30*time.Second, time.Now())
	require.NoError(t, err)
	return o
}

func canonicalOrder(t *testing.T, id kernel.UUID, status order.Status) *order.ActiveOrder {
	t.Helper()
	point, err := kernel.NewGeoPoint(55.75, 37.61)
	require.NoError(t, err)
	pickup, err := order.NewContact("Alice", "+15550100", "1 Pickup St", point)
	require.NoError(t, err)
	dropoff, err := order.NewContact("Bob", "+15550101", "2 Dropoff St", point)
	require.NoError(t, err)

	payout, err := order.NewPayout(
		testMoney(t, 5.00), testMoney(t, 1.50), testMoney(t, 0.75), testMoney(t, 2.00))
	require.NoError(t, err)
	pickupOTP, err := order.NewOTP("1234")
	require.NoError(t, err)
	dropoffOTP, err := order.NewOTP("5678")
	require.NoError(t, err)

	o, err := order.RestoreActiveOrder(id, pickup, dropoff, nil, payout,
		pickupOTP, dropoffOTP, status)
	require.NoError(t, err)
	return o
}

// newTestServer wires the API around a live session and stubbed outbound
// dependencies.
func newTestServer(t *testing.T) (*echo.Echo, *session.Session, *stubJobService) {
	t.Helper()

	state, err := courier.NewState(kernel.NewUUID())
	require.NoError(t, err)
	state.GoOnline()
	sess := session.NewSession(state, earnings.NewLedger(), nil, testLogger())
	t.Cleanup(sess.Close)

	jobService := &stubJobService{
		claim: func(offerID kernel.UUID) (*order.ActiveOrder, error) {
			return canonicalOrder(t, offerID, order.Accepted), nil
		},
		updateStatus: func(orderID kernel.UUID, status order.Status) (*order.ActiveOrder, error) {
			return canonicalOrder(t, orderID, status), nil
		},
		complete: func(orderID kernel.UUID, _ string) (*order.ActiveOrder, error) {
			return canonicalOrder(t, orderID, order.Delivered), nil
		},
	}

	server := adapterhttp.NewServer(
		sess,
		commands.NewAcceptOfferCommandHandler(sess, jobService),
		commands.NewRejectOfferCommandHandler(sess),
		commands.NewAdvanceOrderCommandHandler(sess, jobService, stubUoWFactory{}),
		commands.NewSetAvailabilityCommandHandler(sess, stubCourierUoWFactory{}, testLogger()),
		queries.GetOrderHistoryQueryHandler{},
		queries.GetEarningsSummaryQueryHandler{},
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return e, sess, jobService
}

func perform(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := perform(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestServer_GetStatus(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := perform(e, http.MethodGet, "/api/v1/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"online":true`)
	assert.Contains(t, rec.Body.String(), `"has_active_order":false`)
}

func TestServer_GetPendingOffer(t *testing.T) {
	e, sess, _ := newTestServer(t)

	rec := perform(e, http.MethodGet, "/api/v1/offers/pending", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	o := testOffer(t)
	require.NoError(t, sess.PresentOffer(o))

	rec = perform(e, http.MethodGet, "/api/v1/offers/pending", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), o.ID().String())
	assert.Contains(t, rec.Body.String(), "1 Pickup St")
}

func TestServer_AcceptOffer(t *testing.T) {
	e, sess, _ := newTestServer(t)
	o := testOffer(t)
	require.NoError(t, sess.PresentOffer(o))

	rec := perform(e, http.MethodPost, "/api/v1/offers/"+o.ID().String()+"/accept", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"Accepted"`)

	// OTP codes are never exposed through the API.
	assert.NotContains(t, rec.Body.String(), "1234")
	assert.NotContains(t, rec.Body.String(), "5678")
}

func TestServer_AcceptOffer_Expired(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := perform(e, http.MethodPost,
		"/api/v1/offers/"+kernel.NewUUID().String()+"/accept", "")
	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestServer_AcceptOffer_InvalidID(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := perform(e, http.MethodPost, "/api/v1/offers/not-a-uuid/accept", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_RejectOffer_DefaultReason(t *testing.T) {
	e, sess, _ := newTestServer(t)
	o := testOffer(t)
	require.NoError(t, sess.PresentOffer(o))

	rec := perform(e, http.MethodPost, "/api/v1/offers/"+o.ID().String()+"/reject", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, sess.PendingOffer())
}

func TestServer_GetActiveOrder(t *testing.T) {
	e, sess, _ := newTestServer(t)

	rec := perform(e, http.MethodGet, "/api/v1/orders/active", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, sess.ConfirmClaim(canonicalOrder(t, kernel.NewUUID(), order.Accepted)))

	rec = perform(e, http.MethodGet, "/api/v1/orders/active", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":"9.25"`)
}

func TestServer_AdvanceOrder(t *testing.T) {
	e, sess, _ := newTestServer(t)
	require.NoError(t, sess.ConfirmClaim(canonicalOrder(t, kernel.NewUUID(), order.Accepted)))

	rec := perform(e, http.MethodPost, "/api/v1/orders/active/advance",
		`{"target": "ArrivedAtPickup"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ArrivedAtPickup"`)
}

func TestServer_AdvanceOrder_WrongOTP(t *testing.T) {
	e, sess, _ := newTestServer(t)
	require.NoError(t, sess.ConfirmClaim(canonicalOrder(t, kernel.NewUUID(), order.ArrivedAtPickup)))

	rec := perform(e, http.MethodPost, "/api/v1/orders/active/advance",
		`{"target": "PickedUp", "code": "9999"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// The order did not move.
	assert.Equal(t, order.ArrivedAtPickup, sess.ActiveOrder().Status())
}

func TestServer_AdvanceOrder_InvalidTransition(t *testing.T) {
	e, sess, _ := newTestServer(t)
	require.NoError(t, sess.ConfirmClaim(canonicalOrder(t, kernel.NewUUID(), order.Accepted)))

	// Skipping the pickup arrival is a sequencing conflict.
	rec := perform(e, http.MethodPost, "/api/v1/orders/active/advance",
		`{"target": "PickedUp", "code": "1234"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestServer_AdvanceOrder_UnknownTarget(t *testing.T) {
	e, sess, _ := newTestServer(t)
	require.NoError(t, sess.ConfirmClaim(canonicalOrder(t, kernel.NewUUID(), order.Accepted)))

	rec := perform(e, http.MethodPost, "/api/v1/orders/active/advance",
		`{"target": "Teleported"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_AdvanceOrder_NoActiveOrder(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := perform(e, http.MethodPost, "/api/v1/orders/active/advance",
		`{"target": "ArrivedAtPickup"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_AdvanceOrder_Delivered(t *testing.T) {
	e, sess, _ := newTestServer(t)
	require.NoError(t, sess.ConfirmClaim(canonicalOrder(t, kernel.NewUUID(), order.ArrivedAtDropoff)))

	rec := perform(e, http.MethodPost, "/api/v1/orders/active/advance",
		`{"target": "Delivered", "code": "5678"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The order left the active slot and was settled.
	assert.Nil(t, sess.ActiveOrder())
	today, _ := sess.LedgerTotals()
	assert.True(t, today.IsEqual(testMoney(t, 9.25)))
}

func TestServer_AdvanceOrder_ConfirmationFails(t *testing.T) {
	e, sess, jobService := newTestServer(t)
	require.NoError(t, sess.ConfirmClaim(canonicalOrder(t, kernel.NewUUID(), order.Accepted)))

	jobService.updateStatus = func(_ kernel.UUID, _ order.Status) (*order.ActiveOrder, error) {
		return nil, errs.NewNetworkFailureError("update status", errors.New("connection refused"))
	}

	rec := perform(e, http.MethodPost, "/api/v1/orders/active/advance",
		`{"target": "ArrivedAtPickup"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, order.Accepted, sess.ActiveOrder().Status())
}

func TestServer_SetAvailability(t *testing.T) {
	e, sess, _ := newTestServer(t)

	rec := perform(e, http.MethodPost, "/api/v1/availability", `{"online": false}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, sess.IsOnline())

	rec = perform(e, http.MethodPost, "/api/v1/availability", `{"online": true}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, sess.IsOnline())
}
