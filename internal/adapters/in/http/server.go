// Package http exposes the decision core over the courier-facing REST API.
// Handlers translate HTTP requests into commands and queries and map domain
// errors onto status codes; no business decision lives here.
package http

import (
	"errors"
	"net/http"

	"courier/internal/core/application/session"
	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/offer"
	"courier/internal/core/domain/model/order"
	"courier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	session *session.Session

	// Command handlers
	acceptOfferHandler     commands.AcceptOfferCommandHandler
	rejectOfferHandler     commands.RejectOfferCommandHandler
	advanceOrderHandler    commands.AdvanceOrderCommandHandler
	setAvailabilityHandler commands.SetAvailabilityCommandHandler

	// Query handlers
	getOrderHistoryHandler    queries.GetOrderHistoryQueryHandler
	getEarningsSummaryHandler queries.GetEarningsSummaryQueryHandler
}

// NewServer creates the HTTP server with the required command and query
// handlers plus the session for read snapshots.
func NewServer(
	sess *session.Session,
	acceptOfferHandler commands.AcceptOfferCommandHandler,
	rejectOfferHandler commands.RejectOfferCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	setAvailabilityHandler commands.SetAvailabilityCommandHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getEarningsSummaryHandler queries.GetEarningsSummaryQueryHandler,
) *Server {
	return &Server{
		session:                   sess,
		acceptOfferHandler:        acceptOfferHandler,
		rejectOfferHandler:        rejectOfferHandler,
		advanceOrderHandler:       advanceOrderHandler,
		setAvailabilityHandler:    setAvailabilityHandler,
		getOrderHistoryHandler:    getOrderHistoryHandler,
		getEarningsSummaryHandler: getEarningsSummaryHandler,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/availability", s.SetAvailability)
	api.GET("/status", s.GetStatus)

	api.GET("/offers/pending", s.GetPendingOffer)
	api.POST("/offers/:id/accept", s.AcceptOffer)
	api.POST("/offers/:id/reject", s.RejectOffer)

	api.GET("/orders/active", s.GetActiveOrder)
	api.POST("/orders/active/advance", s.AdvanceOrder)
	api.GET("/orders/history", s.GetOrderHistory)

	api.GET("/earnings", s.GetEarnings)

	e.GET("/health", s.Health)
}

// SetAvailability handles POST /api/v1/availability.
func (s *Server) SetAvailability(ctx echo.Context) error {
	var req SetAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewSetAvailabilityCommand(req.Online)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	if err = s.setAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainErrorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetStatus handles GET /api/v1/status.
func (s *Server) GetStatus(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, StatusResponse{
		Online:              s.session.IsOnline(),
		HasActiveOrder:      s.session.ActiveOrder() != nil,
		AcceptanceRate:      s.session.AcceptanceRate(),
		CompletedDeliveries: s.session.CompletedDeliveries(),
	})
}

// GetPendingOffer handles GET /api/v1/offers/pending.
func (s *Server) GetPendingOffer(ctx echo.Context) error {
	pending := s.session.PendingOffer()
	if pending == nil {
		return errorJSON(ctx, http.StatusNotFound, "No pending offer")
	}

	return ctx.JSON(http.StatusOK, offerToResponse(pending))
}

// AcceptOffer handles POST /api/v1/offers/:id/accept.
func (s *Server) AcceptOffer(ctx echo.Context) error {
	offerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid offer id")
	}

	cmd, err := commands.NewAcceptOfferCommand(offerID)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	if err = s.acceptOfferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainErrorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, activeOrderToResponse(s.session.ActiveOrder()))
}

// RejectOffer handles POST /api/v1/offers/:id/reject.
func (s *Server) RejectOffer(ctx echo.Context) error {
	offerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid offer id")
	}

	var req RejectOfferRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}
	if req.Reason == "" {
		req.Reason = "DECLINED"
	}

	cmd, err := commands.NewRejectOfferCommand(offerID, req.Reason)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	if err = s.rejectOfferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainErrorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrder handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrder(ctx echo.Context) error {
	active := s.session.ActiveOrder()
	if active == nil {
		return errorJSON(ctx, http.StatusNotFound, "No active order")
	}

	return ctx.JSON(http.StatusOK, activeOrderToResponse(active))
}

// AdvanceOrder handles POST /api/v1/orders/active/advance.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	var req AdvanceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid target status: "+req.Target)
	}

	cmd, err := commands.NewAdvanceOrderCommand(target, req.Code)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	if err = s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainErrorJSON(ctx, err)
	}

	active := s.session.ActiveOrder()
	if active == nil {
		// Delivered: the order left the active slot.
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, activeOrderToResponse(active))
}

// GetOrderHistory handles GET /api/v1/orders/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	limit := 0
	if err := echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid limit")
	}

	query, err := queries.NewGetOrderHistoryQuery(limit)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	entries, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve history")
	}

	return ctx.JSON(http.StatusOK, historyToResponse(entries))
}

// GetEarnings handles GET /api/v1/earnings.
func (s *Server) GetEarnings(ctx echo.Context) error {
	query, err := queries.NewGetEarningsSummaryQuery(s.session.CourierID())
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	summary, err := s.getEarningsSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve earnings")
	}

	return ctx.JSON(http.StatusOK, EarningsResponse{
		Today:               summary.Today.String(),
		Week:                summary.Week.String(),
		Pending:             summary.Pending.String(),
		CompletedDeliveries: summary.CompletedDeliveries,
	})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// domainErrorJSON maps domain errors onto HTTP status codes.
//
// The mapping mirrors the error taxonomy: expired offers are Gone, OTP
// mismatches are unprocessable, sequencing conflicts and busy states are
// conflicts, and failed confirmations surface as a bad gateway.
func domainErrorJSON(ctx echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, offer.ErrOfferExpired):
		code = http.StatusGone
	case errors.Is(err, order.ErrInvalidOTP):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, session.ErrOperationInProgress),
		errors.Is(err, session.ErrCourierBusy),
		errors.Is(err, session.ErrOffline):
		code = http.StatusConflict
	case errors.Is(err, session.ErrNoActiveOrder),
		errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrNetworkFailure):
		code = http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
	}

	return errorJSON(ctx, code, err.Error())
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
