// Package push implements the inbound offer channel: a Redis pub/sub
// subscriber that decodes dispatcher events into offer presentation commands.
package push

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/offer"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// offerEvent is the dispatcher's wire format for one proposed job.
type offerEvent struct {
	OfferID        string          `json:"offer_id"`
	PickupAddress  string          `json:"pickup_address"`
	PickupLat      float64         `json:"pickup_lat"`
	PickupLon      float64         `json:"pickup_lon"`
	DropoffAddress string          `json:"dropoff_address"`
	DropoffLat     float64         `json:"dropoff_lat"`
	DropoffLon     float64         `json:"dropoff_lon"`
	Amount         decimal.Decimal `json:"amount"`
	WindowSeconds  int             `json:"window_seconds"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Subscriber listens on the offer channel and feeds decoded offers into the
// decision core. Malformed events are logged and dropped; the channel must
// keep draining regardless of individual payload quality.
type Subscriber struct {
	client  *redis.Client
	channel string
	handler commands.PresentOfferCommandHandler
	logger  *slog.Logger
}

// NewSubscriber creates a subscriber on the given pub/sub channel.
func NewSubscriber(
	client *redis.Client,
	channel string,
	handler commands.PresentOfferCommandHandler,
	logger *slog.Logger,
) *Subscriber {
	return &Subscriber{
		client:  client,
		channel: channel,
		handler: handler,
		logger:  logger.With("component", "push"),
	}
}

// Run subscribes and processes events until ctx is cancelled.
func (s *Subscriber) Run(ctx context.Context) error {
	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()

	// Fail fast when the broker is unreachable at startup.
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	s.logger.Info("subscribed to offer channel", "channel", s.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.handleMessage(ctx, msg.Payload)
		}
	}
}

func (s *Subscriber) handleMessage(ctx context.Context, payload string) {
	var event offerEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		s.logger.Warn("dropping malformed offer event", "error", err)
		return
	}

	cmd, err := commandFromEvent(event)
	if err != nil {
		s.logger.Warn("dropping invalid offer event", "error", err)
		return
	}

	if err = s.handler.Handle(ctx, cmd); err != nil {
		s.logger.Error("offer presentation failed",
			"offer_id", event.OfferID, "error", err)
	}
}

// commandFromEvent normalizes one wire event into a presentation command.
func commandFromEvent(event offerEvent) (commands.PresentOfferCommand, error) {
	offerID, err := kernel.UUIDFromString(event.OfferID)
	if err != nil {
		return commands.PresentOfferCommand{}, err
	}

	pickupPoint, err := kernel.NewGeoPoint(event.PickupLat, event.PickupLon)
	if err != nil {
		return commands.PresentOfferCommand{}, err
	}
	pickup, err := offer.NewWaypoint(event.PickupAddress, pickupPoint)
	if err != nil {
		return commands.PresentOfferCommand{}, err
	}

	dropoffPoint, err := kernel.NewGeoPoint(event.DropoffLat, event.DropoffLon)
	if err != nil {
		return commands.PresentOfferCommand{}, err
	}
	dropoff, err := offer.NewWaypoint(event.DropoffAddress, dropoffPoint)
	if err != nil {
		return commands.PresentOfferCommand{}, err
	}

	amount, err := kernel.NewMoney(event.Amount)
	if err != nil {
		return commands.PresentOfferCommand{}, err
	}

	window := time.Duration(event.WindowSeconds) * time.Second

	return commands.NewPresentOfferCommand(offerID, pickup, dropoff, amount, window, event.CreatedAt)
}
