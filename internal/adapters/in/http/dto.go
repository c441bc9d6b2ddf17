package http

import (
	"time"

	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/offer"
	"courier/internal/core/domain/model/order"
)

// Error is the JSON error envelope returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SetAvailabilityRequest flips the courier's availability.
type SetAvailabilityRequest struct {
	Online bool `json:"online"`
}

// RejectOfferRequest carries the rejection reason code.
type RejectOfferRequest struct {
	Reason string `json:"reason"`
}

// AdvanceOrderRequest moves the active order to the next checkpoint.
// Code is required for OTP-gated targets (PickedUp, Delivered).
type AdvanceOrderRequest struct {
	Target string `json:"target"`
	Code   string `json:"code,omitempty"`
}

// WaypointResponse is one end of a proposed job.
type WaypointResponse struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// OfferResponse is the pending offer view.
type OfferResponse struct {
	ID        string           `json:"id"`
	Pickup    WaypointResponse `json:"pickup"`
	Dropoff   WaypointResponse `json:"dropoff"`
	Amount    string           `json:"amount"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// ContactResponse is one delivery counterpart of the active order.
type ContactResponse struct {
	Name    string  `json:"name,omitempty"`
	Phone   string  `json:"phone,omitempty"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// ItemResponse is one ordered item line.
type ItemResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ActiveOrderResponse is the active order view. OTP codes are never exposed;
// the courier learns them out of band from the counterpart.
type ActiveOrderResponse struct {
	ID      string          `json:"id"`
	Status  string          `json:"status"`
	Pickup  ContactResponse `json:"pickup"`
	Dropoff ContactResponse `json:"dropoff"`
	Items   []ItemResponse  `json:"items"`
	Total   string          `json:"total"`
}

// HistoryEntryResponse is one completed delivery.
type HistoryEntryResponse struct {
	OrderID        string    `json:"order_id"`
	PickupAddress  string    `json:"pickup_address"`
	DropoffAddress string    `json:"dropoff_address"`
	Total          string    `json:"total"`
	CompletedAt    time.Time `json:"completed_at"`
}

// EarningsResponse is the earnings summary view.
type EarningsResponse struct {
	Today               string `json:"today"`
	Week                string `json:"week"`
	Pending             string `json:"pending"`
	CompletedDeliveries int    `json:"completed_deliveries"`
}

// StatusResponse is the courier status view.
type StatusResponse struct {
	Online              bool    `json:"online"`
	HasActiveOrder      bool    `json:"has_active_order"`
	AcceptanceRate      float64 `json:"acceptance_rate"`
	CompletedDeliveries int     `json:"completed_deliveries"`
}

func offerToResponse(o *offer.Offer) OfferResponse {
	return OfferResponse{
		ID: o.ID().String(),
		Pickup: WaypointResponse{
			Address: o.Pickup().Address(),
			Lat:     o.Pickup().Point().Latitude(),
			Lon:     o.Pickup().Point().Longitude(),
		},
		Dropoff: WaypointResponse{
			Address: o.Dropoff().Address(),
			Lat:     o.Dropoff().Point().Latitude(),
			Lon:     o.Dropoff().Point().Longitude(),
		},
		Amount:    o.Amount().String(),
		ExpiresAt: o.ExpiresAt(),
	}
}

func contactToResponse(c order.Contact) ContactResponse {
	return ContactResponse{
		Name:    c.Name(),
		Phone:   c.Phone(),
		Address: c.Address(),
		Lat:     c.Point().Latitude(),
		Lon:     c.Point().Longitude(),
	}
}

func activeOrderToResponse(o *order.ActiveOrder) ActiveOrderResponse {
	items := make([]ItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemResponse{Name: item.Name(), Quantity: item.Quantity()})
	}

	return ActiveOrderResponse{
		ID:      o.ID().String(),
		Status:  o.Status().String(),
		Pickup:  contactToResponse(o.Pickup()),
		Dropoff: contactToResponse(o.Dropoff()),
		Items:   items,
		Total:   o.Payout().Total().String(),
	}
}

func historyToResponse(entries []queries.GetOrderHistoryQueryResponse) []HistoryEntryResponse {
	response := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, HistoryEntryResponse{
			OrderID:        entry.OrderID.String(),
			PickupAddress:  entry.PickupAddress,
			DropoffAddress: entry.DropoffAddress,
			Total:          entry.Total.String(),
			CompletedAt:    entry.CompletedAt,
		})
	}
	return response
}
