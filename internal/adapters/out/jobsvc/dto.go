// Package jobsvc implements the outbound REST client for the job service: the
// backend that owns job claims, order lifecycle confirmation, and the
// canonical order payloads.
package jobsvc

import (
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// contactDTO is the wire representation of one delivery counterpart.
type contactDTO struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// itemDTO is the wire representation of one ordered item line.
type itemDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// payoutDTO is the wire representation of the order's monetary breakdown.
type payoutDTO struct {
	BaseFee       decimal.Decimal `json:"base_fee"`
	DistanceBonus decimal.Decimal `json:"distance_bonus"`
	PeakBonus     decimal.Decimal `json:"peak_bonus"`
	Tip           decimal.Decimal `json:"tip"`
}

// orderDTO is the canonical order payload returned by every job service call.
type orderDTO struct {
	ID         string     `json:"id"`
	Pickup     contactDTO `json:"pickup"`
	Dropoff    contactDTO `json:"dropoff"`
	Items      []itemDTO  `json:"items"`
	Payout     payoutDTO  `json:"payout"`
	PickupOTP  string     `json:"pickup_otp"`
	DropoffOTP string     `json:"dropoff_otp"`
	Status     string     `json:"status"`
}

// statusUpdateRequest reports a non-terminal transition with optional
// last-known position context.
type statusUpdateRequest struct {
	Status string   `json:"status"`
	Lat    *float64 `json:"lat,omitempty"`
	Lon    *float64 `json:"lon,omitempty"`
}

// completeRequest reports the terminal Delivered transition.
type completeRequest struct {
	Code string `json:"code"`
}

// errorResponse is the job service's error envelope.
type errorResponse struct {
	Message string `json:"message"`
}

// toContact converts a wire contact to its domain value object.
func (d contactDTO) toContact() (order.Contact, error) {
	point, err := kernel.NewGeoPoint(d.Lat, d.Lon)
	if err != nil {
		return order.Contact{}, err
	}
	return order.NewContact(d.Name, d.Phone, d.Address, point)
}

// toDomain converts the canonical payload to an ActiveOrder aggregate.
func (d orderDTO) toDomain() (*order.ActiveOrder, error) {
	id, err := kernel.UUIDFromString(d.ID)
	if err != nil {
		return nil, err
	}

	pickup, err := d.Pickup.toContact()
	if err != nil {
		return nil, err
	}
	dropoff, err := d.Dropoff.toContact()
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(d.Items))
	for _, itemD := range d.Items {
		item, itemErr := order.NewItem(itemD.Name, itemD.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	baseFee, err := kernel.NewMoney(d.Payout.BaseFee)
	if err != nil {
		return nil, err
	}
	distanceBonus, err := kernel.NewMoney(d.Payout.DistanceBonus)
	if err != nil {
		return nil, err
	}
	peakBonus, err := kernel.NewMoney(d.Payout.PeakBonus)
	if err != nil {
		return nil, err
	}
	tip, err := kernel.NewMoney(d.Payout.Tip)
	if err != nil {
		return nil, err
	}

	payout, err := order.NewPayout(baseFee, distanceBonus, peakBonus, tip)
	if err != nil {
		return nil, err
	}

	pickupOTP, err := order.NewOTP(d.PickupOTP)
	if err != nil {
		return nil, err
	}
	dropoffOTP, err := order.NewOTP(d.DropoffOTP)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(d.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreActiveOrder(id, pickup, dropoff, items, payout, pickupOTP, dropoffOTP, status)
}
