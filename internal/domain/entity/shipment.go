package entity

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentStatus tracks the physical movement of a booked container.
type ShipmentStatus string

const (
	ShipmentStatusScheduled ShipmentStatus = "scheduled"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusClosed    ShipmentStatus = "closed"
)

var shipmentStatusOrder = map[ShipmentStatus]int{
	ShipmentStatusScheduled: 0,
	ShipmentStatusInTransit: 1,
	ShipmentStatusDelivered: 2,
	ShipmentStatusClosed:    3,
}

// IsValid checks if the ShipmentStatus is a valid value.
func (s ShipmentStatus) IsValid() bool {
	_, ok := shipmentStatusOrder[s]

	return ok
}

// CanTransitionTo reports whether moving to next goes strictly forward.
func (s ShipmentStatus) CanTransitionTo(next ShipmentStatus) bool {
	from, ok := shipmentStatusOrder[s]
	if !ok {
		return false
	}
	to, ok := shipmentStatusOrder[next]
	if !ok {
		return false
	}

	return to > from
}

// Shipment is created when a booking is approved and follows the container's voyage.
type Shipment struct {
	ID               uuid.UUID      `json:"id"`
	BookingID        uuid.UUID      `json:"booking_id"`
	TrackingNumber   string         `json:"tracking_number"`
	Status           ShipmentStatus `json:"status"`
	CurrentLocation  string         `json:"current_location,omitempty"`
	EstimatedArrival *time.Time     `json:"estimated_arrival,omitempty"`
	Booking          *Booking       `json:"booking,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// ShipmentStatusHistory is one append-only entry of a shipment's status log.
type ShipmentStatusHistory struct {
	ID         uuid.UUID      `json:"id"`
	ShipmentID uuid.UUID      `json:"shipment_id"`
	Status     ShipmentStatus `json:"status"`
	Location   string         `json:"location,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	ChangedBy  string         `json:"changed_by"`
	CreatedAt  time.Time      `json:"created_at"`
}
