package repository

import (
	"context"
	"errors"

	"cargomatch/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for shipment persistence.
var (
	// ErrShipmentNotFound is returned when a shipment is not found.
	ErrShipmentNotFound = errors.New("shipment not found")
	// ErrShipmentExists is returned when the booking already has a shipment.
	ErrShipmentExists = errors.New("shipment already exists for booking")
)

// ShipmentFilter narrows shipment listings.
type ShipmentFilter struct {
	LSPID    *uuid.UUID
	TraderID *uuid.UUID
	Status   *entity.ShipmentStatus
	Page
}

// ShipmentRepository defines persistence operations for shipments and their history.
type ShipmentRepository interface {
	// Create persists a new shipment. ErrShipmentExists when the booking has one.
	Create(ctx context.Context, shipment *entity.Shipment) error

	// FindByID retrieves a shipment with its booking.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error)

	// FindByBookingID retrieves the shipment of a booking.
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Shipment, error)

	// FindByTrackingNumber retrieves a shipment with its booking.
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Shipment, error)

	// List returns a page of shipments and the total count.
	List(ctx context.Context, filter ShipmentFilter) ([]*entity.Shipment, int64, error)

	// UpdateStatus moves a shipment from one status to another.
	// ErrStatusConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.ShipmentStatus, location string) error

	// AppendHistory adds an entry to the shipment's status log.
	AppendHistory(ctx context.Context, entry *entity.ShipmentStatusHistory) error

	// ListHistory returns the status log oldest first.
	ListHistory(ctx context.Context, shipmentID uuid.UUID) ([]*entity.ShipmentStatusHistory, error)

	// CountActive counts shipments that are not closed.
	CountActive(ctx context.Context) (int64, error)
}
