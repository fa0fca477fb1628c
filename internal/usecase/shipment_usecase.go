package usecase

import (
	"context"
	"time"

	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/repository"

	"github.com/google/uuid"
)

// CreateShipmentInput starts tracking an approved booking.
type CreateShipmentInput struct {
	BookingID        uuid.UUID
	CurrentLocation  string
	EstimatedArrival *time.Time
}

// UpdateShipmentStatusInput moves a shipment forward.
type UpdateShipmentStatusInput struct {
	Status   entity.ShipmentStatus
	Location string
	Notes    string
}

// ShipmentUsecase covers shipment creation, tracking and status updates.
type ShipmentUsecase interface {
	// CreateShipment fails with ErrShipmentExists when the booking already has one.
	CreateShipment(ctx context.Context, lspID uuid.UUID, input *CreateShipmentInput) (*entity.Shipment, error)

	// UpdateShipmentStatus writes the status and a history entry in one transaction.
	UpdateShipmentStatus(ctx context.Context, lspID, shipmentID uuid.UUID, input *UpdateShipmentStatusInput) (*entity.Shipment, error)

	ListLSPShipments(ctx context.Context, lspID uuid.UUID, status *entity.ShipmentStatus, page repository.Page) ([]*entity.Shipment, int64, error)
	GetShipmentHistory(ctx context.Context, lspID, shipmentID uuid.UUID) ([]*entity.ShipmentStatusHistory, error)

	// TrackShipment returns a trader's shipment and its history by tracking number.
	TrackShipment(ctx context.Context, traderID uuid.UUID, trackingNumber string) (*entity.Shipment, []*entity.ShipmentStatusHistory, error)

	// TrackingQRCode renders a PNG QR code for a trader's shipment.
	TrackingQRCode(ctx context.Context, traderID uuid.UUID, trackingNumber string) ([]byte, error)
}
