package model

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentModel mirrors the 'shipments' table. One shipment per booking.
type ShipmentModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BookingID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_shipments_booking;not null"`
	TrackingNumber   string    `gorm:"type:varchar(50);uniqueIndex:idx_shipments_tracking;not null"`
	Status           string    `gorm:"type:varchar(20);not null;default:'scheduled';index"`
	CurrentLocation  string    `gorm:"type:varchar(255)"`
	EstimatedArrival *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Booking *BookingModel `gorm:"foreignKey:BookingID"`
}

// TableName explicitly sets the table name for GORM.
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ShipmentStatusHistoryModel mirrors the append-only 'shipment_status_history' table.
type ShipmentStatusHistoryModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(20);not null"`
	Location   string    `gorm:"type:varchar(255)"`
	Notes      string    `gorm:"type:text"`
	ChangedBy  string    `gorm:"type:varchar(100);not null"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ShipmentStatusHistoryModel) TableName() string {
	return "shipment_status_history"
}
