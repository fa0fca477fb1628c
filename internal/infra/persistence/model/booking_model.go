package model

import (
	"time"

	"cargomatch/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// BookingModel mirrors the 'bookings' table. cargo_details and documents are JSONB.
type BookingModel struct {
	ID             uuid.UUID                               `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BookingNumber  string                                  `gorm:"type:varchar(50);uniqueIndex:idx_bookings_number;not null"`
	ContainerID    uuid.UUID                               `gorm:"type:uuid;not null;index"`
	TraderID       uuid.UUID                               `gorm:"type:uuid;not null;index"`
	LSPID          uuid.UUID                               `gorm:"column:lsp_id;type:uuid;not null;index"`
	CargoDetails   datatypes.JSONType[entity.CargoDetails] `gorm:"type:jsonb;not null"`
	CargoType      string                                  `gorm:"type:varchar(100)"`
	VolumeCBM      float64                                 `gorm:"column:volume_cbm;type:numeric(10,2);not null"`
	WeightKg       float64                                 `gorm:"type:numeric(12,2)"`
	TotalPrice     decimal.Decimal                         `gorm:"type:numeric(14,2);not null"`
	Currency       string                                  `gorm:"type:varchar(3);not null;default:'USD'"`
	Status         string                                  `gorm:"type:varchar(20);not null;default:'pending';index"`
	IsAutoApproved bool                                    `gorm:"not null;default:false"`
	Notes          string                                  `gorm:"type:text"`
	Documents      datatypes.JSONSlice[entity.DocumentRef] `gorm:"type:jsonb"`
	ApprovedAt     *time.Time
	ClosedAt       *time.Time `gorm:"index"`
	ClosedBy       string     `gorm:"type:varchar(20)"`
	CancelledAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Container *ContainerModel `gorm:"foreignKey:ContainerID"`
}

// TableName explicitly sets the table name for GORM.
func (BookingModel) TableName() string {
	return "bookings"
}
