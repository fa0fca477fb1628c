package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContainerTypeModel mirrors the 'container_types' catalog table.
type ContainerTypeModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex:idx_container_types_name;not null"`
	SizeFeet    int       `gorm:"not null"`
	CapacityCBM float64   `gorm:"type:numeric(10,2);not null"`
	MaxWeightKg float64   `gorm:"type:numeric(12,2);not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ContainerTypeModel) TableName() string {
	return "container_types"
}

// ContainerModel mirrors the 'containers' table.
type ContainerModel struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	LSPID                   uuid.UUID       `gorm:"column:lsp_id;type:uuid;not null;index"`
	ContainerTypeID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ContainerNumber         string          `gorm:"type:varchar(50);uniqueIndex:idx_containers_number;not null"`
	Origin                  string          `gorm:"type:varchar(255);not null"`
	Destination             string          `gorm:"type:varchar(255);not null"`
	DepartureDate           time.Time       `gorm:"type:date;not null;index"`
	ArrivalDate             time.Time       `gorm:"type:date;not null"`
	CapacityCBM             float64         `gorm:"column:capacity_cbm;type:numeric(10,2);not null"`
	PricePerCBM             decimal.Decimal `gorm:"column:price_per_cbm;type:numeric(12,2);not null"`
	Currency                string          `gorm:"type:varchar(3);not null;default:'USD'"`
	IsAvailable             bool            `gorm:"not null;default:true"`
	AutoApproveBookings     bool            `gorm:"not null;default:false"`
	ContainerApprovalStatus string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	ApprovalNotes           string          `gorm:"type:text"`
	RejectionReason         string          `gorm:"type:text"`
	ReviewedBy              *uuid.UUID      `gorm:"type:uuid"`
	ReviewedAt              *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time

	ContainerType *ContainerTypeModel `gorm:"foreignKey:ContainerTypeID"`
}

// TableName explicitly sets the table name for GORM.
func (ContainerModel) TableName() string {
	return "containers"
}
