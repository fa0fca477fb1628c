package model

import (
	"time"

	"github.com/google/uuid"
)

// ComplaintModel mirrors the 'complaints' table.
type ComplaintModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ComplaintNumber string     `gorm:"type:varchar(50);uniqueIndex:idx_complaints_number;not null"`
	TraderID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	BookingID       *uuid.UUID `gorm:"type:uuid;index"`
	ContainerID     *uuid.UUID `gorm:"type:uuid"`
	LSPID           *uuid.UUID `gorm:"column:lsp_id;type:uuid;index"`
	Subject         string     `gorm:"type:varchar(255);not null"`
	Description     string     `gorm:"type:text;not null"`
	Status          string     `gorm:"type:varchar(20);not null;default:'open';index"`
	Priority        string     `gorm:"type:varchar(10);not null;default:'medium'"`
	Resolution      string     `gorm:"type:text"`
	ResolvedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ComplaintModel) TableName() string {
	return "complaints"
}
