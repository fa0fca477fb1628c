package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContainerType is catalog data describing a container size.
type ContainerType struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`          // e.g. "20ft Standard".
	SizeFeet    int       `json:"size_feet"`     // Nominal length.
	CapacityCBM float64   `json:"capacity_cbm"`  // Internal volume in cubic metres.
	MaxWeightKg float64   `json:"max_weight_kg"` // Payload limit.
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ContainerApprovalStatus is the admin review state of a listed container.
type ContainerApprovalStatus string

const (
	ContainerApprovalPending  ContainerApprovalStatus = "pending"
	ContainerApprovalApproved ContainerApprovalStatus = "approved"
	ContainerApprovalRejected ContainerApprovalStatus = "rejected"
)

// IsValid checks if the ContainerApprovalStatus is a valid value.
func (s ContainerApprovalStatus) IsValid() bool {
	switch s {
	case ContainerApprovalPending, ContainerApprovalApproved, ContainerApprovalRejected:
		return true
	default:
		return false
	}
}

// Container is capacity an LSP offers on one route and departure.
type Container struct {
	ID                  uuid.UUID               `json:"id"`
	LSPID               uuid.UUID               `json:"lsp_id"`
	ContainerTypeID     uuid.UUID               `json:"container_type_id"`
	ContainerType       *ContainerType          `json:"container_type,omitempty"`
	ContainerNumber     string                  `json:"container_number"`
	Origin              string                  `json:"origin"`
	Destination         string                  `json:"destination"`
	DepartureDate       time.Time               `json:"departure_date"`
	ArrivalDate         time.Time               `json:"arrival_date"`
	CapacityCBM         float64                 `json:"capacity_cbm"`
	PricePerCBM         decimal.Decimal         `json:"price_per_cbm"`
	Currency            string                  `json:"currency"`
	IsAvailable         bool                    `json:"is_available"`
	AutoApproveBookings bool                    `json:"auto_approve_bookings"` // Copied to bookings as is_auto_approved.
	ApprovalStatus      ContainerApprovalStatus `json:"container_approval_status"`
	ApprovalNotes       string                  `json:"approval_notes,omitempty"`
	RejectionReason     string                  `json:"rejection_reason,omitempty"`
	ReviewedBy          *uuid.UUID              `json:"reviewed_by,omitempty"`
	ReviewedAt          *time.Time              `json:"reviewed_at,omitempty"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

// IsImmutable reports whether the admin's sign-off freezes the container.
func (c *Container) IsImmutable() bool {
	return c.ApprovalStatus == ContainerApprovalApproved
}

// IsBookable reports whether traders may book the container at the given time.
func (c *Container) IsBookable(now time.Time) bool {
	return c.ApprovalStatus == ContainerApprovalApproved && c.IsAvailable && c.DepartureDate.After(now)
}

// PriceFor returns the price of the given volume.
func (c *Container) PriceFor(volumeCBM float64) decimal.Decimal {
	return c.PricePerCBM.Mul(decimal.NewFromFloat(volumeCBM)).Round(2)
}
