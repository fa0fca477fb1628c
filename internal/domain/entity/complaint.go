package entity

import (
	"time"

	"github.com/google/uuid"
)

// ComplaintStatus is the ticket state of a complaint.
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "open"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusClosed     ComplaintStatus = "closed"
)

// IsValid checks if the ComplaintStatus is a valid value.
func (s ComplaintStatus) IsValid() bool {
	switch s {
	case ComplaintStatusOpen, ComplaintStatusInProgress, ComplaintStatusResolved, ComplaintStatusClosed:
		return true
	default:
		return false
	}
}

// LSPCanMoveTo reports whether an LSP may move the complaint to next.
// LSPs work a ticket forward to resolved; closing is left to admins.
func (s ComplaintStatus) LSPCanMoveTo(next ComplaintStatus) bool {
	switch s {
	case ComplaintStatusOpen:
		return next == ComplaintStatusInProgress || next == ComplaintStatusResolved
	case ComplaintStatusInProgress:
		return next == ComplaintStatusResolved
	default:
		return false
	}
}

// ComplaintPriority ranks complaints for admins.
type ComplaintPriority string

const (
	ComplaintPriorityLow    ComplaintPriority = "low"
	ComplaintPriorityMedium ComplaintPriority = "medium"
	ComplaintPriorityHigh   ComplaintPriority = "high"
)

// IsValid checks if the ComplaintPriority is a valid value.
func (p ComplaintPriority) IsValid() bool {
	switch p {
	case ComplaintPriorityLow, ComplaintPriorityMedium, ComplaintPriorityHigh:
		return true
	default:
		return false
	}
}

// Complaint is a free-form ticket raised by a trader.
type Complaint struct {
	ID              uuid.UUID         `json:"id"`
	ComplaintNumber string            `json:"complaint_number"`
	TraderID        uuid.UUID         `json:"trader_id"`
	BookingID       *uuid.UUID        `json:"booking_id,omitempty"`
	ContainerID     *uuid.UUID        `json:"container_id,omitempty"`
	LSPID           *uuid.UUID        `json:"lsp_id,omitempty"`
	Subject         string            `json:"subject"`
	Description     string            `json:"description"`
	Status          ComplaintStatus   `json:"status"`
	Priority        ComplaintPriority `json:"priority"`
	Resolution      string            `json:"resolution,omitempty"`
	ResolvedAt      *time.Time        `json:"resolved_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
