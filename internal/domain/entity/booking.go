package entity

import (
	"regexp"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending         BookingStatus = "pending"
	BookingStatusPendingApproval BookingStatus = "pending_approval" // Legacy spelling of pending.
	BookingStatusApproved        BookingStatus = "approved"
	BookingStatusRejected        BookingStatus = "rejected"
	BookingStatusClosed          BookingStatus = "closed"
	BookingStatusCancelled       BookingStatus = "cancelled"
)

// PendingBookingStatuses are the states approve and reject may leave from.
var PendingBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusPendingApproval}

// IsValid checks if the BookingStatus is a valid value.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusPendingApproval, BookingStatusApproved,
		BookingStatusRejected, BookingStatusClosed, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsPending reports whether approve/reject/cancel may still act.
func (s BookingStatus) IsPending() bool {
	return slices.Contains(PendingBookingStatuses, s)
}

// IsTerminal reports whether no transition leaves this state.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusRejected, BookingStatusClosed, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// CanClose reports whether the booking may be closed manually. Any booking
// that is not closed yet qualifies; the closure job only selects approved ones.
func (s BookingStatus) CanClose() bool {
	return s != BookingStatusClosed
}

// HoldsContainer reports whether the booking keeps its container reserved.
func (s BookingStatus) HoldsContainer() bool {
	return s == BookingStatusApproved
}

// DocumentRef points at an uploaded file attached to a booking.
type DocumentRef struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	PublicID string `json:"public_id,omitempty"`
}

// Booking is a trader's request for space in a container.
type Booking struct {
	ID             uuid.UUID       `json:"id"`
	BookingNumber  string          `json:"booking_number"`
	ContainerID    uuid.UUID       `json:"container_id"`
	TraderID       uuid.UUID       `json:"trader_id"`
	LSPID          uuid.UUID       `json:"lsp_id"`
	CargoDetails   CargoDetails    `json:"cargo_details"`
	CargoType      string          `json:"cargo_type"` // Derived from CargoDetails.
	VolumeCBM      float64         `json:"volume_cbm"`
	WeightKg       float64         `json:"weight_kg"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Currency       string          `json:"currency"`
	Status         BookingStatus   `json:"status"`
	IsAutoApproved bool            `json:"is_auto_approved"`
	Notes          string          `json:"notes,omitempty"`
	NoteLinks      []string        `json:"note_links,omitempty"` // Derived from Notes.
	Documents      []DocumentRef   `json:"documents,omitempty"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
	ClosedAt       *time.Time      `json:"closed_at,omitempty"`
	ClosedBy       string          `json:"closed_by,omitempty"` // "lsp", "admin" or "scheduler".
	CancelledAt    *time.Time      `json:"cancelled_at,omitempty"`
	Container      *Container      `json:"container,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

var noteLinkPattern = regexp.MustCompile(`https?://[^\s<>"')\]]+`)

// ExtractNoteLinks returns the distinct URLs mentioned in free-text notes, in order.
func ExtractNoteLinks(notes string) []string {
	matches := noteLinkPattern.FindAllString(notes, -1)
	if len(matches) == 0 {
		return nil
	}

	links := make([]string, 0, len(matches))
	for _, m := range matches {
		if !slices.Contains(links, m) {
			links = append(links, m)
		}
	}

	return links
}
