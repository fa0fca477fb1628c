package repository

import (
	"context"
	"errors"
	"time"

	"cargomatch/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBookingNotFound is returned when a booking is not found.
var ErrBookingNotFound = errors.New("booking not found")

// BookingFilter narrows booking listings. Nil fields do not filter.
type BookingFilter struct {
	TraderID    *uuid.UUID
	LSPID       *uuid.UUID
	ContainerID *uuid.UUID
	Statuses    []entity.BookingStatus
	Page
}

// BookingRepository defines persistence operations for bookings.
// Every status change is a guarded conditional update: it returns
// ErrBookingNotFound when the row does not exist and ErrStatusConflict when
// the row exists in a state the transition does not leave from.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *entity.Booking) error

	// FindByID retrieves a booking with its container.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)

	// List returns a page of bookings and the total count.
	List(ctx context.Context, filter BookingFilter) ([]*entity.Booking, int64, error)

	// Approve moves a pending booking to approved and stamps approved_at.
	// Non-empty notes replace the booking notes.
	Approve(ctx context.Context, id uuid.UUID, notes string, at time.Time) error

	// Reject moves a pending booking to rejected, storing the reason in notes.
	Reject(ctx context.Context, id uuid.UUID, reason string) error

	// Cancel moves a pending booking to cancelled.
	Cancel(ctx context.Context, id uuid.UUID, at time.Time) error

	// Close moves a booking still in status from, with closed_at unset, to
	// closed and stamps closed_at and closed_by. It is the only writer of
	// closed_at. ErrStatusConflict when the row no longer matches.
	Close(ctx context.Context, id uuid.UUID, from entity.BookingStatus, closedBy string, at time.Time) error

	// FindDueForClosure returns approved bookings with closed_at unset whose
	// container departs on the given UTC day.
	FindDueForClosure(ctx context.Context, departureDay time.Time) ([]*entity.Booking, error)

	// CountByStatus counts bookings per status.
	CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error)

	// CountByContainer counts bookings of a container in the given statuses.
	CountByContainer(ctx context.Context, containerID uuid.UUID, statuses []entity.BookingStatus) (int64, error)
}
