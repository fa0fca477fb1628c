package usecase

import (
	"context"
	"time"

	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/repository"

	"github.com/google/uuid"
)

// CreateBookingInput is a trader's booking request.
type CreateBookingInput struct {
	ContainerID  uuid.UUID
	CargoDetails entity.CargoDetails
	VolumeCBM    float64
	WeightKg     float64
	Notes        string
	Documents    []entity.DocumentRef
}

// Actor identifies who performs a booking transition.
type Actor struct {
	Role   entity.Role
	UserID uuid.UUID  // Zero for admins.
	LSPID  *uuid.UUID // Set for LSPs.
}

// ClosedBy returns the closed_by label recorded for the actor.
func (a Actor) ClosedBy() string {
	return a.Role.String()
}

// BookingUsecase drives the booking state machine.
type BookingUsecase interface {
	// CreateBooking books space in an approved, available container.
	CreateBooking(ctx context.Context, traderID uuid.UUID, input *CreateBookingInput) (*entity.Booking, error)

	GetTraderBooking(ctx context.Context, traderID, bookingID uuid.UUID) (*entity.Booking, error)
	ListTraderBookings(ctx context.Context, traderID uuid.UUID, page repository.Page) ([]*entity.Booking, int64, error)

	// CancelBooking cancels a trader's pending booking.
	CancelBooking(ctx context.Context, traderID, bookingID uuid.UUID) (*entity.Booking, error)

	GetLSPBooking(ctx context.Context, lspID, bookingID uuid.UUID) (*entity.Booking, error)
	ListLSPBookings(ctx context.Context, lspID uuid.UUID, statuses []entity.BookingStatus, page repository.Page) ([]*entity.Booking, int64, error)

	// ApproveBooking moves a pending booking to approved. Auto-approved bookings
	// also get their shipment.
	ApproveBooking(ctx context.Context, lspID, bookingID uuid.UUID, notes string) (*entity.Booking, error)

	// RejectBooking requires a non-blank reason.
	RejectBooking(ctx context.Context, lspID, bookingID uuid.UUID, reason string) (*entity.Booking, error)

	// CloseBooking closes an approved booking on behalf of its LSP or an admin.
	CloseBooking(ctx context.Context, actor Actor, bookingID uuid.UUID) (*entity.Booking, error)
}

// ClosureReport summarises one run of the pre-departure closure job.
type ClosureReport struct {
	TargetDate string    `json:"target_date"`
	Selected   int       `json:"selected"`
	Closed     int       `json:"closed"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// BookingClosureUsecase closes approved bookings the day before departure.
type BookingClosureUsecase interface {
	// CloseBookingsBeforeDeparture closes every approved, unclosed booking whose
	// container departs on the day after now. Each booking is closed on its own;
	// failures are counted and the batch continues.
	CloseBookingsBeforeDeparture(ctx context.Context, now time.Time) (*ClosureReport, error)
}
