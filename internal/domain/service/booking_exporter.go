package service

import (
	"io"

	"cargomatch/internal/domain/entity"
)

// BookingExporter renders bookings into a downloadable spreadsheet.
type BookingExporter interface {
	// ContentType is the MIME type of the rendered document.
	ContentType() string

	// Export writes the bookings to w.
	Export(w io.Writer, bookings []*entity.Booking) error
}
