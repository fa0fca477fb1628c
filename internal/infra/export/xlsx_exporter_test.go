package export

import (
	"bytes"
	"testing"
	"time"

	"cargomatch/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXExporter_Export(t *testing.T) {
	closedAt := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	bookings := []*entity.Booking{
		{
			ID:            uuid.New(),
			BookingNumber: "BK-1",
			Status:        entity.BookingStatusClosed,
			CargoType:     "electronics",
			VolumeCBM:     4.5,
			TotalPrice:    decimal.RequireFromString("225.50"),
			Currency:      "USD",
			ClosedAt:      &closedAt,
			ClosedBy:      "scheduler",
			Container: &entity.Container{
				ContainerNumber: "MSCU1234567",
				Origin:          "Shanghai",
				Destination:     "Rotterdam",
				DepartureDate:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			},
			CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		},
		{BookingNumber: "BK-2", Status: entity.BookingStatusPending},
	}

	exporter := NewXLSXExporter()
	var buf bytes.Buffer
	require.NoError(t, exporter.Export(&buf, bookings))
	assert.Contains(t, exporter.ContentType(), "spreadsheetml")

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, bookingHeaders, rows[0])
	assert.Equal(t, "BK-1", rows[1][0])
	assert.Equal(t, "MSCU1234567", rows[1][4])
	assert.Equal(t, "Shanghai - Rotterdam", rows[1][5])
	assert.Equal(t, "2026-03-02 06:00:00", rows[1][13])
	assert.Equal(t, "scheduler", rows[1][14])
	assert.Equal(t, "pending", rows[2][1])
}

func TestXLSXExporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXExporter().Export(&buf, nil))
	assert.Positive(t, buf.Len())
}
