// Package export renders booking reports for administrators.
package export

import (
	"io"
	"strconv"

	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "Bookings"
	xlsxMIME  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var bookingHeaders = []string{
	"Booking Number", "Status", "Trader ID", "LSP ID", "Container", "Route",
	"Departure", "Cargo Type", "Volume (CBM)", "Weight (kg)", "Total Price", "Currency",
	"Created At", "Closed At", "Closed By",
}

type xlsxExporter struct{}

// NewXLSXExporter returns a BookingExporter producing an Excel workbook.
func NewXLSXExporter() service.BookingExporter {
	return xlsxExporter{}
}

func (xlsxExporter) ContentType() string {
	return xlsxMIME
}

// Export writes one row per booking under a bold header row.
func (xlsxExporter) Export(w io.Writer, bookings []*entity.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return errors.Wrap(err, "failed to create sheet")
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for col, header := range bookingHeaders {
		if err := f.SetCellValue(sheetName, cell(col, 1), header); err != nil {
			return errors.Wrap(err, "failed to write header")
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}
	_ = f.SetCellStyle(sheetName, cell(0, 1), cell(len(bookingHeaders)-1, 1), headerStyle)

	for i, b := range bookings {
		if err := f.SetSheetRow(sheetName, cell(0, i+2), bookingRow(b)); err != nil {
			return errors.Wrapf(err, "failed to write booking %s", b.BookingNumber)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(bookingHeaders))
	_ = f.SetColWidth(sheetName, "A", lastCol, 18)

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}

	return nil
}

func bookingRow(b *entity.Booking) *[]any {
	row := []any{
		b.BookingNumber,
		string(b.Status),
		b.TraderID.String(),
		b.LSPID.String(),
		"", "", "",
		b.CargoType,
		b.VolumeCBM,
		b.WeightKg,
		b.TotalPrice.InexactFloat64(),
		b.Currency,
		b.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		"",
		b.ClosedBy,
	}

	if c := b.Container; c != nil {
		row[4] = c.ContainerNumber
		row[5] = c.Origin + " - " + c.Destination
		row[6] = c.DepartureDate.Format("2006-01-02")
	}
	if b.ClosedAt != nil {
		row[13] = b.ClosedAt.UTC().Format("2006-01-02 15:04:05")
	}

	return &row
}

func cell(col, row int) string {
	name, _ := excelize.ColumnNumberToName(col + 1)

	return name + strconv.Itoa(row)
}
