package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateTrackingQR renders a PNG QR code for a shipment tracking number.
	GenerateTrackingQR(trackingNumber string) ([]byte, error)

	// ParseTrackingQR extracts the tracking number from scanned QR data.
	ParseTrackingQR(qrData string) (string, error)
}
