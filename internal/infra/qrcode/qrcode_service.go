package qrcode

import (
	"encoding/json"
	"strings"

	"cargomatch/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const trackingQRType = "shipment"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// TrackingQRData is the JSON payload encoded in a shipment tracking QR code.
type TrackingQRData struct {
	TrackingNumber string `json:"tracking_number"`
	Type           string `json:"type"`
	URL            string `json:"url,omitempty"`
}

// NewQRCodeService creates a new QR code service instance.
// baseURL, when set, is the public tracking page the code links to.
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = 256
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// GenerateTrackingQR generates a PNG QR code for a shipment tracking number.
func (s *qrcodeService) GenerateTrackingQR(trackingNumber string) ([]byte, error) {
	if strings.TrimSpace(trackingNumber) == "" {
		return nil, errors.New("tracking number is required")
	}

	data := TrackingQRData{
		TrackingNumber: trackingNumber,
		Type:           trackingQRType,
	}
	if s.baseURL != "" {
		data.URL = s.baseURL + "/" + trackingNumber
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseTrackingQR parses QR code data and returns the tracking number.
func (s *qrcodeService) ParseTrackingQR(qrData string) (string, error) {
	var data TrackingQRData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if data.Type != trackingQRType {
		return "", errors.Errorf("invalid QR code type: %s", data.Type)
	}

	if strings.TrimSpace(data.TrackingNumber) == "" {
		return "", errors.New("QR code has no tracking number")
	}

	return data.TrackingNumber, nil
}
