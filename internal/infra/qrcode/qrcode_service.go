// Package qrcode renders voucher serials as QR codes.
package qrcode

import (
	"encoding/json"
	"fmt"
	"strings"

	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

const voucherPayloadType = "voucher"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// Payload is the JSON document encoded in a voucher QR code
type Payload struct {
	VoucherID string `json:"voucher_id"`
	Type      string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateVoucherQR renders a PNG QR code for a voucher serial
func (s *qrcodeService) GenerateVoucherQR(voucherID string) ([]byte, error) {
	if len(voucherID) != entity.VoucherIDWidth {
		return nil, fmt.Errorf("voucher id must have %d digits: %q", entity.VoucherIDWidth, voucherID)
	}

	jsonData, err := json.Marshal(Payload{VoucherID: voucherID, Type: voucherPayloadType})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseVoucherQR reads a scanned payload. Scanners that only return the bare
// serial are accepted too.
func (s *qrcodeService) ParseVoucherQR(qrData string) (string, error) {
	qrData = strings.TrimSpace(qrData)
	if !strings.HasPrefix(qrData, "{") {
		if len(qrData) != entity.VoucherIDWidth {
			return "", fmt.Errorf("invalid voucher serial: %q", qrData)
		}
		return qrData, nil
	}

	var data Payload
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}
	if data.Type != voucherPayloadType {
		return "", fmt.Errorf("invalid QR code type: %s", data.Type)
	}
	if len(data.VoucherID) != entity.VoucherIDWidth {
		return "", fmt.Errorf("invalid voucher serial: %q", data.VoucherID)
	}

	return data.VoucherID, nil
}
