package service

// QRCodeService renders voucher serials as QR codes
type QRCodeService interface {
	// GenerateVoucherQR returns a PNG encoding the voucher id
	GenerateVoucherQR(voucherID string) ([]byte, error)

	// ParseVoucherQR extracts the voucher id from scanned QR payload text
	ParseVoucherQR(qrData string) (string, error)
}
