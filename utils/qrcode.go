package utils

import (
	"encoding/base64"
	"encoding/json"

	"smartpark/models"

	qrcode "github.com/skip2/go-qrcode"
)

// EncodeBookingQR renders the proof-of-booking payload as a PNG QR
// code and returns it as a base64 data URL suitable for inline display.
// Callers treat failures as non-fatal; a booking may carry an empty
// token.
func EncodeBookingQR(payload models.QRPayload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	png, err := qrcode.Encode(string(raw), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
