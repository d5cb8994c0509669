package share

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"ai-trip-planner/internal/trip"
)

// QRCode encodes the trip's share code as a PNG image.
func QRCode(t *trip.Trip) ([]byte, error) {
	code, err := EncodeTrip(t)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("generating qr code: %w", err)
	}
	return png, nil
}
