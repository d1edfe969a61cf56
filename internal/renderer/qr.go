package renderer

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRCode encodes content as a square PNG of size pixels.
func QRCode(content string, size int) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
