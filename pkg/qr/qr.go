// Package qr renders redemption tokens as scannable QR images. The token is
// an opaque byte string here; callers attach meaning to it.
package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 256

// DataURL encodes content as a PNG QR code and returns it as a data URL
// suitable for embedding directly in an <img> tag of the mini app.
func DataURL(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, imageSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
