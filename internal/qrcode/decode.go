package qrcode

import (
	"bytes"
	"encoding/base64"
	"image"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"qr-service/internal/core/domain"
)

// DecodeDataURIOrBase64 strips any `data:...;base64,` prefix and decodes the
// remainder, the same acceptance rule the logo field uses.
func DecodeDataURIOrBase64(raw string) ([]byte, error) {
	payload := raw
	if idx := strings.Index(raw, ","); strings.HasPrefix(raw, "data:") && idx >= 0 {
		payload = raw[idx+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}

// Decode sniffs imageBytes as PNG/JPEG/GIF/WebP, then applies a standard QR
// decoder, returning the embedded payload.
func Decode(imageBytes []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", domain.NewValidationError(domain.KindNotAQR, "not a decodable image")
	}

	bitmap, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", domain.NewValidationError(domain.KindNotAQR, "image could not be binarized")
	}

	result, err := qrcode.NewQRCodeReader().Decode(bitmap, nil)
	if err != nil {
		return "", domain.NewValidationError(domain.KindNotAQR, "no QR code found in image")
	}

	return result.GetText(), nil
}
