// Package qrcode implements the QR rendering pipeline: validation, symbol
// building, and the raster/vector/PDF renderers that share a single
// corner-rounding rule.
package qrcode

import (
	"fmt"
	"image/color"
	"strings"
)

// ParseColor accepts `#RRGGBB`, `RRGGBB`, `#RGB`, or `RGB`, case-insensitive.
// The result is always opaque; input with an alpha component (4 or 8 hex
// digits) is rejected.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
		// already full length
	default:
		return color.RGBA{}, fmt.Errorf("color must be 3 or 6 hex digits, got %q", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
