package qrcode

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"qr-service/internal/core/domain"
)

// MaxDataBytes is a practical upper bound on payload length, independent of
// the exact capacity of the QR version finally chosen by the builder. The
// builder still enforces the real, EC-dependent capacity and returns
// payload_too_large if no version fits.
const MaxDataBytes = 2600

var validFormats = map[string]bool{"png": true, "svg": true, "pdf": true}
var validStyles = map[string]bool{"square": true, "rounded": true, "dots": true}
var validEC = map[string]bool{"L": true, "M": true, "Q": true, "H": true}

// ValidateSpec checks and normalizes a QRSpec, applying defaults for any
// field the caller omitted. Returns a *domain.DomainError describing the
// specific failure.
func ValidateSpec(spec domain.QRSpec) (domain.QRSpec, []byte, error) {
	if spec.Data == "" {
		return spec, nil, domain.NewValidationError(domain.KindEmptyData, "data must not be empty")
	}
	if len(spec.Data) > MaxDataBytes {
		return spec, nil, domain.NewValidationError(domain.KindDataTooLong, fmt.Sprintf("data exceeds %d bytes", MaxDataBytes))
	}

	spec.ApplyDefaults()

	if !validFormats[spec.Format] {
		return spec, nil, domain.NewValidationError(domain.KindBadFormat, fmt.Sprintf("unsupported format %q", spec.Format))
	}
	if !validStyles[spec.Style] {
		return spec, nil, domain.NewValidationError(domain.KindBadStyle, fmt.Sprintf("unsupported style %q", spec.Style))
	}
	if !validEC[spec.ErrorCorrection] {
		return spec, nil, domain.NewValidationError(domain.KindBadEC, fmt.Sprintf("unsupported error correction %q", spec.ErrorCorrection))
	}
	if spec.Size < domain.MinSize || spec.Size > domain.MaxSize {
		return spec, nil, domain.NewValidationError(domain.KindBadSize, fmt.Sprintf("size must be between %d and %d", domain.MinSize, domain.MaxSize))
	}
	if spec.LogoSize < domain.MinLogoSize || spec.LogoSize > domain.MaxLogoSize {
		return spec, nil, domain.NewValidationError(domain.KindBadSize, fmt.Sprintf("logo_size must be between %d and %d", domain.MinLogoSize, domain.MaxLogoSize))
	}

	if spec.FgColor != "" {
		if _, err := ParseColor(spec.FgColor); err != nil {
			return spec, nil, domain.NewValidationError(domain.KindBadColor, err.Error())
		}
	}
	if spec.BgColor != "" {
		if _, err := ParseColor(spec.BgColor); err != nil {
			return spec, nil, domain.NewValidationError(domain.KindBadColor, err.Error())
		}
	}

	var logoBytes []byte
	if spec.Logo != "" {
		decoded, err := decodeLogo(spec.Logo)
		if err != nil {
			return spec, nil, err
		}
		logoBytes = decoded
	}

	return spec, logoBytes, nil
}

// decodeLogo strips any data: URI prefix, base64-decodes, and sniffs the
// image format.
func decodeLogo(raw string) ([]byte, error) {
	decoded, err := DecodeDataURIOrBase64(raw)
	if err != nil {
		return nil, domain.NewValidationError(domain.KindLogoDecodeFailed, "logo is not valid base64")
	}
	if len(decoded) > domain.MaxLogoBytes {
		return nil, domain.NewValidationError(domain.KindLogoTooLarge, fmt.Sprintf("logo exceeds %d bytes", domain.MaxLogoBytes))
	}

	if _, _, err := image.Decode(bytes.NewReader(decoded)); err != nil {
		return nil, domain.NewValidationError(domain.KindLogoDecodeFailed, "logo is not a recognizable PNG/JPEG/GIF/WebP image")
	}

	return decoded, nil
}
