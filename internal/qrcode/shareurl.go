package qrcode

import (
	"encoding/base64"
	"net/url"
	"strconv"

	"qr-service/internal/core/domain"
)

// EncodeShareURL builds the `/qr/view?...` query string for spec. The raw
// payload is base64url-encoded under `data`; logo_size is carried, but the
// logo image itself is not part of the wire format and is dropped.
func EncodeShareURL(spec domain.QRSpec) string {
	q := url.Values{}
	q.Set("data", base64.RawURLEncoding.EncodeToString([]byte(spec.Data)))
	if spec.Size != 0 {
		q.Set("size", strconv.Itoa(spec.Size))
	}
	if spec.FgColor != "" {
		q.Set("fg", spec.FgColor)
	}
	if spec.BgColor != "" {
		q.Set("bg", spec.BgColor)
	}
	if spec.Style != "" {
		q.Set("style", spec.Style)
	}
	if spec.ErrorCorrection != "" {
		q.Set("ec", spec.ErrorCorrection)
	}
	if spec.Format != "" {
		q.Set("format", spec.Format)
	}
	if spec.LogoSize != 0 {
		q.Set("logo_size", strconv.Itoa(spec.LogoSize))
	}
	return "/qr/view?" + q.Encode()
}

// DecodeShareURL reverses EncodeShareURL. Unknown query keys are ignored;
// a missing or non-base64url `data` parameter returns an empty_data
// validation error (400).
func DecodeShareURL(q url.Values) (domain.QRSpec, error) {
	raw := q.Get("data")
	if raw == "" {
		return domain.QRSpec{}, domain.NewValidationError(domain.KindEmptyData, "data query parameter is required")
	}

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return domain.QRSpec{}, domain.NewValidationError(domain.KindEmptyData, "data is not valid base64url")
	}

	spec := domain.QRSpec{
		Data:            string(decoded),
		Format:          q.Get("format"),
		FgColor:         q.Get("fg"),
		BgColor:         q.Get("bg"),
		Style:           q.Get("style"),
		ErrorCorrection: q.Get("ec"),
	}
	if v := q.Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			spec.Size = n
		}
	}
	if v := q.Get("logo_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			spec.LogoSize = n
		}
	}

	return spec, nil
}
