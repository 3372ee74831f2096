package qrcode

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qr-service/internal/core/domain"
)

func TestEncodeDecodeShareURLRoundTrips(t *testing.T) {
	spec := domain.QRSpec{
		Data:            "https://example.com/path?x=1",
		Format:          "svg",
		Size:            512,
		FgColor:         "#112233",
		BgColor:         "#ffffff",
		ErrorCorrection: "Q",
		Style:           "rounded",
		LogoSize:        25,
	}

	encoded := EncodeShareURL(spec)
	assert.True(t, strings.HasPrefix(encoded, "/qr/view?"))

	rawQuery := strings.TrimPrefix(encoded, "/qr/view?")
	q, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)

	decoded, err := DecodeShareURL(q)
	require.NoError(t, err)

	assert.Equal(t, spec.Data, decoded.Data)
	assert.Equal(t, spec.Format, decoded.Format)
	assert.Equal(t, spec.Size, decoded.Size)
	assert.Equal(t, spec.FgColor, decoded.FgColor)
	assert.Equal(t, spec.BgColor, decoded.BgColor)
	assert.Equal(t, spec.ErrorCorrection, decoded.ErrorCorrection)
	assert.Equal(t, spec.Style, decoded.Style)
	assert.Equal(t, spec.LogoSize, decoded.LogoSize)
}

func TestDecodeShareURLMissingDataFails(t *testing.T) {
	_, err := DecodeShareURL(url.Values{})
	assert.Error(t, err)
}

func TestDecodeShareURLIgnoresUnknownKeys(t *testing.T) {
	q := url.Values{}
	q.Set("data", "aGVsbG8")
	q.Set("unexpected", "value")

	spec, err := DecodeShareURL(q)
	require.NoError(t, err)
	assert.Equal(t, "hello", spec.Data)
}
