package services

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qr-service/internal/core/domain"
)

func TestQRServiceGenerateProducesPNGDataURI(t *testing.T) {
	svc := NewQRService()
	resp, err := svc.Generate(context.Background(), domain.QRSpec{Data: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "png", resp.Format)
	assert.True(t, strings.HasPrefix(resp.ImageBase64, "data:image/png;base64,"))
	assert.True(t, strings.HasPrefix(resp.ShareURL, "/qr/view?"))
}

func TestQRServiceGenerateRejectsEmptyData(t *testing.T) {
	svc := NewQRService()
	_, err := svc.Generate(context.Background(), domain.QRSpec{})
	de := domain.AsDomainError(err)
	assert.Equal(t, domain.KindEmptyData, de.Kind)
}

func TestQRServiceGeneratePDF(t *testing.T) {
	svc := NewQRService()
	resp, err := svc.Generate(context.Background(), domain.QRSpec{Data: "hello", Format: "pdf"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.ImageBase64, "data:application/pdf;base64,"))
}

func TestQRServiceDecodeRoundTrips(t *testing.T) {
	svc := NewQRService()
	resp, err := svc.Generate(context.Background(), domain.QRSpec{Data: "decode-me", Format: "png", Size: 300})
	require.NoError(t, err)

	idx := strings.Index(resp.ImageBase64, ",")
	require.GreaterOrEqual(t, idx, 0)

	raw, err := dataURIPayload(resp.ImageBase64)
	require.NoError(t, err)

	text, err := svc.Decode(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "decode-me", text)
}

func TestQRServiceBatchPreservesOrderAndMergesFormat(t *testing.T) {
	svc := NewQRService()
	resp, err := svc.Batch(context.Background(), domain.BatchRequest{
		Format: "svg",
		Items: []domain.QRSpec{
			{Data: "first"},
			{Data: "second", Format: "png"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "first", resp.Items[0].Data)
	assert.Equal(t, "svg", resp.Items[0].Format)
	assert.Equal(t, "second", resp.Items[1].Data)
	assert.Equal(t, "png", resp.Items[1].Format)
}

func TestQRServiceBatchRejectsEmptyOrOversized(t *testing.T) {
	svc := NewQRService()

	_, err := svc.Batch(context.Background(), domain.BatchRequest{})
	assert.Equal(t, domain.KindPayloadTooLarge, domain.AsDomainError(err).Kind)

	items := make([]domain.QRSpec, domain.MaxBatchItems+1)
	for i := range items {
		items[i] = domain.QRSpec{Data: "x"}
	}
	_, err = svc.Batch(context.Background(), domain.BatchRequest{Items: items})
	assert.Equal(t, domain.KindPayloadTooLarge, domain.AsDomainError(err).Kind)
}

func TestQRServiceBatchPropagatesItemError(t *testing.T) {
	svc := NewQRService()
	_, err := svc.Batch(context.Background(), domain.BatchRequest{
		Items: []domain.QRSpec{{Data: "ok"}, {Data: ""}},
	})
	assert.Equal(t, domain.KindEmptyData, domain.AsDomainError(err).Kind)
}

func TestQRServiceRenderShareURLRoundTripsThroughEncodeDecode(t *testing.T) {
	svc := NewQRService()
	generated, err := svc.Generate(context.Background(), domain.QRSpec{Data: "shared", Format: "png"})
	require.NoError(t, err)

	query := strings.TrimPrefix(generated.ShareURL, "/qr/view?")
	values, err := url.ParseQuery(query)
	require.NoError(t, err)

	raw, mime, err := svc.RenderShareURL(context.Background(), values)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.NotEmpty(t, raw)
}
