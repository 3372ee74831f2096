package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qr-service/internal/core/domain"
)

func TestComposeWiFi(t *testing.T) {
	payload, err := ComposeWiFi(domain.WiFiTemplateRequest{
		SSID:       "Home;Net",
		Password:   `p\ss"word`,
		Encryption: "WPA",
	})
	require.NoError(t, err)
	assert.Contains(t, payload, "WIFI:T:WPA;")
	assert.Contains(t, payload, `S:Home\;Net;`)
	assert.Contains(t, payload, `P:p\\ss\"word;`)
}

func TestComposeWiFiDefaultsEncryptionToNopass(t *testing.T) {
	payload, err := ComposeWiFi(domain.WiFiTemplateRequest{SSID: "Guest"})
	require.NoError(t, err)
	assert.Contains(t, payload, "WIFI:T:nopass;")
}

func TestComposeWiFiRequiresSSID(t *testing.T) {
	_, err := ComposeWiFi(domain.WiFiTemplateRequest{})
	assert.Error(t, err)
}

func TestComposeWiFiRejectsBadEncryption(t *testing.T) {
	_, err := ComposeWiFi(domain.WiFiTemplateRequest{SSID: "x", Encryption: "AES"})
	assert.Error(t, err)
}

func TestComposeWiFiHiddenFlag(t *testing.T) {
	payload, err := ComposeWiFi(domain.WiFiTemplateRequest{SSID: "x", Hidden: true})
	require.NoError(t, err)
	assert.Contains(t, payload, "H:true;")
}

func TestComposeVCard(t *testing.T) {
	payload, err := ComposeVCard(domain.VCardTemplateRequest{
		FN:    "Jane Doe",
		Email: "jane@example.com",
	})
	require.NoError(t, err)
	assert.Contains(t, payload, "BEGIN:VCARD")
	assert.Contains(t, payload, "FN:Jane Doe")
	assert.Contains(t, payload, "EMAIL:jane@example.com")
	assert.Contains(t, payload, "END:VCARD")
}

func TestComposeVCardRequiresFN(t *testing.T) {
	_, err := ComposeVCard(domain.VCardTemplateRequest{})
	assert.Error(t, err)
}

func TestComposeURLAppendsUTMParams(t *testing.T) {
	payload, err := ComposeURL(domain.URLTemplateRequest{
		URL:       "https://example.com/page?existing=1",
		UTMSource: "newsletter",
	})
	require.NoError(t, err)
	assert.Contains(t, payload, "existing=1")
	assert.Contains(t, payload, "utm_source=newsletter")
}

func TestComposeURLRequiresURL(t *testing.T) {
	_, err := ComposeURL(domain.URLTemplateRequest{})
	assert.Error(t, err)
}
