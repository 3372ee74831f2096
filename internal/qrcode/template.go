package qrcode

import (
	"fmt"
	"net/url"
	"strings"

	"qr-service/internal/core/domain"
)

var wifiEscaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, `"`, `\"`)

// ComposeWiFi builds a `WIFI:...;;` payload string.
func ComposeWiFi(req domain.WiFiTemplateRequest) (string, error) {
	if req.SSID == "" {
		return "", domain.NewValidationError(domain.KindTemplateMissingField, "ssid is required")
	}
	encryption := req.Encryption
	if encryption == "" {
		encryption = "nopass"
	}
	if encryption != "WPA" && encryption != "WEP" && encryption != "nopass" {
		return "", domain.NewValidationError(domain.KindTemplateMissingField, "encryption must be WPA, WEP, or nopass")
	}

	var b strings.Builder
	b.WriteString("WIFI:T:")
	b.WriteString(encryption)
	b.WriteString(";S:")
	b.WriteString(wifiEscaper.Replace(req.SSID))
	b.WriteString(";P:")
	b.WriteString(wifiEscaper.Replace(req.Password))
	b.WriteString(";")
	if req.Hidden {
		b.WriteString("H:true;")
	}
	b.WriteString(";")
	return b.String(), nil
}

// ComposeVCard builds a vCard 3.0 payload. FN is required.
func ComposeVCard(req domain.VCardTemplateRequest) (string, error) {
	if req.FN == "" {
		return "", domain.NewValidationError(domain.KindTemplateMissingField, "fn is required")
	}

	var b strings.Builder
	b.WriteString("BEGIN:VCARD\nVERSION:3.0\n")
	fmt.Fprintf(&b, "FN:%s\n", req.FN)
	if req.Email != "" {
		fmt.Fprintf(&b, "EMAIL:%s\n", req.Email)
	}
	if req.Tel != "" {
		fmt.Fprintf(&b, "TEL:%s\n", req.Tel)
	}
	if req.Org != "" {
		fmt.Fprintf(&b, "ORG:%s\n", req.Org)
	}
	if req.Title != "" {
		fmt.Fprintf(&b, "TITLE:%s\n", req.Title)
	}
	if req.URL != "" {
		fmt.Fprintf(&b, "URL:%s\n", req.URL)
	}
	b.WriteString("END:VCARD")
	return b.String(), nil
}

// ComposeURL appends UTM query parameters to req.URL, preserving any
// existing query string.
func ComposeURL(req domain.URLTemplateRequest) (string, error) {
	if req.URL == "" {
		return "", domain.NewValidationError(domain.KindTemplateMissingField, "url is required")
	}

	u, err := url.Parse(req.URL)
	if err != nil {
		return "", domain.NewValidationError(domain.KindTemplateMissingField, "url is not a valid URL")
	}

	q := u.Query()
	if req.UTMSource != "" {
		q.Set("utm_source", req.UTMSource)
	}
	if req.UTMMedium != "" {
		q.Set("utm_medium", req.UTMMedium)
	}
	if req.UTMCampaign != "" {
		q.Set("utm_campaign", req.UTMCampaign)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
