package domain

import "time"

// Default/bound values shared by the validator and renderers.
const (
	DefaultFormat          = "png"
	DefaultSize            = 256
	MinSize                = 64
	MaxSize                = 4096
	DefaultErrorCorrection = "M"
	DefaultStyle           = "square"
	DefaultLogoSize        = 20
	MinLogoSize            = 5
	MaxLogoSize            = 40
	MaxLogoBytes           = 512 * 1024
	MaxBatchItems          = 50
)

// QRSpec is the fully-specified, request-scoped description of one QR code
// to render. Defaults are applied by the validator, not by JSON unmarshaling.
type QRSpec struct {
	Data             string `json:"data"`
	Format           string `json:"format,omitempty"`
	Size             int    `json:"size,omitempty"`
	FgColor          string `json:"fg_color,omitempty"`
	BgColor          string `json:"bg_color,omitempty"`
	ErrorCorrection  string `json:"error_correction,omitempty"`
	Style            string `json:"style,omitempty"`
	Logo             string `json:"logo,omitempty"`
	LogoSize         int    `json:"logo_size,omitempty"`
}

// GenerateResponse is returned by the generate, batch, and template endpoints.
type GenerateResponse struct {
	ImageBase64 string `json:"image_base64"`
	ShareURL    string `json:"share_url"`
	Format      string `json:"format"`
	Size        int    `json:"size"`
	Data        string `json:"data"`
}

// DecodeRequest carries a base64-encoded image to scan for a QR payload.
type DecodeRequest struct {
	Image string `json:"image"`
}

// DecodeResponse is returned on a successful decode.
type DecodeResponse struct {
	Data string `json:"data"`
}

// BatchRequest renders up to MaxBatchItems specs in one call. Format, when
// set, is merged into any item that omits its own format.
type BatchRequest struct {
	Items  []QRSpec `json:"items"`
	Format string   `json:"format,omitempty"`
}

// BatchResponse preserves the input order of BatchRequest.Items.
type BatchResponse struct {
	Items []GenerateResponse `json:"items"`
}

// StyleOptions is the subset of QRSpec fields templates accept alongside
// their own structured payload fields.
type StyleOptions struct {
	Format          string `json:"format,omitempty"`
	Size            int    `json:"size,omitempty"`
	FgColor         string `json:"fg_color,omitempty"`
	BgColor         string `json:"bg_color,omitempty"`
	ErrorCorrection string `json:"error_correction,omitempty"`
	Style           string `json:"style,omitempty"`
	Logo            string `json:"logo,omitempty"`
	LogoSize        int    `json:"logo_size,omitempty"`
}

// ToSpec builds a QRSpec from a composed payload string plus these styling
// fields, the shared tail of every template and tracked-create request.
func (s StyleOptions) ToSpec(data string) QRSpec {
	return QRSpec{
		Data:            data,
		Format:          s.Format,
		Size:            s.Size,
		FgColor:         s.FgColor,
		BgColor:         s.BgColor,
		ErrorCorrection: s.ErrorCorrection,
		Style:           s.Style,
		Logo:            s.Logo,
		LogoSize:        s.LogoSize,
	}
}

// WiFiTemplateRequest is the body of POST /api/v1/qr/template/wifi.
type WiFiTemplateRequest struct {
	StyleOptions
	Encryption string `json:"encryption"`
	SSID       string `json:"ssid"`
	Password   string `json:"password"`
	Hidden     bool   `json:"hidden"`
}

// VCardTemplateRequest is the body of POST /api/v1/qr/template/vcard.
type VCardTemplateRequest struct {
	StyleOptions
	FN    string `json:"fn"`
	Email string `json:"email,omitempty"`
	Tel   string `json:"tel,omitempty"`
	Org   string `json:"org,omitempty"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// URLTemplateRequest is the body of POST /api/v1/qr/template/url.
type URLTemplateRequest struct {
	StyleOptions
	URL         string `json:"url"`
	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
}

// TrackedCreateRequest is the body of POST /api/v1/qr/tracked.
type TrackedCreateRequest struct {
	StyleOptions
	TargetURL string     `json:"target_url"`
	ShortCode string     `json:"short_code,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ToSpec builds the QRSpec used to render the tracked QR's own short URL.
func (r TrackedCreateRequest) ToSpec(shortURL string) QRSpec {
	return r.StyleOptions.ToSpec(shortURL)
}

// TrackedCreateResponse is the body returned by a successful tracked-create.
type TrackedCreateResponse struct {
	GenerateResponse
	ID          string     `json:"id"`
	ManageToken string     `json:"manage_token"`
	ShortURL    string     `json:"short_url"`
	ShortCode   string     `json:"short_code"`
	TargetURL   string     `json:"target_url"`
	ScanCount   int64      `json:"scan_count"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// ScanEventView is the JSON projection of a ScanEvent within stats responses.
type ScanEventView struct {
	ScannedAt time.Time `json:"scanned_at"`
	UserAgent string    `json:"user_agent,omitempty"`
	Referrer  string    `json:"referrer,omitempty"`
	IP        string    `json:"ip,omitempty"`
}

// TrackedStatsResponse is the body of GET /api/v1/qr/tracked/{id}/stats.
type TrackedStatsResponse struct {
	ID          string          `json:"id"`
	ShortCode   string          `json:"short_code"`
	TargetURL   string          `json:"target_url"`
	ScanCount   int64           `json:"scan_count"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
	RecentScans []ScanEventView `json:"recent_scans"`
}

// ApplyDefaults fills zero-valued fields with the generator's defaults.
// Called by the validator after any required-field checks.
func (s *QRSpec) ApplyDefaults() {
	if s.Format == "" {
		s.Format = DefaultFormat
	}
	if s.Size == 0 {
		s.Size = DefaultSize
	}
	if s.ErrorCorrection == "" {
		s.ErrorCorrection = DefaultErrorCorrection
	}
	if s.Style == "" {
		s.Style = DefaultStyle
	}
	if s.LogoSize == 0 {
		s.LogoSize = DefaultLogoSize
	}
	if s.Logo != "" {
		// Logo presence silently upgrades EC to H to preserve scannability.
		s.ErrorCorrection = "H"
	}
}
