package services

import (
	"context"
	"encoding/base64"
	"image/color"
	"net/url"
	"strings"

	"qr-service/internal/core/domain"
	"qr-service/internal/core/ports"
	"qr-service/internal/qrcode"
)

var (
	defaultFg = color.RGBA{0, 0, 0, 255}
	defaultBg = color.RGBA{255, 255, 255, 255}
)

type qrService struct{}

// NewQRService builds the stateless generate/decode/batch/share-URL service.
// It holds no dependencies: every operation is a pure function of its input.
func NewQRService() ports.QRService {
	return &qrService{}
}

func (s *qrService) Generate(ctx context.Context, spec domain.QRSpec) (*domain.GenerateResponse, error) {
	return render(spec)
}

func (s *qrService) Decode(ctx context.Context, imageBytes []byte) (string, error) {
	return qrcode.Decode(imageBytes)
}

func (s *qrService) Batch(ctx context.Context, req domain.BatchRequest) (*domain.BatchResponse, error) {
	if len(req.Items) == 0 || len(req.Items) > domain.MaxBatchItems {
		return nil, domain.NewValidationError(domain.KindPayloadTooLarge, "batch must contain between 1 and 50 items")
	}

	resp := &domain.BatchResponse{Items: make([]domain.GenerateResponse, len(req.Items))}
	for i, item := range req.Items {
		if item.Format == "" {
			item.Format = req.Format
		}
		r, err := render(item)
		if err != nil {
			return nil, err
		}
		resp.Items[i] = *r
	}
	return resp, nil
}

func (s *qrService) RenderShareURL(ctx context.Context, query url.Values) ([]byte, string, error) {
	spec, err := qrcode.DecodeShareURL(query)
	if err != nil {
		return nil, "", err
	}

	resp, err := render(spec)
	if err != nil {
		return nil, "", err
	}

	imageBytes, err := dataURIPayload(resp.ImageBase64)
	if err != nil {
		return nil, "", domain.NewInternalError(err.Error())
	}
	return imageBytes, mimeTypeForFormat(resp.Format), nil
}

// render validates spec, builds the QR matrix, renders it in the requested
// format, and attaches the share URL. This is the single code path shared by
// Generate, Batch, and RenderShareURL.
func render(spec domain.QRSpec) (*domain.GenerateResponse, error) {
	validated, logoBytes, err := qrcode.ValidateSpec(spec)
	if err != nil {
		return nil, err
	}

	matrix, err := qrcode.Build(validated.Data, validated.ErrorCorrection)
	if err != nil {
		return nil, err
	}

	fg, bg, err := resolveColors(validated)
	if err != nil {
		return nil, err
	}

	var dataURI string
	switch validated.Format {
	case "svg":
		_, dataURI, err = qrcode.RenderSVG(matrix, validated.Size, fg, bg, validated.Style, logoBytes, validated.LogoSize)
	case "pdf":
		var pdfBytes []byte
		pdfBytes, err = qrcode.RenderPDF(matrix, validated.Size, fg, bg, validated.Style)
		if err == nil {
			dataURI = "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdfBytes)
		}
	default:
		_, dataURI, err = qrcode.RenderPNG(matrix, validated.Size, fg, bg, validated.Style, logoBytes, validated.LogoSize)
	}
	if err != nil {
		return nil, domain.NewValidationError(domain.KindBadSize, err.Error())
	}

	return &domain.GenerateResponse{
		ImageBase64: dataURI,
		ShareURL:    qrcode.EncodeShareURL(validated),
		Format:      validated.Format,
		Size:        validated.Size,
		Data:        validated.Data,
	}, nil
}

func resolveColors(spec domain.QRSpec) (fg, bg color.RGBA, err error) {
	fg, bg = defaultFg, defaultBg
	if spec.FgColor != "" {
		if fg, err = qrcode.ParseColor(spec.FgColor); err != nil {
			return fg, bg, domain.NewValidationError(domain.KindBadColor, err.Error())
		}
	}
	if spec.BgColor != "" {
		if bg, err = qrcode.ParseColor(spec.BgColor); err != nil {
			return fg, bg, domain.NewValidationError(domain.KindBadColor, err.Error())
		}
	}
	return fg, bg, nil
}

// dataURIPayload strips the `data:<mime>;base64,` prefix a renderer attaches
// to its ImageBase64 field, returning the raw decoded bytes.
func dataURIPayload(dataURI string) ([]byte, error) {
	idx := strings.Index(dataURI, ",")
	if idx < 0 {
		return base64.StdEncoding.DecodeString(dataURI)
	}
	return base64.StdEncoding.DecodeString(dataURI[idx+1:])
}

func mimeTypeForFormat(format string) string {
	switch format {
	case "svg":
		return "image/svg+xml"
	case "pdf":
		return "application/pdf"
	default:
		return "image/png"
	}
}
