package qrcode

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF emits a single-page PDF whose page is size x size points,
// containing the QR as filled paths using the same per-style geometry as
// the vector renderer. Logo overlay is intentionally unsupported in PDF;
// the signature has no logo parameter, so a caller cannot request one.
func RenderPDF(m Matrix, size int, fg, bg color.RGBA, style string) ([]byte, error) {
	n := m.Size
	cells := float64(int(n) + 2*quietZoneModules)
	moduleSize := float64(size) / cells

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(size), Ht: float64(size)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	pdf.Rect(0, 0, float64(size), float64(size), "F")

	pdf.SetFillColor(int(fg.R), int(fg.G), int(fg.B))
	pdf.SetDrawColor(int(fg.R), int(fg.G), int(fg.B))

	for my := int32(0); my < n; my++ {
		for mx := int32(0); mx < n; mx++ {
			if !m.At(mx, my) {
				continue
			}
			gx := float64(mx) + quietZoneModules
			gy := float64(my) + quietZoneModules
			x0, y0 := gx*moduleSize, gy*moduleSize

			switch style {
			case "dots":
				r := moduleSize / 2
				pdf.Circle(x0+r, y0+r, r, "F")
			case "rounded":
				drawRoundedModulePDF(pdf, m, mx, my, x0, y0, moduleSize)
			default:
				pdf.Rect(x0, y0, moduleSize, moduleSize, "F")
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawRoundedModulePDF(pdf *gofpdf.Fpdf, m Matrix, mx, my int32, x0, y0, moduleSize float64) {
	tl, tr, br, bl := RoundedCorners(m, mx, my)
	r := moduleSize / 2

	rTL, rTR, rBR, rBL := 0.0, 0.0, 0.0, 0.0
	if tl {
		rTL = r
	}
	if tr {
		rTR = r
	}
	if br {
		rBR = r
	}
	if bl {
		rBL = r
	}
	pdf.RoundedRectExt(x0, y0, moduleSize, moduleSize, rTL, rTR, rBR, rBL, "F")
}
