package qrcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
)

// RenderSVG emits an SVG document sized size x size user units, using
// <rect>/<circle>/<path> elements per style. logoBytes, when non-nil, is
// embedded as a data-URI <image> with a white <rect> backing.
func RenderSVG(m Matrix, size int, fg, bg color.RGBA, style string, logoBytes []byte, logoSizePercent int) ([]byte, string, error) {
	n := m.Size
	cells := float64(int(n) + 2*quietZoneModules)
	moduleSize := float64(size) / cells

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`, size, size, size, size)
	fmt.Fprintf(&buf, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, size, size, hexColor(bg))

	for my := int32(0); my < n; my++ {
		for mx := int32(0); mx < n; mx++ {
			if !m.At(mx, my) {
				continue
			}
			gx := float64(mx) + quietZoneModules
			gy := float64(my) + quietZoneModules
			x0, y0 := gx*moduleSize, gy*moduleSize
			x1, y1 := x0+moduleSize, y0+moduleSize

			switch style {
			case "dots":
				cx, cy, r := (x0+x1)/2, (y0+y1)/2, moduleSize/2
				fmt.Fprintf(&buf, `<circle cx="%.3f" cy="%.3f" r="%.3f" fill="%s"/>`, cx, cy, r, hexColor(fg))
			case "rounded":
				writeRoundedModulePath(&buf, m, mx, my, x0, y0, x1, y1, moduleSize, fg)
			default:
				fmt.Fprintf(&buf, `<rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="%s"/>`, x0, y0, moduleSize, moduleSize, hexColor(fg))
			}
		}
	}

	if len(logoBytes) > 0 {
		writeLogoElement(&buf, logoBytes, size, logoSizePercent, sniffMimeType(logoBytes))
	}

	buf.WriteString(`</svg>`)

	doc := buf.Bytes()
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(doc)
	return doc, dataURI, nil
}

func writeRoundedModulePath(buf *bytes.Buffer, m Matrix, mx, my int32, x0, y0, x1, y1, moduleSize float64, fg color.RGBA) {
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

	buf.WriteString(`<path d="`)
	fmt.Fprintf(buf, "M%.3f,%.3f ", x0+rTL, y0)
	fmt.Fprintf(buf, "L%.3f,%.3f ", x1-rTR, y0)
	if rTR > 0 {
		fmt.Fprintf(buf, "Q%.3f,%.3f %.3f,%.3f ", x1, y0, x1, y0+rTR)
	} else {
		fmt.Fprintf(buf, "L%.3f,%.3f ", x1, y0)
	}
	fmt.Fprintf(buf, "L%.3f,%.3f ", x1, y1-rBR)
	if rBR > 0 {
		fmt.Fprintf(buf, "Q%.3f,%.3f %.3f,%.3f ", x1, y1, x1-rBR, y1)
	} else {
		fmt.Fprintf(buf, "L%.3f,%.3f ", x1, y1)
	}
	fmt.Fprintf(buf, "L%.3f,%.3f ", x0+rBL, y1)
	if rBL > 0 {
		fmt.Fprintf(buf, "Q%.3f,%.3f %.3f,%.3f ", x0, y1, x0, y1-rBL)
	} else {
		fmt.Fprintf(buf, "L%.3f,%.3f ", x0, y1)
	}
	fmt.Fprintf(buf, "L%.3f,%.3f ", x0, y0+rTL)
	if rTL > 0 {
		fmt.Fprintf(buf, "Q%.3f,%.3f %.3f,%.3f ", x0, y0, x0+rTL, y0)
	} else {
		fmt.Fprintf(buf, "L%.3f,%.3f ", x0, y0)
	}
	buf.WriteString(`Z" fill="`)
	buf.WriteString(hexColor(fg))
	buf.WriteString(`"/>`)
}

func writeLogoElement(buf *bytes.Buffer, logoBytes []byte, canvasSize, logoSizePercent int, mimeType string) {
	if mimeType == "" {
		mimeType = "image/png"
	}
	target := canvasSize * logoSizePercent / 100
	pad := target/10 + 4

	x0, y0 := (canvasSize-target)/2-pad, (canvasSize-target)/2-pad
	side := target + 2*pad

	fmt.Fprintf(buf, `<rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="#ffffff"/>`, x0, y0, side, side, pad)
	fmt.Fprintf(buf, `<image x="%d" y="%d" width="%d" height="%d" href="data:%s;base64,%s"/>`,
		(canvasSize-target)/2, (canvasSize-target)/2, target, target, mimeType, base64.StdEncoding.EncodeToString(logoBytes))
}

func sniffMimeType(b []byte) string {
	_, format, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return "image/png"
	}
	return "image/" + format
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
