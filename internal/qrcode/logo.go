package qrcode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// overlayLogo scales logoBytes preserving aspect ratio so its longer side
// equals logoSizePercent% of canvasSize, draws a white rounded-rect backing
// slightly larger than its bounding box to carve a quiet zone, and
// composites it centered onto img using straight alpha.
func overlayLogo(img *image.RGBA, logoBytes []byte, canvasSize, logoSizePercent int) error {
	src, _, err := image.Decode(bytes.NewReader(logoBytes))
	if err != nil {
		return fmt.Errorf("decode logo: %w", err)
	}

	target := canvasSize * logoSizePercent / 100
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return fmt.Errorf("logo has zero dimension")
	}

	var scaledW, scaledH int
	if w >= h {
		scaledW = target
		scaledH = target * h / w
	} else {
		scaledH = target
		scaledW = target * w / h
	}
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, scaledW, scaledH))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, b, xdraw.Over, nil)

	ox := (canvasSize - scaledW) / 2
	oy := (canvasSize - scaledH) / 2

	pad := scaledW / 10
	if hp := scaledH / 10; hp > pad {
		pad = hp
	}
	if pad < 4 {
		pad = 4
	}

	backingRadius := float64(pad)
	drawRoundedRect(img, ox-pad, oy-pad, ox+scaledW+pad, oy+scaledH+pad, backingRadius, color.RGBA{255, 255, 255, 255})

	draw.Draw(img, image.Rect(ox, oy, ox+scaledW, oy+scaledH), scaled, image.Point{}, draw.Over)
	return nil
}

// drawRoundedRect fills the rectangle [x0,y0)-[x1,y1) in img with col,
// rounding all four corners to radius r.
func drawRoundedRect(img *image.RGBA, x0, y0, x1, y1 int, r float64, col color.RGBA) {
	bounds := img.Bounds()
	if x0 < bounds.Min.X {
		x0 = bounds.Min.X
	}
	if y0 < bounds.Min.Y {
		y0 = bounds.Min.Y
	}
	if x1 > bounds.Max.X {
		x1 = bounds.Max.X
	}
	if y1 > bounds.Max.Y {
		y1 = bounds.Max.Y
	}

	w := float64(x1 - x0)
	h := float64(y1 - y0)
	if r*2 > w {
		r = w / 2
	}
	if r*2 > h {
		r = h / 2
	}

	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			lx := float64(px-x0) + 0.5
			ly := float64(py-y0) + 0.5

			switch {
			case lx < r && ly < r:
				if dx, dy := lx-r, ly-r; dx*dx+dy*dy > r*r {
					continue
				}
			case lx > w-r && ly < r:
				if dx, dy := lx-(w-r), ly-r; dx*dx+dy*dy > r*r {
					continue
				}
			case lx > w-r && ly > h-r:
				if dx, dy := lx-(w-r), ly-(h-r); dx*dx+dy*dy > r*r {
					continue
				}
			case lx < r && ly > h-r:
				if dx, dy := lx-r, ly-(h-r); dx*dx+dy*dy > r*r {
					continue
				}
			}
			img.Set(px, py, col)
		}
	}
}
