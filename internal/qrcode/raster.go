package qrcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

const quietZoneModules = 4

// RenderPNG emits a PNG sized exactly size x size pixels for the given
// matrix and style. logoBytes, when non-nil, is composited centered at
// logoSizePercent of the canvas's longer side.
func RenderPNG(m Matrix, size int, fg, bg color.RGBA, style string, logoBytes []byte, logoSizePercent int) ([]byte, string, error) {
	n := m.Size
	modulePx := size / (int(n) + 2*quietZoneModules)
	if modulePx < 1 {
		return nil, "", fmt.Errorf("size_too_small: size %d too small for a %d-module symbol", size, n)
	}

	gridPx := modulePx * (int(n) + 2*quietZoneModules)
	offset := (size - gridPx) / 2

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	for py := 0; py < size; py++ {
		gy := py - offset
		if gy < 0 || gy >= gridPx {
			continue
		}
		my := int32(gy/modulePx) - quietZoneModules
		for px := 0; px < size; px++ {
			gx := px - offset
			if gx < 0 || gx >= gridPx {
				continue
			}
			mx := int32(gx/modulePx) - quietZoneModules
			if mx < 0 || my < 0 || mx >= n || my >= n || !m.At(mx, my) {
				continue
			}

			localX := gx % modulePx
			localY := gy % modulePx
			tl, tr, br, bl := RoundedCorners(m, mx, my)
			if shapeContains(style, tl, tr, br, bl, modulePx, localX, localY) {
				img.Set(px, py, fg)
			}
		}
	}

	if len(logoBytes) > 0 {
		if err := overlayLogo(img, logoBytes, size, logoSizePercent); err != nil {
			return nil, "", err
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("encode png: %w", err)
	}

	dataURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	return buf.Bytes(), dataURI, nil
}

// shapeContains reports whether the pixel at (localX, localY) within a
// moduleSize x moduleSize module square belongs to the dark module's shape.
func shapeContains(style string, tl, tr, br, bl bool, moduleSize, localX, localY int) bool {
	r := float64(moduleSize) / 2
	cx := float64(localX) + 0.5
	cy := float64(localY) + 0.5

	switch style {
	case "dots":
		dx, dy := cx-r, cy-r
		return dx*dx+dy*dy <= r*r
	case "rounded":
		ri := int(r)
		if tl && localX < ri && localY < ri {
			dx, dy := cx-r, cy-r
			if dx*dx+dy*dy > r*r {
				return false
			}
		}
		if tr && localX >= moduleSize-ri && localY < ri {
			dx, dy := cx-(float64(moduleSize)-r), cy-r
			if dx*dx+dy*dy > r*r {
				return false
			}
		}
		if br && localX >= moduleSize-ri && localY >= moduleSize-ri {
			dx, dy := cx-(float64(moduleSize)-r), cy-(float64(moduleSize)-r)
			if dx*dx+dy*dy > r*r {
				return false
			}
		}
		if bl && localX < ri && localY >= moduleSize-ri {
			dx, dy := cx-r, cy-(float64(moduleSize)-r)
			if dx*dx+dy*dy > r*r {
				return false
			}
		}
		return true
	default: // square
		return true
	}
}
