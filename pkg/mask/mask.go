// Package mask implements the redaction mask surface. The user paints
// brush strokes over regions of the photo; the mask records their coverage
// as an alpha stencil that the redact stage later composites a blur layer
// through.
package mask

import (
	"image"
)

// brushAlpha is the per-stamp coverage, 95% of full opacity. Overlapping
// strokes accumulate with source-over blending and saturate.
const brushAlpha = 0xF2

// Mask is an alpha stencil with the exact dimensions of the photo it
// belongs to. The zero coverage state is tracked with a flag so emptiness
// checks stay constant-time; painting always touches at least one pixel
// because the stamp center is clamped into bounds, which keeps the flag
// equivalent to scanning the buffer.
type Mask struct {
	alpha *image.Alpha
	dirty bool
}

// New creates an empty mask covering a width x height surface.
func New(width, height int) *Mask {
	return &Mask{
		alpha: image.NewAlpha(image.Rect(0, 0, width, height)),
	}
}

// Bounds returns the mask dimensions.
func (m *Mask) Bounds() image.Rectangle {
	return m.alpha.Rect
}

// Alpha exposes the underlying stencil for compositing and debug output.
func (m *Mask) Alpha() *image.Alpha {
	return m.alpha
}

// Paint stamps a hard-edged disc of coverage centered at (x, y). The
// center is clamped into bounds, so strokes dragged past the photo edge
// still paint the nearest edge pixels. A non-positive radius paints
// nothing.
func (m *Mask) Paint(x, y, radius int) {
	if radius <= 0 {
		return
	}
	b := m.alpha.Rect
	if b.Empty() {
		return
	}
	x = clampInt(x, b.Min.X, b.Max.X-1)
	y = clampInt(y, b.Min.Y, b.Max.Y-1)

	rr := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		py := y + dy
		if py < b.Min.Y || py >= b.Max.Y {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			px := x + dx
			if px < b.Min.X || px >= b.Max.X {
				continue
			}
			if dx*dx+dy*dy > rr {
				continue
			}
			// Source-over: out = src + dst * (1 - src).
			i := m.alpha.PixOffset(px, py)
			a := int(brushAlpha) + int(m.alpha.Pix[i])*(255-brushAlpha)/255
			if a > 255 {
				a = 255
			}
			m.alpha.Pix[i] = uint8(a)
			m.dirty = true
		}
	}
}

// Clear zeroes all coverage.
func (m *Mask) Clear() {
	for i := range m.alpha.Pix {
		m.alpha.Pix[i] = 0
	}
	m.dirty = false
}

// IsEmpty reports whether nothing has been painted since creation or the
// last Clear.
func (m *Mask) IsEmpty() bool {
	return !m.dirty
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
