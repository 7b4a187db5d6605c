package display

import (
	"image"
	"image/png"
	"io"
)

// Framebuffer is an in-memory Surface, one byte per pixel. It backs the
// desktop simulator, the terminal preview, the dashboard's PNG stream and
// the renderer tests; on hardware the same frame is blitted out through a
// DisplayerSurface.
type Framebuffer struct {
	w, h int
	pix  []Color
}

var _ Surface = (*Framebuffer)(nil)

// NewFramebuffer creates a cleared w x h framebuffer. Dimensions are
// floored at 1x1.
func NewFramebuffer(w, h int) *Framebuffer {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Framebuffer{w: w, h: h, pix: make([]Color, w*h)}
}

// Size returns the framebuffer dimensions.
func (f *Framebuffer) Size() (int, int) {
	return f.w, f.h
}

// At returns the pixel at x, y, or Off outside the bounds.
func (f *Framebuffer) At(x, y int) Color {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return Off
	}
	return f.pix[y*f.w+x]
}

// SetPixel writes one pixel, discarding out-of-bounds coordinates.
func (f *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.pix[y*f.w+x] = c
}

// Clear resets every pixel to Off.
func (f *Framebuffer) Clear() {
	for i := range f.pix {
		f.pix[i] = Off
	}
}

// FillRoundedRect fills a rounded rectangle clipped to the surface. The
// radius is capped at half the shorter side.
func (f *Framebuffer) FillRoundedRect(x, y, w, h, radius int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	if radius < 0 {
		radius = 0
	}
	if maxR := min(w, h) / 2; radius > maxR {
		radius = maxR
	}
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			if insideRoundedRect(px-x, py-y, w, h, radius) {
				f.SetPixel(px, py, c)
			}
		}
	}
}

// insideRoundedRect tests a point in shape-local coordinates against the
// cross of core rectangles plus the four corner quarter-disks.
func insideRoundedRect(px, py, w, h, r int) bool {
	if r <= 0 {
		return true
	}
	if px >= r && px < w-r {
		return true
	}
	if py >= r && py < h-r {
		return true
	}
	cx := r
	if px >= w-r {
		cx = w - r - 1
	}
	cy := r
	if py >= h-r {
		cy = h - r - 1
	}
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= r*r
}

// FillCircle fills a circle clipped to the surface. A radius of 0 paints
// the single center pixel.
func (f *Framebuffer) FillCircle(cx, cy, r int, c Color) {
	if r < 0 {
		return
	}
	for py := cy - r; py <= cy+r; py++ {
		for px := cx - r; px <= cx+r; px++ {
			dx, dy := px-cx, py-cy
			if dx*dx+dy*dy <= r*r {
				f.SetPixel(px, py, c)
			}
		}
	}
}

// Flush is a no-op: the framebuffer is its own backing store. Consumers
// that snapshot after the control loop's flush always see a complete
// frame.
func (f *Framebuffer) Flush() error {
	return nil
}

// Snapshot copies the frame into a grayscale image, Off as black and On
// as white.
func (f *Framebuffer) Snapshot() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.w, f.h))
	for i, c := range f.pix {
		if c == On {
			img.Pix[i] = 0xff
		}
	}
	return img
}

// EncodePNG writes the current frame as a PNG.
func (f *Framebuffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, f.Snapshot())
}
