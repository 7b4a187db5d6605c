package display

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Monochrome panel palette: lit pixels white, unlit black, matching the
// ssd1306-class OLEDs this face usually ships on.
var (
	onRGBA  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	offRGBA = color.RGBA{A: 0xff}
)

// DisplayerSurface adapts any tinygo driver display into a Surface, so
// the renderer output that feeds the framebuffer previews lands
// unchanged on real panels. Primitives rasterize into an internal
// framebuffer; Flush blits the frame to the device and presents it.
type DisplayerSurface struct {
	dev drivers.Displayer
	fb  *Framebuffer
}

var _ Surface = (*DisplayerSurface)(nil)

// NewDisplayerSurface wraps a driver display, sized from the device.
func NewDisplayerSurface(dev drivers.Displayer) *DisplayerSurface {
	w, h := dev.Size()
	return &DisplayerSurface{
		dev: dev,
		fb:  NewFramebuffer(int(w), int(h)),
	}
}

// Size returns the device dimensions.
func (d *DisplayerSurface) Size() (int, int) {
	return d.fb.Size()
}

// Clear resets the staged frame.
func (d *DisplayerSurface) Clear() {
	d.fb.Clear()
}

// FillRoundedRect stages a rounded rectangle.
func (d *DisplayerSurface) FillRoundedRect(x, y, w, h, radius int, c Color) {
	d.fb.FillRoundedRect(x, y, w, h, radius, c)
}

// FillCircle stages a circle.
func (d *DisplayerSurface) FillCircle(cx, cy, r int, c Color) {
	d.fb.FillCircle(cx, cy, r, c)
}

// Flush blits the staged frame to the device and presents it.
func (d *DisplayerSurface) Flush() error {
	w, h := d.fb.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := offRGBA
			if d.fb.At(x, y) == On {
				c = onRGBA
			}
			d.dev.SetPixel(int16(x), int16(y), c)
		}
	}
	return d.dev.Display()
}
