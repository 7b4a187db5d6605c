// Package display provides the drawing surfaces the eye renderer draws
// on: a binary-color Surface interface, an in-memory framebuffer with
// image export, and an adapter that pushes frames to tinygo driver
// displays.
package display

// Color is a binary pixel value; the face targets monochrome panels.
type Color uint8

const (
	Off Color = iota
	On
)

// Surface is the drawing target for the eye renderer. Implementations
// buffer draws and present them on Flush, so a frame appears atomically.
type Surface interface {
	// Size returns the drawable area in pixels.
	Size() (w, h int)

	// Clear resets every pixel to Off.
	Clear()

	// FillRoundedRect fills an axis-aligned rectangle with rounded
	// corners. x, y is the top-left corner; a radius of 0 means sharp
	// corners. Out-of-bounds pixels are discarded.
	FillRoundedRect(x, y, w, h, radius int, c Color)

	// FillCircle fills a circle centered at cx, cy. Out-of-bounds
	// pixels are discarded.
	FillCircle(cx, cy, r int, c Color)

	// Flush presents the buffered frame on the underlying device.
	Flush() error
}
