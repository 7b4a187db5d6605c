package eyes

import (
	"math"

	"github.com/teslashibe/go-roboeyes/pkg/display"
)

const (
	// pupilTravel bounds how far the pupil center may wander from the
	// eye center, as a fraction of the smaller half-dimension. Keeps the
	// pupil (and its glint) inside the shape at full glance.
	pupilTravel = 0.45

	// minSliver keeps a fully closed eye visible as a thin line instead
	// of vanishing from the panel.
	minSliver = 2
)

// Renderer turns an eye state into drawing-surface primitives: a rounded
// lid-scaled shape, an intensity-scaled pupil, and a glint.
//
// A Renderer draws exactly one eye per call and never clears or flushes.
// The control loop owns clear-once/flush-once per frame, so both eyes
// always land in the same frame.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// DrawEye renders one eye onto the surface. Lid and intensity are clamped
// to [0, 1] here, so transient out-of-range values can never distort the
// drawn geometry.
func (r *Renderer) DrawEye(s display.Surface, e EyeState) {
	if e.Width <= 0 || e.Height <= 0 {
		return
	}
	lid := clamp(e.Lid, 0, 1)
	intensity := clamp(e.Intensity, 0, 1)

	// Lid closure squeezes the shape toward its vertical center.
	h := int(math.Round(float64(e.Height) * (1 - lid)))
	if h < minSliver {
		h = minSliver
	}
	w := e.Width
	x := e.CenterX - w/2
	y := e.CenterY - h/2
	s.FillRoundedRect(x, y, w, h, min(w, h)/4, display.On)

	// An almost-closed eye is just the sliver; no pupil detail.
	if h <= minSliver {
		return
	}

	dx, dy := clampPupil(e.PupilDX, e.PupilDY, e.Width, e.Height)
	pr := pupilRadius(e.Width, e.Height, intensity)
	px := e.CenterX + dx
	py := e.CenterY + dy
	s.FillCircle(px, py, pr, display.Off)

	// Glint up-left of the pupil center.
	gr := pr / 3
	if gr < 1 {
		gr = 1
	}
	s.FillCircle(px-pr/2, py-pr/2, gr, display.On)
}

// pupilReach returns the pupil travel bound for an eye size.
func pupilReach(w, h int) float64 {
	half := float64(min(w, h)) / 2
	return pupilTravel * half
}

// clampPupil bounds the pupil offset by vector magnitude, so diagonal
// glances cannot escape the shape any further than axis-aligned ones.
// In-range offsets pass through untouched; out-of-range offsets are
// scaled back and truncated toward zero, which cannot re-exceed the
// bound the way rounding outward could.
func clampPupil(dx, dy, w, h int) (int, int) {
	reach := pupilReach(w, h)
	fx, fy := float64(dx), float64(dy)
	mag := math.Hypot(fx, fy)
	if mag <= reach {
		return dx, dy
	}
	scale := reach / mag
	return int(fx * scale), int(fy * scale)
}

// pupilRadius scales the pupil down as intensity rises: a relaxed eye has
// a big soft pupil, a locked-on eye a tight one.
func pupilRadius(w, h int, intensity float64) int {
	base := 0.28 * float64(min(w, h))
	pr := int(math.Round(base * (1 - 0.6*intensity)))
	if pr < 1 {
		pr = 1
	}
	return pr
}
