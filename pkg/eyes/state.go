package eyes

import "math"

// EyeState is the complete renderable description of a single eye at one
// instant. It is a plain value; the engine and renderer pass copies around
// so no aliasing can leak between ticks.
type EyeState struct {
	CenterX int // eye center, display coordinates
	CenterY int
	Width   int // shape size before lid closure is applied
	Height  int

	PupilDX int // pupil displacement from the eye center
	PupilDY int

	Lid       float64 // lid closure, 0 = fully open .. 1 = fully closed
	Intensity float64 // focus/alertness, 0 = relaxed .. 1 = locked on
}

// EyePair holds the left and right eye states that together make a face.
type EyePair struct {
	Left  EyeState
	Right EyeState
}

// LerpState linearly interpolates every field of two eye states. Integer
// fields round to the nearest value so the midpoint of an even span is
// exact; real fields interpolate continuously. t is clamped to [0, 1].
func LerpState(a, b EyeState, t float64) EyeState {
	t = clamp(t, 0, 1)
	return EyeState{
		CenterX:   lerpInt(a.CenterX, b.CenterX, t),
		CenterY:   lerpInt(a.CenterY, b.CenterY, t),
		Width:     lerpInt(a.Width, b.Width, t),
		Height:    lerpInt(a.Height, b.Height, t),
		PupilDX:   lerpInt(a.PupilDX, b.PupilDX, t),
		PupilDY:   lerpInt(a.PupilDY, b.PupilDY, t),
		Lid:       lerp(a.Lid, b.Lid, t),
		Intensity: lerp(a.Intensity, b.Intensity, t),
	}
}

// LerpPair interpolates both eyes of two pairs.
func LerpPair(a, b EyePair, t float64) EyePair {
	return EyePair{
		Left:  LerpState(a.Left, b.Left, t),
		Right: LerpState(a.Right, b.Right, t),
	}
}

// lerp performs linear interpolation between two values.
func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// lerpInt interpolates integer fields, rounding to nearest.
func lerpInt(a, b int, t float64) int {
	return int(math.Round(lerp(float64(a), float64(b), t)))
}

// clamp restricts a value to a range.
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
