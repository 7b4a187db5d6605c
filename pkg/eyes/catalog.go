package eyes

import "time"

// Transition pacing. Fast covers blinks, medium covers ordinary requests
// (commands, demo steps, the wakeup settle), slow covers the drowsy
// family. A zero or negative requested duration falls back to the
// catalog's suggestion for the expression.
const (
	DurationFast   = 150 * time.Millisecond
	DurationMedium = 200 * time.Millisecond
	DurationSlow   = 500 * time.Millisecond

	// minDuration floors coerced durations so elapsed/duration can
	// never divide by zero.
	minDuration = time.Millisecond
)

// Geometry describes the display and the eye dimensions the catalog
// derives its targets from. All values are pixels.
type Geometry struct {
	DisplayWidth  int
	DisplayHeight int
	EyeWidth      int
	EyeHeight     int
	EyeSpacing    int // gap between the two eye shapes
}

// DefaultGeometry returns the layout for the stock 128x64 panel:
// two 36x36 eyes, 10px apart, centered as a group.
func DefaultGeometry() Geometry {
	return Geometry{
		DisplayWidth:  128,
		DisplayHeight: 64,
		EyeWidth:      36,
		EyeHeight:     36,
		EyeSpacing:    10,
	}
}

// Catalog maps every expression to a target eye pair and a suggested
// transition duration. The tables are arrays indexed by Expression, so
// the mapping is total over the closed enum by construction.
//
// The per-expression offsets are cosmetic tuning. They are derived from
// the geometry anchors rather than hardcoded pixels so any configured eye
// size keeps its proportions, and every pupil target stays inside the
// travel bound the renderer enforces.
type Catalog struct {
	geom      Geometry
	pairs     [ExpressionCount]EyePair
	durations [ExpressionCount]time.Duration
}

// NewCatalog precomputes the target table for the given geometry.
func NewCatalog(geom Geometry) *Catalog {
	c := &Catalog{geom: geom}
	c.build()
	return c
}

// Geometry returns the layout the catalog was built from.
func (c *Catalog) Geometry() Geometry {
	return c.geom
}

// Pair returns the target eye pair for an expression.
func (c *Catalog) Pair(e Expression) EyePair {
	if !e.Valid() {
		e = Idle
	}
	return c.pairs[e]
}

// SuggestedDuration returns the transition duration an expression uses
// when the caller does not request one.
func (c *Catalog) SuggestedDuration(e Expression) time.Duration {
	if !e.Valid() {
		return DurationMedium
	}
	return c.durations[e]
}

// BlinkPair derives a blink target from the current target pair: same
// geometry, lids shut. Eyes close from wherever they are headed, not from
// some canonical blink pose.
func BlinkPair(current EyePair) EyePair {
	current.Left.Lid = 1
	current.Right.Lid = 1
	return current
}

func (c *Catalog) build() {
	g := c.geom

	// Anchors: the eye group is centered, mirror-symmetric about the
	// display's vertical centerline.
	groupW := 2*g.EyeWidth + g.EyeSpacing
	leftCX := (g.DisplayWidth-groupW)/2 + g.EyeWidth/2
	rightCX := leftCX + g.EyeWidth + g.EyeSpacing
	cy := g.DisplayHeight / 2

	// Pupil travel bound, shared with the renderer's clamp.
	reach := int(pupilReach(g.EyeWidth, g.EyeHeight))
	lift := g.EyeHeight / 12  // subtle vertical shift
	droop := g.EyeHeight / 9  // heavier vertical shift
	grow := g.EyeHeight / 5   // widened-eye delta
	shrink := g.EyeHeight / 6 // narrowed-eye delta

	eye := func(cx int) EyeState {
		return EyeState{
			CenterX:   cx,
			CenterY:   cy,
			Width:     g.EyeWidth,
			Height:    g.EyeHeight,
			Intensity: 0.25,
		}
	}

	set := func(e Expression, mut func(l, r *EyeState), d time.Duration) {
		l, r := eye(leftCX), eye(rightCX)
		if mut != nil {
			mut(&l, &r)
		}
		c.pairs[e] = EyePair{Left: l, Right: r}
		c.durations[e] = d
	}

	both := func(f func(*EyeState)) func(l, r *EyeState) {
		return func(l, r *EyeState) {
			f(l)
			f(r)
		}
	}

	set(Idle, nil, DurationMedium)

	set(Happy, both(func(s *EyeState) {
		s.CenterY -= lift
		s.Lid = 0.35 // squint
		s.Intensity = 0.15
	}), DurationMedium)

	set(Sad, both(func(s *EyeState) {
		s.CenterY += droop
		s.PupilDY = reach / 2
		s.Lid = 0.45
		s.Intensity = 0.35
	}), DurationMedium)

	set(Angry, func(l, r *EyeState) {
		for _, s := range []*EyeState{l, r} {
			s.Height -= droop
			s.Lid = 0.5
			s.Intensity = 0.8
		}
		l.PupilDX = reach / 2 // glare inward
		r.PupilDX = -reach / 2
	}, DurationMedium)

	set(Surprised, both(func(s *EyeState) {
		s.Width += grow
		s.Height += grow
		s.Lid = 0
		s.Intensity = 0.85 // pinpoint pupils
	}), DurationMedium)

	// Static entry only; live blinks are derived via BlinkPair so they
	// close from the current target.
	set(Blink, both(func(s *EyeState) {
		s.Lid = 1
	}), DurationFast)

	set(LookLeft, both(func(s *EyeState) {
		s.PupilDX = -reach
		s.Lid = 0.1
		s.Intensity = 0.45
	}), DurationMedium)

	set(LookRight, both(func(s *EyeState) {
		s.PupilDX = reach
		s.Lid = 0.1
		s.Intensity = 0.45
	}), DurationMedium)

	set(Confused, func(l, r *EyeState) {
		l.Width -= shrink
		l.Height -= shrink
		l.CenterY -= lift
		l.PupilDX = reach / 2
		l.PupilDY = -reach / 3
		l.Lid = 0.15
		r.Width += droop
		r.Height += droop
		r.CenterY += lift / 2
		r.PupilDX = -reach / 2
		r.PupilDY = reach / 3
		l.Intensity = 0.5
		r.Intensity = 0.5
	}, DurationMedium)

	set(Bored, both(func(s *EyeState) {
		s.CenterY += lift / 2
		s.PupilDX = 2 * reach / 3
		s.PupilDY = reach / 4
		s.Lid = 0.6
		s.Intensity = 0.2
	}), DurationMedium)

	set(Scared, both(func(s *EyeState) {
		s.CenterY -= lift / 2
		s.Width += droop
		s.Height += droop
		s.PupilDX = -reach / 3
		s.PupilDY = -reach / 2
		s.Lid = 0.05
		s.Intensity = 0.9
	}), DurationMedium)

	set(Sleepy, both(func(s *EyeState) {
		s.CenterY += lift
		s.PupilDY = reach / 2
		s.Lid = 0.8
		s.Intensity = 0.1
	}), DurationSlow)

	set(Asleep, both(func(s *EyeState) {
		s.CenterY += droop
		s.Lid = 1
		s.Intensity = 0
	}), DurationSlow)

	set(Wakeup, both(func(s *EyeState) {
		s.Lid = 0.15
		s.Intensity = 0.3
	}), DurationSlow)
}
