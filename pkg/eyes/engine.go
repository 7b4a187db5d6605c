package eyes

import (
	"time"

	"github.com/teslashibe/go-roboeyes/internal/log"
)

// Engine drives non-blocking transitions between expression targets.
//
// It keeps a start/target/rendered triple for the eye pair. A request
// snapshots the currently rendered pair as the start (so interrupted
// transitions hand off without jumps), installs the new target, and
// records the request timestamp. Each Tick re-derives the rendered pair
// from elapsed/duration; completion snaps to the target exactly and
// evaluates at most one chain rule.
//
// The engine never sleeps, never reads the clock, and is not safe for
// concurrent use: a single owner calls Request and Tick (see
// face.Controller).
type Engine struct {
	catalog *Catalog

	rendered EyePair
	start    EyePair
	target   EyePair

	current      Expression
	previous     Expression // last non-blink request, the blink-return anchor
	startedAt    time.Time
	duration     time.Duration
	inTransition bool
}

// NewEngine returns an engine resting at Asleep: lids closed, waiting
// for a wakeup request.
func NewEngine(catalog *Catalog) *Engine {
	pair := catalog.Pair(Asleep)
	return &Engine{
		catalog:  catalog,
		rendered: pair,
		start:    pair,
		target:   pair,
		current:  Asleep,
		previous: Asleep,
	}
}

// Request starts a transition into an expression at the given timestamp.
// Requesting the expression the engine is already transitioning into is a
// no-op, so repeated commands cannot restart the timer. A non-positive
// duration falls back to the catalog's suggestion for the expression.
//
// Blink is special: its target is the current target with lids shut
// rather than a catalog pose, and it does not replace the blink-return
// anchor, so completion reopens into whatever was showing before.
func (e *Engine) Request(now time.Time, id Expression, d time.Duration) {
	if !id.Valid() {
		return
	}
	if e.inTransition && e.current == id {
		return
	}
	if d <= 0 {
		d = e.catalog.SuggestedDuration(id)
	}
	if d < minDuration {
		d = minDuration
	}

	e.start = e.rendered
	if id == Blink {
		e.target = BlinkPair(e.target)
	} else {
		e.target = e.catalog.Pair(id)
		e.previous = id
	}
	e.current = id
	e.startedAt = now
	e.duration = d
	e.inTransition = true

	log.Debug("expression requested", "expression", id.String(), "duration", d)
}

// Tick advances the rendered pair to the given timestamp and reports
// whether a transition was in flight. Once elapsed reaches the duration
// the rendered pair snaps to the target (no drift from accumulated
// floating point) and the chain table runs once, which may start the
// successor transition at the same timestamp.
func (e *Engine) Tick(now time.Time) bool {
	if !e.inTransition {
		return false
	}

	elapsed := now.Sub(e.startedAt)
	if elapsed >= e.duration {
		e.rendered = e.target
		e.inTransition = false
		done := e.current
		if next, d, ok := e.chain(done); ok {
			log.Debug("expression chained", "from", done.String(), "to", next.String())
			e.Request(now, next, d)
		}
		return true
	}

	t := float64(elapsed) / float64(e.duration)
	e.rendered = LerpPair(e.start, e.target, t)
	return true
}

// chain returns the follow-up an expression spawns on completion: blinks
// reopen to the previous expression, wakeups settle into idle, sleepiness
// drifts off to sleep. Everything else rests where it landed.
func (e *Engine) chain(done Expression) (Expression, time.Duration, bool) {
	switch done {
	case Blink:
		return e.previous, DurationFast, true
	case Wakeup:
		return Idle, DurationMedium, true
	case Sleepy:
		return Asleep, DurationSlow, true
	}
	return Idle, 0, false
}

// Rendered returns the eye pair as currently interpolated.
func (e *Engine) Rendered() EyePair {
	return e.rendered
}

// Target returns the pair the engine is holding or transitioning toward.
func (e *Engine) Target() EyePair {
	return e.target
}

// Current returns the most recently requested expression.
func (e *Engine) Current() Expression {
	return e.current
}

// Previous returns the blink-return anchor.
func (e *Engine) Previous() Expression {
	return e.previous
}

// InTransition reports whether a transition is in flight.
func (e *Engine) InTransition() bool {
	return e.inTransition
}
