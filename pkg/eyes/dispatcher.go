package eyes

import (
	"time"

	"github.com/teslashibe/go-roboeyes/internal/log"
)

// Dispatcher validates external numeric commands and turns them into
// expression requests. The first valid command permanently silences the
// demo cycle and guarantees auto-blink is on; invalid values are dropped
// without touching any state, so a garbled input line cannot wedge or
// redirect the face.
type Dispatcher struct {
	engine   *Engine
	sched    *Scheduler
	duration time.Duration // pacing applied to every commanded transition
}

// NewDispatcher creates a dispatcher for the engine/scheduler pair. A
// non-positive duration falls back to the standard medium pacing.
func NewDispatcher(engine *Engine, sched *Scheduler, duration time.Duration) *Dispatcher {
	if duration <= 0 {
		duration = DurationMedium
	}
	return &Dispatcher{engine: engine, sched: sched, duration: duration}
}

// Dispatch handles one external command value and reports whether it was
// accepted. Values outside [0, ExpressionCount) are discarded silently.
func (d *Dispatcher) Dispatch(now time.Time, value int) bool {
	id, ok := FromCode(value)
	if !ok {
		log.Debug("command discarded", "value", value)
		return false
	}

	d.sched.DisableDemo()
	d.sched.EnableAutoBlink()
	d.engine.Request(now, id, d.duration)
	log.Info("command accepted", "expression", id.String(), "code", value)
	return true
}
