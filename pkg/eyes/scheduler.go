package eyes

import (
	"math/rand"
	"time"

	"github.com/teslashibe/go-roboeyes/internal/log"
)

// Autonomous behavior pacing.
const (
	blinkDelayMin  = 3000 * time.Millisecond // shortest gap between blinks
	blinkDelaySpan = 4000 * time.Millisecond // random extra, gap is [min, min+span)
	demoInterval   = 2000 * time.Millisecond // demo cycle step
)

// Scheduler layers autonomous behavior on top of the engine: randomized
// blinks so the face never goes glassy, and a demo cycle that shows off
// the interactive expressions until the first real command arrives.
//
// Like the engine it is clock-free and single-owner; the control loop
// passes each tick's timestamp in.
type Scheduler struct {
	engine *Engine
	rng    *rand.Rand

	autoBlink bool
	lastBlink time.Time
	nextDelay time.Duration

	demoActive bool
	demoIndex  int
	nextDemo   time.Time

	primed bool
}

// SchedulerOptions configures the initial behavior flags.
type SchedulerOptions struct {
	AutoBlink bool
	Demo      bool

	// Rand supplies blink-delay randomness. Nil gets a time-seeded
	// source; tests inject a fixed seed.
	Rand *rand.Rand
}

// NewScheduler creates a scheduler driving the given engine.
func NewScheduler(engine *Engine, opts SchedulerOptions) *Scheduler {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scheduler{
		engine:     engine,
		rng:        rng,
		autoBlink:  opts.AutoBlink,
		demoActive: opts.Demo,
	}
}

// Tick evaluates the autonomous triggers at the given timestamp. Both
// triggers are gated on the engine being steady, so autonomous behavior
// never interrupts a transition in flight.
func (s *Scheduler) Tick(now time.Time) {
	if !s.primed {
		// The first tick only establishes the baseline; otherwise a gap
		// between construction and the first tick would fire instantly.
		s.primed = true
		s.lastBlink = now
		s.nextDelay = s.blinkDelay()
		s.nextDemo = now.Add(demoInterval)
		return
	}

	if s.engine.InTransition() {
		return
	}

	if s.autoBlink {
		cur := s.engine.Current()
		if cur != Asleep && cur != Blink && now.Sub(s.lastBlink) >= s.nextDelay {
			s.engine.Request(now, Blink, DurationFast)
			s.lastBlink = now
			s.nextDelay = s.blinkDelay()
			return
		}
	}

	if s.demoActive && !now.Before(s.nextDemo) {
		s.demoIndex = (s.demoIndex + 1) % InteractiveCount
		s.engine.Request(now, Expression(s.demoIndex), DurationMedium)
		s.nextDemo = now.Add(demoInterval)
	}
}

// DisableDemo stops the demo cycle for the rest of the process lifetime.
// The first explicit command calls this; there is no runtime re-enable.
func (s *Scheduler) DisableDemo() {
	if s.demoActive {
		log.Info("demo mode disabled")
	}
	s.demoActive = false
}

// EnableAutoBlink turns the blink trigger on. Explicit commands call this
// so a commanded face keeps blinking even if blinks were configured off.
func (s *Scheduler) EnableAutoBlink() {
	s.autoBlink = true
}

// DemoActive reports whether the demo cycle is still running.
func (s *Scheduler) DemoActive() bool {
	return s.demoActive
}

// AutoBlink reports whether the blink trigger is enabled.
func (s *Scheduler) AutoBlink() bool {
	return s.autoBlink
}

// blinkDelay draws the next blink gap, uniform in [3s, 7s).
func (s *Scheduler) blinkDelay() time.Duration {
	return blinkDelayMin + time.Duration(s.rng.Int63n(int64(blinkDelaySpan)))
}
