// Package face composes the eye engine, scheduler, dispatcher and
// renderer into the single cooperative control loop that owns them.
package face

import (
	"context"
	"sync"
	"time"

	"github.com/teslashibe/go-roboeyes/internal/log"
	"github.com/teslashibe/go-roboeyes/pkg/command"
	"github.com/teslashibe/go-roboeyes/pkg/display"
	"github.com/teslashibe/go-roboeyes/pkg/eyes"
)

// DefaultRate is the stock 30Hz control-loop interval.
const DefaultRate = 33 * time.Millisecond

// Status is the externally visible face state, copied out once per tick
// for dashboard readers.
type Status struct {
	Expression   string `json:"expression"`
	Code         int    `json:"code"`
	InTransition bool   `json:"in_transition"`
	DemoActive   bool   `json:"demo_active"`
	AutoBlink    bool   `json:"auto_blink"`
	Ticks        uint64 `json:"ticks"`
}

// Options wires a Controller together.
type Options struct {
	Engine     *eyes.Engine
	Scheduler  *eyes.Scheduler
	Dispatcher *eyes.Dispatcher
	Renderer   *eyes.Renderer
	Surface    display.Surface
	Source     command.Source // optional; nil means no external commands
	Rate       time.Duration  // tick interval, DefaultRate when <= 0
}

// Controller owns the per-tick order of operations: command intake, the
// autonomous scheduler, engine interpolation, then clear-draw-flush so
// both eyes land in the same frame. All engine and scheduler state is
// touched only from this loop. Outside readers get the mutexed Status
// copy; outside producers reach in only through the command queue.
type Controller struct {
	engine  *eyes.Engine
	sched   *eyes.Scheduler
	disp    *eyes.Dispatcher
	render  *eyes.Renderer
	surface display.Surface
	source  command.Source
	rate    time.Duration

	// OnFrame, when set before Run, is called after every flush while
	// the surface holds a complete frame. The daemon hangs the preview
	// stream off it.
	OnFrame func()

	mu     sync.RWMutex
	status Status

	ticks      uint64
	errorCount uint64
}

// New creates a controller from wired parts.
func New(opts Options) *Controller {
	rate := opts.Rate
	if rate <= 0 {
		rate = DefaultRate
	}
	c := &Controller{
		engine:  opts.Engine,
		sched:   opts.Scheduler,
		disp:    opts.Dispatcher,
		render:  opts.Renderer,
		surface: opts.Surface,
		source:  opts.Source,
		rate:    rate,
	}
	c.status = Status{
		Expression: c.engine.Current().String(),
		Code:       int(c.engine.Current()),
		DemoActive: c.sched.DemoActive(),
		AutoBlink:  c.sched.AutoBlink(),
	}
	return c
}

// Run drives the control loop at the configured rate until ctx is
// canceled. It blocks, so callers use it as their main loop or spawn it.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.rate)
	defer ticker.Stop()

	log.Info("face controller started", "rate", c.rate)
	for {
		select {
		case <-ctx.Done():
			log.Info("face controller stopped", "ticks", c.ticks)
			return
		case <-ticker.C:
			c.Step(time.Now())
		}
	}
}

// Step executes one control cycle at the given timestamp. The desktop
// simulator calls this from its own frame callback instead of Run; both
// drivers preserve the single-owner rule.
func (c *Controller) Step(now time.Time) {
	// 1. Command intake (at most one per tick, backlog drained)
	if c.source != nil {
		if v, ok := c.source.Poll(); ok {
			c.disp.Dispatch(now, v)
		}
	}

	// 2. Autonomous behavior
	c.sched.Tick(now)

	// 3. Interpolation
	c.engine.Tick(now)

	// 4. Draw both eyes into one frame
	pair := c.engine.Rendered()
	c.surface.Clear()
	c.render.DrawEye(c.surface, pair.Left)
	c.render.DrawEye(c.surface, pair.Right)
	if err := c.surface.Flush(); err != nil {
		c.errorCount++
		if c.errorCount%100 == 1 {
			log.Warn("surface flush failed", "err", err, "count", c.errorCount)
		}
	}

	// 5. Publish
	c.ticks++
	st := Status{
		Expression:   c.engine.Current().String(),
		Code:         int(c.engine.Current()),
		InTransition: c.engine.InTransition(),
		DemoActive:   c.sched.DemoActive(),
		AutoBlink:    c.sched.AutoBlink(),
		Ticks:        c.ticks,
	}
	c.mu.Lock()
	c.status = st
	c.mu.Unlock()

	if c.OnFrame != nil {
		c.OnFrame()
	}
}

// Status returns the most recently published face state.
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}
