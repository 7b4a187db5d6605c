package eyes

import (
	"math"
	"testing"
	"time"
)

func newTestEngine() (*Engine, *Catalog, time.Time) {
	cat := NewCatalog(DefaultGeometry())
	return NewEngine(cat), cat, time.Unix(0, 0)
}

func TestEngineBootsAsleep(t *testing.T) {
	e, cat, t0 := newTestEngine()

	if e.Current() != Asleep {
		t.Errorf("fresh engine at %v, want asleep", e.Current())
	}
	if e.InTransition() {
		t.Error("fresh engine should be steady")
	}
	if e.Rendered() != cat.Pair(Asleep) {
		t.Error("fresh engine should render the asleep pair")
	}
	if e.Tick(t0) {
		t.Error("Tick with no transition in flight should report false")
	}
}

func TestRequestStartsTransition(t *testing.T) {
	e, cat, t0 := newTestEngine()

	e.Request(t0, Happy, 200*time.Millisecond)
	if !e.InTransition() {
		t.Fatal("request should start a transition")
	}
	if e.Current() != Happy {
		t.Errorf("current = %v, want happy", e.Current())
	}
	if e.Target() != cat.Pair(Happy) {
		t.Error("target should be the happy pair")
	}

	// At the request timestamp nothing has moved yet.
	e.Tick(t0)
	if e.Rendered() != cat.Pair(Asleep) {
		t.Error("rendered pair should still be the start pair at t=0")
	}
}

func TestTransitionIsLinear(t *testing.T) {
	e, cat, t0 := newTestEngine()
	e.Request(t0, Happy, 200*time.Millisecond)

	// Quarter point. Asleep lid 1 -> happy lid 0.35, so a linear ramp
	// gives exactly 0.8375 here; an eased ramp would not.
	e.Tick(t0.Add(50 * time.Millisecond))
	if got := e.Rendered().Left.Lid; math.Abs(got-0.8375) > 1e-9 {
		t.Errorf("lid at quarter point = %f, want 0.8375", got)
	}

	// Midpoint matches the interpolator output field for field.
	e.Tick(t0.Add(100 * time.Millisecond))
	want := LerpPair(cat.Pair(Asleep), cat.Pair(Happy), 0.5)
	if e.Rendered() != want {
		t.Errorf("midpoint pair = %+v, want %+v", e.Rendered(), want)
	}
}

func TestTransitionSnapsToTarget(t *testing.T) {
	e, cat, t0 := newTestEngine()
	e.Request(t0, Happy, 200*time.Millisecond)

	if !e.Tick(t0.Add(200 * time.Millisecond)) {
		t.Fatal("completing tick should report a transition was in flight")
	}
	if e.Rendered() != cat.Pair(Happy) {
		t.Error("rendered pair should snap to the target exactly")
	}
	if e.InTransition() {
		t.Error("transition should be finished at its duration")
	}
	if e.Tick(t0.Add(300 * time.Millisecond)) {
		t.Error("steady engine should report no transition")
	}
}

func TestLateTickStillSnaps(t *testing.T) {
	// A stalled loop can overshoot the end time by a lot; the state must
	// land on the target, not extrapolate past it.
	e, cat, t0 := newTestEngine()
	e.Request(t0, Surprised, 200*time.Millisecond)

	e.Tick(t0.Add(10 * time.Second))
	if e.Rendered() != cat.Pair(Surprised) {
		t.Error("late tick should snap to the target")
	}
	if e.InTransition() {
		t.Error("late tick should finish the transition")
	}
}

func TestRepeatRequestDoesNotRestartTimer(t *testing.T) {
	e, _, t0 := newTestEngine()
	e.Request(t0, Happy, 200*time.Millisecond)
	e.Tick(t0.Add(100 * time.Millisecond))

	// Same expression mid-flight: must not reset the clock.
	e.Request(t0.Add(100*time.Millisecond), Happy, 200*time.Millisecond)

	e.Tick(t0.Add(200 * time.Millisecond))
	if e.InTransition() {
		t.Error("repeated request restarted the transition timer")
	}
}

func TestInterruptHandsOffFromRenderedPair(t *testing.T) {
	e, _, t0 := newTestEngine()
	e.Request(t0, Surprised, 200*time.Millisecond)
	e.Tick(t0.Add(100 * time.Millisecond))
	mid := e.Rendered()

	// Redirect mid-flight: the new transition starts where the eyes
	// actually are, so there is no visual jump.
	e.Request(t0.Add(100*time.Millisecond), Sad, 200*time.Millisecond)
	e.Tick(t0.Add(100 * time.Millisecond))
	if e.Rendered() != mid {
		t.Errorf("interrupted transition jumped from %+v to %+v", mid, e.Rendered())
	}
	if e.Current() != Sad {
		t.Errorf("current = %v, want sad", e.Current())
	}
}

func TestBlinkClosesAndReturns(t *testing.T) {
	e, cat, t0 := newTestEngine()

	e.Request(t0, Happy, 200*time.Millisecond)
	e.Tick(t0.Add(200 * time.Millisecond))

	t1 := t0.Add(time.Second)
	e.Request(t1, Blink, 75*time.Millisecond)
	if e.Previous() != Happy {
		t.Errorf("blink moved the return anchor to %v", e.Previous())
	}
	want := BlinkPair(cat.Pair(Happy))
	if e.Target() != want {
		t.Error("blink should target the current pose with lids shut")
	}

	// Lids shut at 75ms, then the chain reopens into happy.
	e.Tick(t1.Add(75 * time.Millisecond))
	if e.Current() != Happy {
		t.Errorf("after blink close, current = %v, want happy", e.Current())
	}
	if !e.InTransition() {
		t.Error("blink completion should start the reopen transition")
	}

	e.Tick(t1.Add(75*time.Millisecond + DurationFast))
	if e.InTransition() {
		t.Error("reopen should be finished")
	}
	if e.Rendered() != cat.Pair(Happy) {
		t.Error("face should be back at the happy pair after a blink")
	}
}

func TestWakeupSettlesIntoIdle(t *testing.T) {
	e, cat, t0 := newTestEngine()

	e.Request(t0, Wakeup, 0)
	e.Tick(t0.Add(DurationSlow))
	if e.Current() != Idle {
		t.Errorf("after wakeup, current = %v, want idle", e.Current())
	}
	if !e.InTransition() {
		t.Error("wakeup completion should start the idle settle")
	}

	e.Tick(t0.Add(DurationSlow + DurationMedium))
	if e.Rendered() != cat.Pair(Idle) {
		t.Error("face should settle at the idle pair")
	}
	if e.InTransition() {
		t.Error("idle settle should be finished")
	}
}

func TestSleepyDriftsAsleep(t *testing.T) {
	e, cat, t0 := newTestEngine()
	e.Request(t0, Wakeup, 0)
	e.Tick(t0.Add(DurationSlow))
	e.Tick(t0.Add(DurationSlow + DurationMedium))

	t1 := t0.Add(5 * time.Second)
	e.Request(t1, Sleepy, 0)
	e.Tick(t1.Add(DurationSlow))
	if e.Current() != Asleep {
		t.Errorf("after sleepy, current = %v, want asleep", e.Current())
	}

	e.Tick(t1.Add(2 * DurationSlow))
	if e.Rendered() != cat.Pair(Asleep) {
		t.Error("face should come to rest at the asleep pair")
	}
	if e.InTransition() {
		t.Error("drift to sleep should be finished")
	}
}

func TestChainRunsOnlyOncePerCompletion(t *testing.T) {
	e, _, t0 := newTestEngine()
	e.Request(t0, Wakeup, 0)
	e.Tick(t0.Add(DurationSlow))

	// The wakeup chain started the idle settle. Ticking again before it
	// finishes must not re-run any chain rule.
	e.Tick(t0.Add(DurationSlow + 50*time.Millisecond))
	if e.Current() != Idle {
		t.Errorf("current = %v, want idle", e.Current())
	}
	if !e.InTransition() {
		t.Error("idle settle should still be in flight")
	}
}

func TestRequestCoercesDuration(t *testing.T) {
	e, _, t0 := newTestEngine()

	// Non-positive durations fall back to the catalog suggestion.
	e.Request(t0, Happy, -time.Second)
	e.Tick(t0.Add(DurationMedium - time.Millisecond))
	if !e.InTransition() {
		t.Error("coerced transition finished before the suggested duration")
	}
	e.Tick(t0.Add(DurationMedium))
	if e.InTransition() {
		t.Error("coerced transition should finish at the suggested duration")
	}
}

func TestRequestFloorsTinyDuration(t *testing.T) {
	e, _, t0 := newTestEngine()

	e.Request(t0, Sad, time.Nanosecond)
	e.Tick(t0.Add(500 * time.Microsecond))
	if !e.InTransition() {
		t.Error("sub-floor duration should be raised, not finish instantly")
	}
	e.Tick(t0.Add(time.Millisecond))
	if e.InTransition() {
		t.Error("floored transition should finish at the floor")
	}
}

func TestRequestIgnoresInvalidExpression(t *testing.T) {
	e, _, t0 := newTestEngine()

	e.Request(t0, Expression(14), 100*time.Millisecond)
	if e.InTransition() || e.Current() != Asleep {
		t.Error("invalid expression should leave the engine untouched")
	}
}

func TestPreviousTracksNonBlinkRequests(t *testing.T) {
	e, _, t0 := newTestEngine()

	e.Request(t0, Happy, 100*time.Millisecond)
	if e.Previous() != Happy {
		t.Errorf("previous = %v, want happy", e.Previous())
	}
	e.Tick(t0.Add(100 * time.Millisecond))

	e.Request(t0.Add(time.Second), Sad, 100*time.Millisecond)
	if e.Previous() != Sad {
		t.Errorf("previous = %v, want sad", e.Previous())
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkEngineTick(b *testing.B) {
	cat := NewCatalog(DefaultGeometry())
	e := NewEngine(cat)
	now := time.Unix(0, 0)
	e.Request(now, Happy, DurationMedium)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		now = now.Add(33 * time.Millisecond)
		if !e.Tick(now) {
			e.Request(now, Expression(i%InteractiveCount), DurationMedium)
		}
	}
}
