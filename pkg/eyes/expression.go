// Package eyes implements the expressive-eyes animation core: a closed
// catalog of expressions, a non-blocking timer-driven transition engine,
// autonomous blink/demo behavior, and the geometry renderer that turns eye
// states into drawing-surface calls.
//
// Nothing in this package sleeps or reads the wall clock. Every
// time-dependent operation takes the current timestamp explicitly, so a
// single cooperative control loop can drive the whole face alongside
// sensor polling and actuation.
package eyes

import (
	"strconv"
	"strings"
)

// Expression identifies one of the built-in eye expressions.
//
// The numeric values are a compatibility contract: external command
// sources address expressions by these codes, so the order must never
// change. New expressions may only be appended.
type Expression uint8

const (
	Idle      Expression = iota // 0: neutral, eyes open, pupils centered
	Happy                       // 1: raised, squinting
	Sad                         // 2: drooping, pupils low
	Angry                       // 3: narrowed, heavy lids
	Surprised                   // 4: wide open, pinpoint pupils
	Blink                       // 5: momentary lid close, returns to previous
	LookLeft                    // 6: pupils hard left
	LookRight                   // 7: pupils hard right
	Confused                    // 8: asymmetric, one eye larger
	Bored                       // 9: half-lidded, pupils drifting
	Scared                      // 10: wide, pupils high and tight
	Sleepy                      // 11: nearly closed, drifts into Asleep
	Asleep                      // 12: lids fully closed
	Wakeup                      // 13: opening, settles into Idle
)

// ExpressionCount is the size of the closed expression set.
const ExpressionCount = 14

// InteractiveCount bounds the demo cycle: codes [0, InteractiveCount) are
// the expressions worth showing off. Asleep and Wakeup are excluded; they
// are entered via chain rules or explicit commands only.
const InteractiveCount = 12

// String returns the lowercase expression name.
func (e Expression) String() string {
	switch e {
	case Idle:
		return "idle"
	case Happy:
		return "happy"
	case Sad:
		return "sad"
	case Angry:
		return "angry"
	case Surprised:
		return "surprised"
	case Blink:
		return "blink"
	case LookLeft:
		return "look_left"
	case LookRight:
		return "look_right"
	case Confused:
		return "confused"
	case Bored:
		return "bored"
	case Scared:
		return "scared"
	case Sleepy:
		return "sleepy"
	case Asleep:
		return "asleep"
	case Wakeup:
		return "wakeup"
	default:
		return "unknown"
	}
}

// Valid reports whether e is a defined expression.
func (e Expression) Valid() bool {
	return e < ExpressionCount
}

// FromCode converts an external integer code to an Expression.
// It returns false for codes outside [0, ExpressionCount).
func FromCode(code int) (Expression, bool) {
	if code < 0 || code >= ExpressionCount {
		return Idle, false
	}
	return Expression(code), true
}

// ParseExpression resolves a name or numeric code string to an Expression.
// Name matching is case-insensitive.
func ParseExpression(s string) (Expression, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for e := Expression(0); e < ExpressionCount; e++ {
		if e.String() == name {
			return e, true
		}
	}
	if code, err := strconv.Atoi(name); err == nil {
		return FromCode(code)
	}
	return Idle, false
}

// All returns every defined expression in code order.
func All() []Expression {
	out := make([]Expression, ExpressionCount)
	for i := range out {
		out[i] = Expression(i)
	}
	return out
}
