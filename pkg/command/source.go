// Package command turns external inputs into the single-value-per-tick
// stream the face consumes: a drain-on-read queue, an ASCII integer
// scanner, and a framed byte protocol for UART-style links.
package command

// Source yields at most one pending command value per tick of the control
// loop. A successful Poll drains whatever else is buffered: commands
// arrive far slower than the face ticks, so anything backed up behind the
// first value is stale (or garbage from a garbled line) and must never
// stall future reads.
type Source interface {
	Poll() (int, bool)
}

// Queue is a channel-backed Source fed by any number of producers (web
// handlers, serial readers, the simulator's keyboard). Send never blocks:
// when the buffer is full the command is dropped, the same policy the
// websocket hub applies to slow clients.
type Queue struct {
	ch chan int
}

var _ Source = (*Queue)(nil)

// NewQueue creates a queue with the given buffer capacity (minimum 1).
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{ch: make(chan int, capacity)}
}

// Send enqueues a command without blocking and reports whether it was
// accepted.
func (q *Queue) Send(v int) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// Poll takes the oldest pending command and discards the rest of the
// backlog.
func (q *Queue) Poll() (int, bool) {
	select {
	case v := <-q.ch:
		for {
			select {
			case <-q.ch:
			default:
				return v, true
			}
		}
	default:
		return 0, false
	}
}
