package export

import (
	"context"
	"sync"
	"sync/atomic"
)

// State of an export control.
type State int32

const (
	StateIdle State = iota
	StateGenerating
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the result of one export run.
type Outcome struct {
	Artifact *Artifact
	Err      *Error
}

// Control allows at most one export in flight. A run requested while
// another is generating is dropped rather than queued.
type Control struct {
	state atomic.Int32

	mu   sync.Mutex
	last Outcome
}

// Run executes fn unless an export is already generating, in which case it
// returns immediately with started == false. Any error from fn is
// classified before it is recorded.
func (c *Control) Run(ctx context.Context, fn func(ctx context.Context) (*Artifact, error)) (Outcome, bool) {
	for {
		cur := State(c.state.Load())
		if cur == StateGenerating {
			return Outcome{}, false
		}
		if c.state.CompareAndSwap(int32(cur), int32(StateGenerating)) {
			break
		}
	}

	defer func() {
		if r := recover(); r != nil {
			c.state.Store(int32(StateFailed))
			panic(r)
		}
	}()

	art, err := fn(ctx)
	out := Outcome{Artifact: art}
	next := StateDone
	if err != nil {
		out = Outcome{Err: Classify(err)}
		next = StateFailed
	}

	c.mu.Lock()
	c.last = out
	c.mu.Unlock()
	c.state.Store(int32(next))
	return out, true
}

func (c *Control) State() State { return State(c.state.Load()) }

// Last returns the outcome of the most recent finished run.
func (c *Control) Last() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
