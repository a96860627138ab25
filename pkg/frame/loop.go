package frame

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/go-drift/elements/pkg/errors"
)

// DefaultInterval is the frame interval of a Loop (60 frames per second).
const DefaultInterval = time.Second / 60

// Loop is a single-goroutine event loop. Dispatched tasks run as they
// arrive; frame callbacks run together on the next clock tick after they
// were requested.
//
// Every element operation, including RequestFrame, must happen on the loop
// goroutine (inside a dispatched task or a frame callback) or before Run is
// called. Other goroutines hand work over with Dispatch.
type Loop struct {
	clock    clockz.Clock
	interval time.Duration
	tasks    chan func()
	frames   []func()
	done     chan struct{}
	count    atomic.Uint64
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock sets the clock driving frame ticks.
// Use this with clockz.FakeClock for deterministic tests.
func WithClock(clock clockz.Clock) LoopOption {
	return func(l *Loop) { l.clock = clock }
}

// WithInterval sets the time between frame ticks.
func WithInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// NewLoop creates a loop. It does nothing until Run is called.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		clock:    clockz.RealClock,
		interval: DefaultInterval,
		tasks:    make(chan func(), 64),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RequestFrame queues callback for the next tick.
func (l *Loop) RequestFrame(callback func()) {
	if callback == nil {
		return
	}
	l.frames = append(l.frames, callback)
}

// Dispatch hands callback to the loop goroutine. It blocks while the task
// buffer is full and returns false once the loop has stopped.
func (l *Loop) Dispatch(callback func()) bool {
	if callback == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- callback:
		return true
	case <-l.done:
		return false
	}
}

// Frames returns the number of ticks that ran at least one frame callback.
func (l *Loop) Frames() uint64 {
	return l.count.Load()
}

// Run drives the loop until ctx is cancelled. Panics from tasks and frame
// callbacks are reported through errors.ReportPanic and do not stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	ticker := l.clock.NewTicker(l.interval)
	defer ticker.Stop()
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-l.tasks:
			l.run("frame.Loop.task", task)
		case <-ticker.C():
			l.runFrames()
		}
	}
}

func (l *Loop) runFrames() {
	if len(l.frames) == 0 {
		return
	}
	frames := l.frames
	l.frames = nil
	l.count.Add(1)
	for _, callback := range frames {
		l.run("frame.Loop.frame", callback)
	}
}

func (l *Loop) run(op string, fn func()) {
	defer errors.Recover(op)
	fn()
}
