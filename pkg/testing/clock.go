package testing

import (
	"errors"
	"time"
)

// ErrTickTimeout is returned when timer goroutines do not dispatch in time.
var ErrTickTimeout = errors.New("Tick: timer tasks were not dispatched")

// tickWait bounds how long Tick waits for timer goroutines.
const tickWait = time.Second

// Tick advances the fake clock by d, waits until at least tasks timer
// callbacks have been dispatched to the document and pumps one frame.
//
// Timer goroutines receive ticks asynchronously, so tests name how many
// dispatches they expect; usually one per mounted timer.
func (t *Tester) Tick(d time.Duration, tasks int) error {
	t.clock.Advance(d)
	t.clock.BlockUntilReady()
	deadline := time.Now().Add(tickWait)
	for t.queue.PendingTasks() < tasks {
		if time.Now().After(deadline) {
			return ErrTickTimeout
		}
		time.Sleep(time.Millisecond)
	}
	t.Pump()
	return nil
}
