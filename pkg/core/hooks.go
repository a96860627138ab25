package core

import (
	"time"

	"github.com/zoobzio/clockz"
)

// UseTimer keeps a current time that advances every interval while the
// element is mounted, refreshing the element on each tick. It returns a
// getter for the latest tick time.
//
// The ticker starts on AfterMount and stops on BeforeUnmount. Ticks are
// handed to the element's goroutine through Controller.Dispatch, so the
// element's scheduler must implement frame.Dispatcher. A nil clock uses the
// real clock.
//
// Example:
//
//	func newClock(ctrl *core.Controller) *clock {
//	    c := &clock{Base: core.NewBase(ctrl)}
//	    c.now = core.UseTimer(c, nil, time.Second)
//	    return c
//	}
func UseTimer(c baseProvider, clock clockz.Clock, interval time.Duration) func() time.Time {
	b := c.base()
	if clock == nil {
		clock = clockz.RealClock
	}
	current := clock.Now()
	var stop func()

	b.AddLifecycleTask(AfterMount, func() {
		if stop != nil {
			return
		}
		ticker := clock.NewTicker(interval)
		done := make(chan struct{})
		stop = func() {
			ticker.Stop()
			close(done)
		}
		go func(ticks <-chan time.Time, stop <-chan struct{}) {
			for {
				select {
				case <-stop:
					return
				case now := <-ticks:
					b.ctrl.Dispatch(func() {
						current = now
						b.Refresh()
					})
				}
			}
		}(ticker.C(), done)
	})

	b.AddLifecycleTask(BeforeUnmount, func() {
		if stop != nil {
			stop()
			stop = nil
		}
	})

	return func() time.Time { return current }
}
