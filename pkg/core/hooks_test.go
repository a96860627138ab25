package core

import (
	"testing"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/go-drift/elements/pkg/frame"
	"github.com/go-drift/elements/pkg/render"
)

type ticking struct {
	Base
	now func() time.Time
}

func (c *ticking) Render() render.Content {
	return render.HTML("<time>%s</time>", c.now().Format(time.TimeOnly))
}

func waitForTasks(t *testing.T, q *frame.Queue, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for q.PendingTasks() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d dispatched tasks", n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestUseTimer(t *testing.T) {
	clock := clockz.NewFakeClock()
	start := clock.Now()
	q := frame.NewQueue()
	b := &box{log: &[]string{}}
	ctrl := NewController(Config{Tag: "x-clock", Scheduler: q, Container: b})
	c := Construct(ctrl, func(ctrl *Controller) *ticking {
		c := &ticking{Base: NewBase(ctrl)}
		c.now = UseTimer(c, clock, time.Second)
		return c
	})

	if !c.now().Equal(start) {
		t.Fatalf("initial time = %v, want %v", c.now(), start)
	}
	if err := ctrl.Mount(); err != nil {
		t.Fatal(err)
	}

	clock.Advance(time.Second)
	clock.BlockUntilReady()
	waitForTasks(t, q, 1)
	q.Flush()

	if want := start.Add(time.Second); !c.now().Equal(want) {
		t.Errorf("now() = %v, want %v", c.now(), want)
	}
	if ctrl.RenderCount() != 2 {
		t.Errorf("RenderCount() = %d, tick should re-render", ctrl.RenderCount())
	}
	if want := "<time>" + start.Add(time.Second).Format(time.TimeOnly) + "</time>"; b.Content() != want {
		t.Errorf("content = %q, want %q", b.Content(), want)
	}

	ctrl.Unmount()
	clock.Advance(time.Second)
	clock.BlockUntilReady()
	time.Sleep(10 * time.Millisecond)
	if q.PendingTasks() != 0 {
		t.Error("timer should stop when the element unmounts")
	}
}

func TestUseTimer_RestartsOnRemount(t *testing.T) {
	clock := clockz.NewFakeClock()
	q := frame.NewQueue()
	ctrl := NewController(Config{Tag: "x-clock", Scheduler: q, Container: &box{log: &[]string{}}})
	c := Construct(ctrl, func(ctrl *Controller) *ticking {
		c := &ticking{Base: NewBase(ctrl)}
		c.now = UseTimer(c, clock, time.Second)
		return c
	})

	_ = ctrl.Mount()
	ctrl.Unmount()
	_ = ctrl.Mount()
	defer ctrl.Unmount()

	clock.Advance(time.Second)
	clock.BlockUntilReady()
	waitForTasks(t, q, 1)
	q.Flush()
	if !c.now().Equal(clock.Now()) {
		t.Errorf("now() = %v, want %v", c.now(), clock.Now())
	}
}
