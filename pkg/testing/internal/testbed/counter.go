// Package testbed provides internal test components for the testing harness.
package testbed

import (
	"time"

	"github.com/zoobzio/clockz"

	"github.com/go-drift/elements/pkg/convert"
	"github.com/go-drift/elements/pkg/core"
	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/render"
)

// Counter displays a count that starts at its initial-count attribute.
type Counter struct {
	core.Base
	Initial float64
	count   *core.State[int]
}

// CounterClass declares Counter with a reflecting initialCount property and
// an increment method.
var CounterClass = func() *element.Class[*Counter] {
	cls := element.NewClass(func(ctrl *core.Controller) *Counter {
		c := &Counter{Base: core.NewBase(ctrl)}
		c.count = core.NewState(c, "count", 0)
		return c
	})
	element.Prop(cls, "initialCount", func(c *Counter) *float64 { return &c.Initial },
		element.PropConfig{Attr: convert.Number, Reflect: true})
	element.StateField(cls, "count")
	element.Method(cls, "increment", func(c *Counter, _ ...any) (any, error) {
		c.count.Update(func(n int) int { return n + 1 })
		return c.count.Get(), nil
	})
	return cls
}()

// BeforeMount starts the count from the initial value.
func (c *Counter) BeforeMount() {
	c.count.Set(int(c.Initial))
}

func (c *Counter) Render() render.Content {
	return render.HTML("<button>%d</button>", c.count.Get())
}

// Clock is the clock used by Ticker elements created afterwards.
var Clock clockz.Clock = clockz.RealClock

// Ticker renders the time of its latest one-second tick.
type Ticker struct {
	core.Base
	now func() time.Time
}

// TickerClass declares Ticker.
var TickerClass = element.NewClass(func(ctrl *core.Controller) *Ticker {
	t := &Ticker{Base: core.NewBase(ctrl)}
	t.now = core.UseTimer(t, Clock, time.Second)
	return t
})

func (t *Ticker) Render() render.Content {
	return render.HTML("<time>%s</time>", t.now().UTC().Format(time.TimeOnly))
}
