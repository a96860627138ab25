// Package demos holds the demo elements run by the elements command.
package demos

import (
	"go.uber.org/zap"

	"github.com/go-drift/elements/pkg/convert"
	"github.com/go-drift/elements/pkg/core"
	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/render"
)

// SimpleCounter is a labelled counter that starts at initial-count.
type SimpleCounter struct {
	core.Base
	InitialCount float64
	Label        string
	count        *core.State[int]
}

func newSimpleCounter(ctrl *core.Controller) *SimpleCounter {
	c := &SimpleCounter{Base: core.NewBase(ctrl), Label: "Counter"}
	c.count = core.NewState(c, "count", 0)
	return c
}

// SimpleCounterClass declares SimpleCounter.
var SimpleCounterClass = func() *element.Class[*SimpleCounter] {
	cls := element.NewClass(newSimpleCounter)
	element.Prop(cls, "initialCount", func(c *SimpleCounter) *float64 { return &c.InitialCount },
		element.PropConfig{Attr: convert.Number, Reflect: true})
	element.Prop(cls, "label", func(c *SimpleCounter) *string { return &c.Label },
		element.PropConfig{Attr: convert.String, Reflect: true})
	element.StateField(cls, "count")
	element.Method(cls, "reset", func(c *SimpleCounter, _ ...any) (any, error) {
		c.Reset()
		return nil, nil
	})
	element.Method(cls, "increment", func(c *SimpleCounter, _ ...any) (any, error) {
		c.Increment()
		return c.Count(), nil
	})
	return cls
}()

// Reset sets the count back to the initial count.
func (c *SimpleCounter) Reset() {
	c.count.Set(int(c.InitialCount))
}

// Increment adds one to the count.
func (c *SimpleCounter) Increment() {
	c.count.Update(func(n int) int { return n + 1 })
}

// Count returns the current count.
func (c *SimpleCounter) Count() int {
	return c.count.Get()
}

func (c *SimpleCounter) BeforeMount() {
	c.Reset()
}

func (c *SimpleCounter) AfterMount() {
	zap.S().Infow("mounted", "tag", c.TagName())
}

func (c *SimpleCounter) AfterUpdate() {
	zap.S().Infow("updated", "tag", c.TagName(), "count", c.Count())
}

func (c *SimpleCounter) BeforeUnmount() {
	zap.S().Infow("unmounting", "tag", c.TagName())
}

func (c *SimpleCounter) Render() render.Content {
	return render.HTML("<button>%s: %d</button>", c.Label, c.count.Get())
}

// SimpleCounterDemo lays out two counters and a reset button.
type SimpleCounterDemo struct {
	core.Base
}

// SimpleCounterDemoClass declares SimpleCounterDemo.
var SimpleCounterDemoClass = element.NewClass(func(ctrl *core.Controller) *SimpleCounterDemo {
	return &SimpleCounterDemo{Base: core.NewBase(ctrl)}
})

func (d *SimpleCounterDemo) Render() render.Content {
	return render.HTML(`<div><simple-counter label="Counter 1"></simple-counter><button>Reset</button><hr><simple-counter initial-count="100" label="Counter 2 (starting with 100)"></simple-counter></div>`)
}
