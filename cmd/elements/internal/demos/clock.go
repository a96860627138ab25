package demos

import (
	"time"

	"github.com/zoobzio/clockz"

	"github.com/go-drift/elements/pkg/convert"
	"github.com/go-drift/elements/pkg/core"
	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/render"
)

// Clock drives ClockDemo timers created afterwards.
var Clock clockz.Clock = clockz.RealClock

// ClockDemo shows the time of its latest one-second tick.
type ClockDemo struct {
	core.Base
	Label string
	now   func() time.Time
}

// ClockDemoClass declares ClockDemo.
var ClockDemoClass = func() *element.Class[*ClockDemo] {
	cls := element.NewClass(func(ctrl *core.Controller) *ClockDemo {
		c := &ClockDemo{Base: core.NewBase(ctrl), Label: "Current time"}
		c.now = core.UseTimer(c, Clock, time.Second)
		return c
	})
	element.Prop(cls, "label", func(c *ClockDemo) *string { return &c.Label },
		element.PropConfig{Attr: convert.String})
	return cls
}()

func (c *ClockDemo) Render() render.Content {
	return render.HTML("<div>%s: %s</div>", c.Label, c.now().Format(time.TimeOnly))
}
