package core

import (
	"github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/render"
)

// baseProvider is satisfied by any struct that embeds Base.
// Hooks and NewState accept baseProvider so callers can pass c directly.
type baseProvider interface {
	base() *Base
}

func (b *Base) base() *Base { return b }

// Base provides the controller handle and default lifecycle hooks of a
// component. Embed this struct in your component and initialize it with
// NewBase.
//
// Example:
//
//	type greeting struct {
//	    core.Base
//	    name string
//	}
//
//	func newGreeting(ctrl *core.Controller) *greeting {
//	    return &greeting{Base: core.NewBase(ctrl), name: "World"}
//	}
type Base struct {
	ctrl *Controller
}

// NewBase captures ctrl for a component under construction. It panics with
// *errors.ProtocolViolation unless ctrl is constructing its component and
// has not been captured yet.
func NewBase(ctrl *Controller) Base {
	if ctrl == nil || !ctrl.constructing {
		panic(&errors.ProtocolViolation{
			Op:     "core.NewBase",
			Reason: "components can only be constructed by their element; register the class with element.Define",
		})
	}
	if ctrl.claimed {
		panic(&errors.ProtocolViolation{Op: "core.NewBase", Reason: "controller already captured by another component"})
	}
	ctrl.claimed = true
	return Base{ctrl: ctrl}
}

// Controller returns the controller of this component.
func (b *Base) Controller() *Controller {
	return b.ctrl
}

// TagName returns the tag of the host element.
func (b *Base) TagName() string {
	return b.ctrl.Tag()
}

// Host returns the host element.
func (b *Base) Host() any {
	return b.ctrl.Host()
}

// IsMounted reports whether the host element is mounted.
func (b *Base) IsMounted() bool {
	return b.ctrl.IsMounted()
}

// Refresh schedules a render on the next frame.
func (b *Base) Refresh() {
	b.ctrl.Refresh()
}

// AddLifecycleTask subscribes task to a lifecycle phase.
func (b *Base) AddLifecycleTask(phase LifecycleType, task func()) {
	b.ctrl.AddLifecycleTask(phase, task)
}

// Init is a no-op default implementation.
// It runs once, right after construction.
func (b *Base) Init() {}

// BeforeMount is a no-op default implementation.
func (b *Base) BeforeMount() {}

// AfterMount is a no-op default implementation.
func (b *Base) AfterMount() {}

// AfterUpdate is a no-op default implementation.
func (b *Base) AfterUpdate() {}

// BeforeUnmount is a no-op default implementation.
func (b *Base) BeforeUnmount() {}

// Render is a default implementation that renders nothing.
// Override this method to produce your element's content.
func (b *Base) Render() render.Content {
	return nil
}
