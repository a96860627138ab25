// Package core provides the component contract and the per-element
// controller that drives it.
//
// A custom element owns exactly one [Controller]. The controller bridges the
// host element's lifecycle to the component: it mounts and unmounts it,
// coalesces refresh requests into one render per frame, and fans lifecycle
// phases out to subscribers registered with AddLifecycleTask.
//
// # Components
//
// Embed [Base] in your component and build it from the controller passed to
// your factory:
//
//	type counter struct {
//	    core.Base
//	    count *core.State[int]
//	}
//
//	func newCounter(ctrl *core.Controller) *counter {
//	    c := &counter{Base: core.NewBase(ctrl)}
//	    c.count = core.NewState(c, "count", 0)
//	    return c
//	}
//
//	func (c *counter) Render() render.Content {
//	    return render.HTML("<button>%d</button>", c.count.Get())
//	}
//
// Base supplies no-op lifecycle hooks; override the ones you need. NewBase
// only succeeds while the controller is constructing its component, so
// components cannot be created outside an element.
//
// # Update cycle
//
// Refresh is a no-op until the element is mounted and while a frame is
// already pending. When the frame fires the controller renders, notifies
// AfterUpdate subscribers and calls the AfterUpdate hook, in that order.
// Mounting renders synchronously so the first paint is never deferred.
//
// # Hooks
//
// UseTimer shows how helpers attach behavior through lifecycle tasks
// instead of hook overrides.
//
// Components are NOT thread-safe. Use Controller.Dispatch to hand work from
// background goroutines to the element's goroutine.
package core
