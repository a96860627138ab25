package core

import "github.com/go-drift/elements/pkg/errors"

// State holds a state field of a component and refreshes the element
// whenever it changes. The value lives in the controller's per-instance
// storage under the field name.
//
// State is NOT thread-safe. It must only be accessed from the element's
// goroutine. To update from a background goroutine, use Controller.Dispatch:
//
//	go func() {
//	    result := doExpensiveWork()
//	    c.Controller().Dispatch(func() {
//	        c.data.Set(result)
//	    })
//	}()
//
// Example:
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
//	func (c *counter) Increment() {
//	    c.count.Update(func(n int) int { return n + 1 })
//	}
type State[T any] struct {
	ctrl *Controller
	name string
}

// NewState creates a state field with an initial value. Setting the
// initial value does not refresh.
func NewState[T any](c baseProvider, name string, initial T) *State[T] {
	ctrl := c.base().ctrl
	if ctrl == nil {
		panic(&errors.ProtocolViolation{Op: "core.NewState", Reason: "component has no controller; call NewBase first"})
	}
	ctrl.fields[name] = initial
	return &State[T]{ctrl: ctrl, name: name}
}

// Name returns the field name.
func (s *State[T]) Name() string {
	return s.name
}

// Get returns the current value.
func (s *State[T]) Get() T {
	v, _ := s.ctrl.fields[s.name].(T)
	return v
}

// Set updates the value and refreshes the element.
func (s *State[T]) Set(value T) {
	s.ctrl.fields[s.name] = value
	s.ctrl.Refresh()
}

// Update applies a transformation to the current value and refreshes the
// element.
func (s *State[T]) Update(transform func(T) T) {
	s.Set(transform(s.Get()))
}
