package core

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/frame"
	"github.com/go-drift/elements/pkg/metrics"
	"github.com/go-drift/elements/pkg/notify"
	"github.com/go-drift/elements/pkg/render"
)

// LifecycleType selects the phase a lifecycle task subscribes to.
type LifecycleType int

const (
	// AfterMount tasks run after the first render of each mount.
	AfterMount LifecycleType = iota
	// AfterUpdate tasks run after every frame render.
	AfterUpdate
	// BeforeUnmount tasks run first on disconnect, while state is intact.
	BeforeUnmount
)

func (t LifecycleType) String() string {
	switch t {
	case AfterMount:
		return "afterMount"
	case AfterUpdate:
		return "afterUpdate"
	case BeforeUnmount:
		return "beforeUnmount"
	default:
		return "unknown"
	}
}

// Component is the contract between a controller and user logic. Embed
// Base to satisfy it.
type Component interface {
	Init()
	BeforeMount()
	AfterMount()
	AfterUpdate()
	BeforeUnmount()
	Render() render.Content

	base() *Base
}

// Config configures a Controller.
type Config struct {
	// Tag is the custom element tag name.
	Tag string
	// Host is the host element, returned by Controller.Host.
	Host any
	// Scheduler runs frame callbacks. It is required.
	Scheduler frame.Scheduler
	// Renderer patches Container. Defaults to render.Markup.
	Renderer render.Renderer
	// Container is the render target. It is required.
	Container render.Container
}

// Controller coordinates one host element and its component.
//
// Controller is NOT thread-safe. It must only be used from the goroutine
// that owns the host element.
type Controller struct {
	tag       string
	host      any
	scheduler frame.Scheduler
	renderer  render.Renderer
	container render.Container
	component Component

	constructing bool
	claimed      bool

	mounted         bool
	updateRequested bool
	renders         int

	mountNotifier   *notify.Notifier
	updateNotifier  *notify.Notifier
	unmountNotifier *notify.Notifier

	fields map[string]any
}

// NewController creates the controller of one host element. Element
// adapters call it; component code receives the controller in its factory.
func NewController(cfg Config) *Controller {
	if cfg.Scheduler == nil || cfg.Container == nil {
		panic("core: controller needs a scheduler and a container")
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = render.Markup{}
	}
	return &Controller{
		tag:       cfg.Tag,
		host:      cfg.Host,
		scheduler: cfg.Scheduler,
		renderer:  renderer,
		container: cfg.Container,
		fields:    make(map[string]any),
	}
}

// Construct builds the controller's component with factory. The factory must
// capture the controller through NewBase exactly once; anything else panics
// with *errors.ProtocolViolation.
func Construct[C Component](c *Controller, factory func(*Controller) C) C {
	if c.component != nil || c.claimed {
		panic(&errors.ProtocolViolation{Op: "core.Construct", Reason: "controller already owns a component"})
	}
	c.constructing = true
	comp := func() C {
		defer func() { c.constructing = false }()
		return factory(c)
	}()
	if b := comp.base(); b == nil || b.ctrl != c {
		panic(&errors.ProtocolViolation{Op: "core.Construct", Reason: "component did not capture its controller with NewBase"})
	}
	c.component = comp
	return comp
}

// Tag returns the custom element tag name.
func (c *Controller) Tag() string {
	return c.tag
}

// Host returns the host element.
func (c *Controller) Host() any {
	return c.host
}

// Component returns the constructed component, or nil during construction.
func (c *Controller) Component() Component {
	return c.component
}

// IsMounted reports whether the element is connected and rendered.
func (c *Controller) IsMounted() bool {
	return c.mounted
}

// UpdatePending reports whether a frame render is scheduled.
func (c *Controller) UpdatePending() bool {
	return c.updateRequested
}

// RenderCount returns the number of successful renders so far.
func (c *Controller) RenderCount() int {
	return c.renders
}

// Field returns the per-instance value stored for a state field.
func (c *Controller) Field(name string) (any, bool) {
	v, ok := c.fields[name]
	return v, ok
}

// FieldNames returns the names of the state fields created so far, sorted.
func (c *Controller) FieldNames() []string {
	return slices.Sorted(maps.Keys(c.fields))
}

// Refresh requests a render on the next frame. Requests made before the
// frame fires collapse into one render. Refresh does nothing while the
// element is unmounted.
func (c *Controller) Refresh() {
	if !c.mounted {
		return
	}
	if c.updateRequested {
		metrics.RefreshCoalesced.WithLabelValues(c.tag).Inc()
		return
	}
	c.updateRequested = true
	c.scheduler.RequestFrame(c.frame)
}

// Dispatch hands fn to the element's goroutine if the scheduler supports it.
func (c *Controller) Dispatch(fn func()) bool {
	if d, ok := c.scheduler.(frame.Dispatcher); ok {
		return d.Dispatch(fn)
	}
	return false
}

// AddLifecycleTask subscribes task to a lifecycle phase. Subscriptions are
// kept across remounts, so tasks must tolerate running more than once.
func (c *Controller) AddLifecycleTask(phase LifecycleType, task func()) {
	switch phase {
	case AfterMount:
		if c.mountNotifier == nil {
			c.mountNotifier = notify.New()
		}
		c.mountNotifier.Subscribe(task)
	case AfterUpdate:
		if c.updateNotifier == nil {
			c.updateNotifier = notify.New()
		}
		c.updateNotifier.Subscribe(task)
	case BeforeUnmount:
		if c.unmountNotifier == nil {
			c.unmountNotifier = notify.New()
		}
		c.unmountNotifier.Subscribe(task)
	}
}

// Mount runs the connect sequence: BeforeMount, a synchronous render, mark
// mounted, AfterMount tasks, AfterMount hook. A render failure aborts the
// sequence and leaves the element unmounted. Mounting a mounted element is a
// no-op.
func (c *Controller) Mount() error {
	if c.mounted {
		return nil
	}
	c.component.BeforeMount()
	if err := c.render("core.Controller.Mount"); err != nil {
		return err
	}
	c.mounted = true
	metrics.Mounts.WithLabelValues(c.tag).Inc()
	zap.S().Debugw("element mounted", "tag", c.tag)
	c.mountNotifier.Notify()
	c.component.AfterMount()
	return nil
}

// Unmount runs the disconnect sequence: BeforeUnmount tasks, BeforeUnmount
// hook, clear the rendered content, mark unmounted. A frame that is already
// scheduled is not cancelled; it finds the element unmounted and skips.
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.unmountNotifier.Notify()
	c.component.BeforeUnmount()
	c.container.Clear()
	c.mounted = false
	metrics.Unmounts.WithLabelValues(c.tag).Inc()
	zap.S().Debugw("element unmounted", "tag", c.tag)
}

// frame is the one-shot frame callback scheduled by Refresh.
func (c *Controller) frame() {
	c.updateRequested = false
	if !c.mounted {
		return
	}
	if err := c.render("core.Controller.frame"); err != nil {
		errors.Report(err)
		return
	}
	c.updateNotifier.Notify()
	c.component.AfterUpdate()
}

func (c *Controller) render(op string) *errors.ElementError {
	if err := c.renderer.Render(c.container, c.component.Render()); err != nil {
		return &errors.ElementError{
			Op:         op,
			Kind:       errors.KindRender,
			Tag:        c.tag,
			Err:        err,
			StackTrace: errors.CaptureStack(),
		}
	}
	c.renders++
	metrics.Renders.WithLabelValues(c.tag).Inc()
	return nil
}
