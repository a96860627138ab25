package element

import (
	"fmt"

	"github.com/go-drift/elements/pkg/core"
	"github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/meta"
	"github.com/go-drift/elements/pkg/metrics"
	"github.com/go-drift/elements/pkg/platform"
)

// Host is the custom element side of one component instance. It implements
// platform.Callbacks and proxies the declared properties and methods of the
// component.
//
// Host is NOT thread-safe, like the element it belongs to.
type Host struct {
	el   platform.Element
	def  *definition
	ctrl *core.Controller
	comp core.Component

	// reflecting is set while a property write echoes to its attribute.
	reflecting bool
}

var _ platform.Callbacks = (*Host)(nil)

// HostOf returns the host of an upgraded element, or nil.
func HostOf(el platform.Element) *Host {
	h, _ := el.Upgraded().(*Host)
	return h
}

// Element returns the native element.
func (h *Host) Element() platform.Element {
	return h.el
}

// Controller returns the element's controller.
func (h *Host) Controller() *core.Controller {
	return h.ctrl
}

// Component returns the component instance.
func (h *Host) Component() core.Component {
	return h.comp
}

// Metadata returns the sealed metadata of the element's class.
func (h *Host) Metadata() *meta.ClassMetadata {
	return h.def.meta
}

// Get reads a declared property.
func (h *Host) Get(name string) (any, error) {
	v, ok := h.def.cls.get(h.comp, name)
	if !ok {
		return nil, fmt.Errorf("element %s: no property %q", h.def.tag, name)
	}
	return v, nil
}

// Set writes a declared property and refreshes the element. A reflecting
// property also updates its attribute, or removes it when the converter
// produces no attribute value.
func (h *Host) Set(name string, value any) error {
	d, ok := h.def.meta.Property(name)
	if !ok {
		return fmt.Errorf("element %s: no property %q", h.def.tag, name)
	}
	if cerr := h.def.cls.set(h.comp, name, value); cerr != nil {
		return &errors.ElementError{Op: "element.Host.Set", Kind: errors.KindConversion, Tag: h.def.tag, Err: cerr}
	}
	if d.Reflect {
		v, _ := h.def.cls.get(h.comp, name)
		h.reflect(d, v)
	}
	h.ctrl.Refresh()
	return nil
}

// Call invokes a declared method.
func (h *Host) Call(name string, args ...any) (any, error) {
	out, ok, err := h.def.cls.call(h.comp, name, args)
	if !ok {
		return nil, fmt.Errorf("element %s: no method %q", h.def.tag, name)
	}
	return out, err
}

// Connected mounts the component.
func (h *Host) Connected() error {
	return h.ctrl.Mount()
}

// Disconnected unmounts the component.
func (h *Host) Disconnected() {
	h.ctrl.Unmount()
}

// AttributeChanged converts the new attribute value, assigns it to the bound
// property without echoing it back, and refreshes the element. Values that
// do not fit the property are reported and dropped.
func (h *Host) AttributeChanged(name, value string, present bool) {
	if h.reflecting {
		return
	}
	d, ok := h.def.meta.ByAttribute(name)
	if !ok {
		return
	}
	v := d.Converter.FromAttr(value, present)
	if cerr := h.def.cls.set(h.comp, d.Name, v); cerr != nil {
		cerr.Attribute = name
		metrics.ConversionErrors.WithLabelValues(h.def.tag).Inc()
		errors.Report(&errors.ElementError{
			Op:   "element.Host.AttributeChanged",
			Kind: errors.KindConversion,
			Tag:  h.def.tag,
			Err:  cerr,
		})
		return
	}
	h.ctrl.Refresh()
}

func (h *Host) reflect(d *meta.PropertyDescriptor, v any) {
	h.reflecting = true
	defer func() { h.reflecting = false }()
	if attr, ok := d.Converter.ToAttr(v); ok {
		h.el.SetAttribute(d.Attribute, attr)
	} else {
		h.el.RemoveAttribute(d.Attribute)
	}
}
