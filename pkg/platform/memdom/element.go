package memdom

import (
	"slices"

	"github.com/go-drift/elements/pkg/platform"
)

// Element is an in-memory platform.Element.
type Element struct {
	tag       string
	attrs     []Attr
	shadow    *ShadowRoot
	def       *definition
	callbacks platform.Callbacks
	connected bool
}

var _ platform.Element = (*Element)(nil)

// TagName returns the element's tag.
func (e *Element) TagName() string {
	return e.tag
}

// GetAttribute returns the attribute value and whether it is present.
func (e *Element) GetAttribute(name string) (string, bool) {
	i := e.indexOf(name)
	if i < 0 {
		return "", false
	}
	return e.attrs[i].Value, true
}

// SetAttribute sets name to value.
func (e *Element) SetAttribute(name, value string) {
	e.setAttr(name, value)
	if e.observes(name) {
		e.callbacks.AttributeChanged(name, value, true)
	}
}

// RemoveAttribute removes name if present.
func (e *Element) RemoveAttribute(name string) {
	i := e.indexOf(name)
	if i < 0 {
		return
	}
	e.attrs = slices.Delete(e.attrs, i, i+1)
	if e.observes(name) {
		e.callbacks.AttributeChanged(name, "", false)
	}
}

// Attributes returns a copy of the element's attributes in insertion order.
func (e *Element) Attributes() []Attr {
	return slices.Clone(e.attrs)
}

// AttachShadow attaches the shadow root. It panics when called twice, like
// attachShadow throwing NotSupportedError.
func (e *Element) AttachShadow() platform.ShadowRoot {
	if e.shadow != nil {
		panic("memdom: shadow root already attached to <" + e.tag + ">")
	}
	e.shadow = newShadowRoot()
	return e.shadow
}

// Shadow returns the attached shadow root, or nil.
func (e *Element) Shadow() *ShadowRoot {
	return e.shadow
}

// Upgraded implements platform.Element.
func (e *Element) Upgraded() platform.Callbacks {
	return e.callbacks
}

// IsConnected reports whether the element is in the document.
func (e *Element) IsConnected() bool {
	return e.connected
}

func (e *Element) observes(name string) bool {
	return e.callbacks != nil && e.def != nil && e.def.observed[name]
}

func (e *Element) setAttr(name, value string) {
	if i := e.indexOf(name); i >= 0 {
		e.attrs[i].Value = value
		return
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

func (e *Element) indexOf(name string) int {
	return slices.IndexFunc(e.attrs, func(a Attr) bool { return a.Name == name })
}
