// Package platform defines the host platform that custom elements run on.
//
// The element adapter depends on exactly four host capabilities: element
// definition registration, observed-attribute declaration (part of the
// [Definition]), shadow-tree attachment and per-frame scheduling. Package
// memdom implements them in memory; a browser binding implements the same
// interfaces over the real DOM.
package platform

import (
	"errors"

	"github.com/go-drift/elements/pkg/frame"
	"github.com/go-drift/elements/pkg/render"
)

// ErrAlreadyDefined is returned by Define for a tag that already has a
// definition. Host registries are immutable once a tag is defined.
var ErrAlreadyDefined = errors.New("platform: tag already defined")

// Platform is the host element registry plus its frame scheduler.
type Platform interface {
	frame.Scheduler

	// Define registers a custom element. Elements with this tag that already
	// exist are upgraded.
	Define(def Definition) error
	// IsDefined reports whether tag has a definition.
	IsDefined(tag string) bool
	// Reload discards the running page. It is the recovery path for
	// redefining a tag.
	Reload()
}

// Definition describes a custom element to the host.
type Definition struct {
	Tag string
	// ObservedAttributes lists the attributes whose changes are delivered to
	// Callbacks.AttributeChanged.
	ObservedAttributes []string
	// Construct is called once per element instance when it is upgraded.
	Construct func(el Element) Callbacks
}

// Callbacks are the native lifecycle entry points of an upgraded element.
type Callbacks interface {
	// Connected runs when the element is inserted into a document.
	Connected() error
	// Disconnected runs when the element is removed from its document.
	Disconnected()
	// AttributeChanged runs when an observed attribute is set or removed.
	// present is false after removal.
	AttributeChanged(name, value string, present bool)
}

// Element is a native host element.
type Element interface {
	TagName() string
	GetAttribute(name string) (value string, ok bool)
	// SetAttribute sets an attribute, delivering AttributeChanged for
	// observed attributes.
	SetAttribute(name, value string)
	// RemoveAttribute removes an attribute, delivering AttributeChanged for
	// observed attributes that were present.
	RemoveAttribute(name string)
	// AttachShadow attaches an open shadow root. It may be called once.
	AttachShadow() ShadowRoot
	// Upgraded returns the callbacks of a constructed custom element, or nil.
	Upgraded() Callbacks
}

// ShadowRoot is an isolated rendering boundary. It is itself a render
// container.
type ShadowRoot interface {
	render.Container
	// AppendStyle appends a <style> element with the given text.
	AppendStyle(css string)
	// AppendContainer appends a child container element and returns it.
	AppendContainer() render.Container
}
