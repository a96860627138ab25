// Package memdom is an in-memory host platform for custom elements.
//
// It models just enough of a browser document to drive elements headlessly:
// a custom element registry with upgrade of already created elements,
// observed-attribute callbacks, connect/disconnect, shadow roots and a frame
// scheduler. Like a browser main thread, a Document is not safe for
// concurrent use.
package memdom

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/go-drift/elements/pkg/frame"
	"github.com/go-drift/elements/pkg/platform"
)

// Attr is an attribute given at element creation, as if parsed from markup.
type Attr struct {
	Name  string
	Value string
}

// Document is an in-memory platform.Platform.
type Document struct {
	scheduler frame.Scheduler
	defs      map[string]*definition
	pending   map[string][]*Element
	reloads   int

	// OnReload is called by Reload after the reload counter is incremented.
	OnReload func()
}

type definition struct {
	platform.Definition
	observed map[string]bool
}

var (
	_ platform.Platform = (*Document)(nil)
	_ frame.Dispatcher  = (*Document)(nil)
)

// New creates a document that schedules frames on scheduler. A nil
// scheduler gets a fresh frame.Queue.
func New(scheduler frame.Scheduler) *Document {
	if scheduler == nil {
		scheduler = frame.NewQueue()
	}
	return &Document{
		scheduler: scheduler,
		defs:      make(map[string]*definition),
		pending:   make(map[string][]*Element),
	}
}

// Scheduler returns the frame scheduler of the document.
func (d *Document) Scheduler() frame.Scheduler {
	return d.scheduler
}

// RequestFrame implements frame.Scheduler.
func (d *Document) RequestFrame(callback func()) {
	d.scheduler.RequestFrame(callback)
}

// Dispatch implements frame.Dispatcher when the document's scheduler does.
func (d *Document) Dispatch(callback func()) bool {
	if disp, ok := d.scheduler.(frame.Dispatcher); ok {
		return disp.Dispatch(callback)
	}
	return false
}

// Define registers def and upgrades elements created with its tag before the
// definition existed. Connected ones receive Connected after the upgrade.
func (d *Document) Define(def platform.Definition) error {
	if def.Tag == "" || def.Construct == nil {
		return errors.New("memdom: definition needs a tag and a constructor")
	}
	if _, ok := d.defs[def.Tag]; ok {
		return fmt.Errorf("%w: %s", platform.ErrAlreadyDefined, def.Tag)
	}
	entry := &definition{Definition: def, observed: make(map[string]bool, len(def.ObservedAttributes))}
	for _, name := range def.ObservedAttributes {
		entry.observed[name] = true
	}
	d.defs[def.Tag] = entry

	waiting := d.pending[def.Tag]
	delete(d.pending, def.Tag)
	var errs []error
	for _, el := range waiting {
		d.upgrade(el, entry)
		if el.connected {
			errs = append(errs, el.callbacks.Connected())
		}
	}
	zap.S().Debugw("memdom element defined", "tag", def.Tag, "upgraded", len(waiting))
	return errors.Join(errs...)
}

// IsDefined implements platform.Platform.
func (d *Document) IsDefined(tag string) bool {
	_, ok := d.defs[tag]
	return ok
}

// Reload records a page reload. The document keeps its state; hosts that
// need a fresh page act on OnReload.
func (d *Document) Reload() {
	d.reloads++
	zap.S().Debugw("memdom reload", "count", d.reloads)
	if d.OnReload != nil {
		d.OnReload()
	}
}

// Reloads returns how often Reload was called.
func (d *Document) Reloads() int {
	return d.reloads
}

// CreateElement creates a detached element, as the parser would for
// <tag name="value" ...>. Defined tags are upgraded immediately and receive
// AttributeChanged for every observed attribute present in attrs.
func (d *Document) CreateElement(tag string, attrs ...Attr) *Element {
	el := &Element{tag: tag}
	for _, a := range attrs {
		el.setAttr(a.Name, a.Value)
	}
	if def, ok := d.defs[tag]; ok {
		d.upgrade(el, def)
	} else {
		d.pending[tag] = append(d.pending[tag], el)
	}
	return el
}

// Connect inserts el into the document.
func (d *Document) Connect(el *Element) error {
	if el.connected {
		return nil
	}
	el.connected = true
	if el.callbacks != nil {
		return el.callbacks.Connected()
	}
	return nil
}

// Disconnect removes el from the document.
func (d *Document) Disconnect(el *Element) {
	if !el.connected {
		return
	}
	el.connected = false
	if el.callbacks != nil {
		el.callbacks.Disconnected()
	}
}

func (d *Document) upgrade(el *Element, def *definition) {
	el.def = def
	el.callbacks = def.Construct(el)
	for _, a := range slices.Clone(el.attrs) {
		if def.observed[a.Name] {
			el.callbacks.AttributeChanged(a.Name, a.Value, true)
		}
	}
}
