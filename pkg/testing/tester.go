package testing

import (
	"errors"
	"slices"
	"testing"

	"github.com/zoobzio/clockz"

	"github.com/go-drift/elements/pkg/element"
	elerrors "github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/frame"
	"github.com/go-drift/elements/pkg/platform/memdom"
)

// MaxSettleFrames bounds PumpAndSettle.
const MaxSettleFrames = 100

// ErrSettleTimeout is returned when PumpAndSettle exceeds MaxSettleFrames.
var ErrSettleTimeout = errors.New("PumpAndSettle: elements kept requesting frames")

// Tester drives custom elements on an in-memory document whose frames run
// only when pumped. While a tester is active it is the global error
// handler, so reported errors can be asserted with Errors.
type Tester struct {
	doc         *memdom.Document
	queue       *frame.Queue
	clock       *clockz.FakeClock
	elements    []*memdom.Element
	errs        []*elerrors.ElementError
	panics      []*elerrors.PanicError
	prevHandler elerrors.ErrorHandler
}

// NewTester creates a tester with an empty document.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester() *Tester {
	q := frame.NewQueue()
	t := &Tester{
		doc:   memdom.New(q),
		queue: q,
		clock: clockz.NewFakeClock(),
	}
	t.prevHandler = elerrors.SetHandler(t)
	return t
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup disconnects the elements still connected and restores the
// previous error handler.
func (t *Tester) Cleanup() {
	for _, el := range t.elements {
		t.doc.Disconnect(el)
	}
	t.elements = nil
	elerrors.SetHandler(t.prevHandler)
}

// Document returns the tester's document. Define classes on it.
func (t *Tester) Document() *memdom.Document {
	return t.doc
}

// Queue returns the frame queue behind the document.
func (t *Tester) Queue() *frame.Queue {
	return t.queue
}

// Clock returns the fake clock for timer-driven components.
func (t *Tester) Clock() *clockz.FakeClock {
	return t.clock
}

// Create creates a detached element, as markup <tag attrs...> would.
func (t *Tester) Create(tag string, attrs ...memdom.Attr) *memdom.Element {
	el := t.doc.CreateElement(tag, attrs...)
	t.elements = append(t.elements, el)
	return el
}

// Mount creates an element and connects it.
func (t *Tester) Mount(tag string, attrs ...memdom.Attr) (*memdom.Element, error) {
	el := t.Create(tag, attrs...)
	return el, t.Connect(el)
}

// Connect inserts el into the document.
func (t *Tester) Connect(el *memdom.Element) error {
	if !slices.Contains(t.elements, el) {
		t.elements = append(t.elements, el)
	}
	return t.doc.Connect(el)
}

// Disconnect removes el from the document.
func (t *Tester) Disconnect(el *memdom.Element) {
	t.doc.Disconnect(el)
}

// Host returns the element host of el, or nil if el is not upgraded.
func (t *Tester) Host(el *memdom.Element) *element.Host {
	return element.HostOf(el)
}

// Elements returns the elements created through the tester.
func (t *Tester) Elements() []*memdom.Element {
	return slices.Clone(t.elements)
}

// Pump runs one frame: dispatched tasks first, then the frame callbacks
// requested before the frame began. It returns the number of frame
// callbacks run.
func (t *Tester) Pump() int {
	return t.queue.Flush()
}

// PumpAndSettle pumps until no frame or task is pending.
// Returns ErrSettleTimeout after MaxSettleFrames frames.
func (t *Tester) PumpAndSettle() error {
	for range MaxSettleFrames {
		if !t.needsWork() {
			return nil
		}
		t.Pump()
	}
	if t.needsWork() {
		return ErrSettleTimeout
	}
	return nil
}

func (t *Tester) needsWork() bool {
	return t.queue.Pending() > 0 || t.queue.PendingTasks() > 0
}

// Find evaluates a finder against the elements created by the tester.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{
		elements: finder.Evaluate(t.elements),
		finder:   finder,
	}
}

// Errors returns the element errors reported while the tester was active.
func (t *Tester) Errors() []*elerrors.ElementError {
	return slices.Clone(t.errs)
}

// Panics returns the panics reported while the tester was active.
func (t *Tester) Panics() []*elerrors.PanicError {
	return slices.Clone(t.panics)
}

// HandleError implements errors.ErrorHandler.
func (t *Tester) HandleError(err *elerrors.ElementError) {
	t.errs = append(t.errs, err)
}

// HandlePanic implements errors.ErrorHandler.
func (t *Tester) HandlePanic(err *elerrors.PanicError) {
	t.panics = append(t.panics, err)
}
