package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/platform/memdom"
)

// Finder locates elements created by a Tester.
type Finder interface {
	// Evaluate returns the matching elements in creation order.
	Evaluate(elements []*memdom.Element) []*memdom.Element
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	elements []*memdom.Element
	finder   Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *memdom.Element {
	if len(r.elements) == 0 {
		panic(fmt.Sprintf("Finder found no elements: %s", r.description()))
	}
	return r.elements[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *memdom.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *memdom.Element {
	if index < 0 || index >= len(r.elements) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.elements), r.description()))
	}
	return r.elements[index]
}

// All returns all matches.
func (r FinderResult) All() []*memdom.Element {
	return r.elements
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.elements)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.elements) > 0
}

// Host returns the host of the first match. Panics if no matches.
func (r FinderResult) Host() *element.Host {
	return element.HostOf(r.First())
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// predicateFinder matches elements satisfying a predicate.
type predicateFinder struct {
	fn   func(*memdom.Element) bool
	desc string
}

func (f *predicateFinder) Evaluate(elements []*memdom.Element) []*memdom.Element {
	var out []*memdom.Element
	for _, el := range elements {
		if f.fn(el) {
			out = append(out, el)
		}
	}
	return out
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches elements satisfying fn.
func ByPredicate(fn func(*memdom.Element) bool, description string) Finder {
	return &predicateFinder{fn: fn, desc: description}
}

// ByTag returns a finder that matches elements by tag name.
func ByTag(tag string) Finder {
	return ByPredicate(func(el *memdom.Element) bool {
		return el.TagName() == tag
	}, fmt.Sprintf("ByTag(%q)", tag))
}

// ByAttribute returns a finder that matches elements whose attribute name
// has exactly value.
func ByAttribute(name, value string) Finder {
	return ByPredicate(func(el *memdom.Element) bool {
		v, ok := el.GetAttribute(name)
		return ok && v == value
	}, fmt.Sprintf("ByAttribute(%q, %q)", name, value))
}

// ByContent returns a finder that matches elements whose shadow markup
// contains substring.
func ByContent(substring string) Finder {
	return ByPredicate(func(el *memdom.Element) bool {
		root := el.Shadow()
		return root != nil && strings.Contains(root.Content(), substring)
	}, fmt.Sprintf("ByContent(%q)", substring))
}

// Connected returns a finder that matches elements in the document.
func Connected() Finder {
	return ByPredicate(func(el *memdom.Element) bool {
		return el.IsConnected()
	}, "Connected()")
}
