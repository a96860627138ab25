package demos

import (
	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/meta"
	"github.com/go-drift/elements/pkg/platform"
)

// Tags of the demo elements.
const (
	SimpleCounterTag     = "simple-counter"
	SimpleCounterDemoTag = "simple-counter-demo"
	ClockDemoTag         = "clock-demo"
)

// Entry describes one demo class.
type Entry struct {
	Tag      string
	Metadata func() *meta.ClassMetadata
}

// Entries lists the demo classes in definition order.
func Entries() []Entry {
	return []Entry{
		{SimpleCounterTag, SimpleCounterClass.Metadata},
		{SimpleCounterDemoTag, SimpleCounterDemoClass.Metadata},
		{ClockDemoTag, ClockDemoClass.Metadata},
	}
}

// Define defines every demo element on p.
func Define(p platform.Platform) error {
	if err := element.Define(p, SimpleCounterClass, element.Options{Tag: SimpleCounterTag}); err != nil {
		return err
	}
	if err := element.Define(p, SimpleCounterDemoClass, element.Options{
		Tag:    SimpleCounterDemoTag,
		Styles: []string{"div { display: flex; gap: 1em }", "hr { width: 100% }"},
		Uses:   []string{SimpleCounterTag},
	}); err != nil {
		return err
	}
	return element.Define(p, ClockDemoClass, element.Options{Tag: ClockDemoTag})
}
