// Package element turns components into custom elements.
//
// A class is declared once, usually in a package-level var, then defined on
// a platform under a tag:
//
//	var counterClass = func() *element.Class[*counter] {
//	    cls := element.NewClass(newCounter)
//	    element.Prop(cls, "initialCount", func(c *counter) *float64 { return &c.initial },
//	        element.PropConfig{Attr: convert.Number, Reflect: true})
//	    element.StateField(cls, "count")
//	    element.Method(cls, "reset", func(c *counter, _ ...any) (any, error) {
//	        c.reset()
//	        return nil, nil
//	    })
//	    return cls
//	}()
//
//	err := element.Define(doc, counterClass, element.Options{Tag: "simple-counter"})
//
// State fields declared with StateField must be exactly the ones the factory
// creates with core.NewState; construction panics otherwise.
//
// Define seals the class metadata. Every element created with the tag gets a
// [Host]: it attaches the shadow root, builds the controller, constructs the
// component and translates the native callbacks (connect, disconnect,
// attribute change) into controller operations.
//
// # Properties and attributes
//
// A property declared with a converter observes the attribute derived from
// its name (initialCount observes initial-count). Attribute changes convert
// the text, assign the property and refresh the element. Writes through
// Host.Set also refresh, and additionally echo the value to the attribute
// when the property reflects.
//
// Defining a tag twice is not an error. Host registries cannot forget a
// definition, so Define forces a platform reload instead.
package element
