package element

import (
	"fmt"
	"reflect"

	"github.com/go-drift/elements/pkg/convert"
	"github.com/go-drift/elements/pkg/core"
	"github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/meta"
)

// PropConfig configures a declared property.
type PropConfig struct {
	// Attr converts between the property and its attribute. A nil Attr
	// declares a property that has no attribute.
	Attr convert.Converter
	// Reflect echoes Host.Set writes to the attribute.
	Reflect bool
}

// Class is the declaration of a component class: its factory and the
// accessors of its declared properties and methods. Metadata goes to
// meta.Default, keyed by the component type.
type Class[C core.Component] struct {
	key      meta.Key
	registry *meta.Registry
	factory  func(*core.Controller) C
	props    map[string]binding[C]
	methods  map[string]func(C, ...any) (any, error)
}

type binding[C any] struct {
	typ reflect.Type
	get func(C) any
	set func(C, any) bool
}

// NewClass starts the declaration of the component class built by factory.
//
// Metadata is keyed by the Go type C, so one component type is one class:
// a second NewClass for the same type shares the first one's descriptors,
// and once either has been defined its Prop, StateField and Method calls
// panic with meta.ErrSealed. Declare each class once, in a package-level var.
func NewClass[C core.Component](factory func(*core.Controller) C) *Class[C] {
	if factory == nil {
		panic("element: nil factory")
	}
	return &Class[C]{
		key:      reflect.TypeFor[C](),
		registry: meta.Default,
		factory:  factory,
		props:    make(map[string]binding[C]),
		methods:  make(map[string]func(C, ...any) (any, error)),
	}
}

// Key returns the metadata key of the class.
func (c *Class[C]) Key() meta.Key {
	return c.key
}

// Metadata returns the class metadata registered so far.
func (c *Class[C]) Metadata() *meta.ClassMetadata {
	return c.registry.Descriptors(c.key)
}

// Prop declares a property backed by the component field returned by field.
// Declaring a name twice replaces the earlier declaration. Prop panics once
// the class has been defined.
func Prop[C core.Component, T any](cls *Class[C], name string, field func(C) *T, cfg PropConfig) {
	var pc *meta.PropertyConfig
	if cfg.Attr != nil {
		pc = &meta.PropertyConfig{Attr: cfg.Attr, Reflect: cfg.Reflect}
	}
	if err := cls.registry.Register(cls.key, name, pc); err != nil {
		panic(fmt.Sprintf("element: property %s: %v", name, err))
	}
	cls.props[name] = binding[C]{
		typ: reflect.TypeFor[T](),
		get: func(c C) any { return *field(c) },
		set: func(c C, v any) bool {
			t, ok := assign[T](v)
			if ok {
				*field(c) = t
			}
			return ok
		},
	}
}

// StateField declares a state field. The component holds it as a
// core.State created with the same name.
func StateField[C core.Component](cls *Class[C], name string) {
	if err := cls.registry.RegisterField(cls.key, name); err != nil {
		panic(fmt.Sprintf("element: state field %s: %v", name, err))
	}
}

// Method exposes fn on the host element under name.
func Method[C core.Component](cls *Class[C], name string, fn func(C, ...any) (any, error)) {
	if fn == nil {
		panic("element: nil method " + name)
	}
	if err := cls.registry.RegisterMethod(cls.key, name); err != nil {
		panic(fmt.Sprintf("element: method %s: %v", name, err))
	}
	cls.methods[name] = fn
}

func (c *Class[C]) construct(ctrl *core.Controller) core.Component {
	return core.Construct(ctrl, c.factory)
}

func (c *Class[C]) get(comp core.Component, name string) (any, bool) {
	b, ok := c.props[name]
	if !ok {
		return nil, false
	}
	return b.get(comp.(C)), true
}

func (c *Class[C]) set(comp core.Component, name string, v any) *errors.ConversionError {
	b, ok := c.props[name]
	if !ok {
		return &errors.ConversionError{Property: name, Want: "declared property", Got: v}
	}
	if !b.set(comp.(C), v) {
		return &errors.ConversionError{Property: name, Want: b.typ.String(), Got: v}
	}
	return nil
}

func (c *Class[C]) call(comp core.Component, name string, args []any) (any, bool, error) {
	fn, ok := c.methods[name]
	if !ok {
		return nil, false, nil
	}
	out, err := fn(comp.(C), args...)
	return out, true, err
}

// class is the type-erased view of a Class used by Host.
type class interface {
	construct(ctrl *core.Controller) core.Component
	get(comp core.Component, name string) (any, bool)
	set(comp core.Component, name string, v any) *errors.ConversionError
	call(comp core.Component, name string, args []any) (any, bool, error)
}

// assign converts v to T. nil assigns the zero value; numeric kinds convert
// between each other but never to strings.
func assign[T any](v any) (T, bool) {
	var zero T
	if t, ok := v.(T); ok {
		return t, true
	}
	if v == nil {
		return zero, true
	}
	rv := reflect.ValueOf(v)
	want := reflect.TypeFor[T]()
	if want.Kind() == reflect.String && rv.Kind() != reflect.String {
		return zero, false
	}
	if !rv.Type().ConvertibleTo(want) {
		return zero, false
	}
	return rv.Convert(want).Interface().(T), true
}
