// Package meta holds the per-class metadata registry: which properties,
// methods and state fields a component class declares, and how each property
// maps onto an attribute.
//
// Classes are identified by a [Key], normally the reflect.Type of the
// component. Descriptors are registered while the class is being declared
// and frozen by [Registry.Seal] when the element is defined; from then on the
// metadata is read-only and may be shared by every instance.
package meta

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-drift/elements/pkg/convert"
)

// ErrSealed is returned when registering on a class that is already defined.
var ErrSealed = errors.New("meta: class is sealed")

// Key identifies a component class.
type Key any

// PropertyConfig configures a declared property.
type PropertyConfig struct {
	// Attr is the attribute converter. A nil Attr declares a property with
	// no attribute.
	Attr convert.Converter
	// Reflect echoes property writes to the attribute.
	Reflect bool
}

// PropertyDescriptor describes a declared property.
type PropertyDescriptor struct {
	Name         string
	HasAttribute bool
	Attribute    string
	Reflect      bool
	Converter    convert.Converter
}

// MethodDescriptor describes a method exposed on the host element.
type MethodDescriptor struct {
	Name string
}

// FieldDescriptor describes a state field: a component-private value whose
// writes trigger a refresh.
type FieldDescriptor struct {
	Name string
}

// ClassMetadata is the ordered set of descriptors declared by one class.
type ClassMetadata struct {
	properties []*PropertyDescriptor
	byName     map[string]*PropertyDescriptor
	byAttr     map[string]*PropertyDescriptor
	methods    []MethodDescriptor
	fields     []FieldDescriptor
	sealed     bool
}

func newClassMetadata() *ClassMetadata {
	return &ClassMetadata{
		byName: make(map[string]*PropertyDescriptor),
		byAttr: make(map[string]*PropertyDescriptor),
	}
}

// Properties returns the property descriptors in declaration order.
func (m *ClassMetadata) Properties() []*PropertyDescriptor {
	if m == nil {
		return nil
	}
	return slices.Clone(m.properties)
}

// Property returns the descriptor of the named property.
func (m *ClassMetadata) Property(name string) (*PropertyDescriptor, bool) {
	if m == nil {
		return nil, false
	}
	d, ok := m.byName[name]
	return d, ok
}

// ByAttribute resolves the property bound to an attribute name.
func (m *ClassMetadata) ByAttribute(attr string) (*PropertyDescriptor, bool) {
	if m == nil {
		return nil, false
	}
	d, ok := m.byAttr[attr]
	return d, ok
}

// ObservedAttributes returns the attribute names of all attribute-backed
// properties, in declaration order.
func (m *ClassMetadata) ObservedAttributes() []string {
	if m == nil {
		return nil
	}
	var attrs []string
	for _, d := range m.properties {
		if d.HasAttribute {
			attrs = append(attrs, d.Attribute)
		}
	}
	return attrs
}

// Methods returns the exposed methods in declaration order.
func (m *ClassMetadata) Methods() []MethodDescriptor {
	if m == nil {
		return nil
	}
	return slices.Clone(m.methods)
}

// Method reports whether name is an exposed method.
func (m *ClassMetadata) Method(name string) bool {
	if m == nil {
		return false
	}
	return slices.ContainsFunc(m.methods, func(d MethodDescriptor) bool { return d.Name == name })
}

// Fields returns the registered state fields in declaration order.
func (m *ClassMetadata) Fields() []FieldDescriptor {
	if m == nil {
		return nil
	}
	return slices.Clone(m.fields)
}

// Sealed reports whether the class has been defined.
func (m *ClassMetadata) Sealed() bool {
	return m != nil && m.sealed
}

// Registry maps component classes to their metadata.
type Registry struct {
	mu      sync.RWMutex
	classes map[Key]*ClassMetadata
}

// Default is the process-wide registry used by package element.
var Default = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[Key]*ClassMetadata)}
}

// classLocked returns the metadata for class, creating it if needed.
func (r *Registry) classLocked(class Key) (*ClassMetadata, error) {
	m, ok := r.classes[class]
	if !ok {
		m = newClassMetadata()
		r.classes[class] = m
	}
	if m.sealed {
		return nil, fmt.Errorf("%w: %v", ErrSealed, class)
	}
	return m, nil
}

// Register adds a property to class, or overwrites an earlier registration
// of the same name in place. A nil cfg declares a property without an
// attribute.
func (r *Registry) Register(class Key, name string, cfg *PropertyConfig) error {
	if name == "" {
		return errors.New("meta: empty property name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.classLocked(class)
	if err != nil {
		return err
	}

	d := &PropertyDescriptor{Name: name}
	if cfg != nil && cfg.Attr != nil {
		d.HasAttribute = true
		d.Attribute = AttributeName(name)
		d.Reflect = cfg.Reflect
		d.Converter = cfg.Attr
	}

	if prev, ok := m.byName[name]; ok {
		if prev.HasAttribute {
			delete(m.byAttr, prev.Attribute)
		}
		i := slices.Index(m.properties, prev)
		m.properties[i] = d
	} else {
		m.properties = append(m.properties, d)
	}
	m.byName[name] = d
	if d.HasAttribute {
		m.byAttr[d.Attribute] = d
	}
	return nil
}

// RegisterMethod exposes a method of class on its host element.
func (r *Registry) RegisterMethod(class Key, name string) error {
	if name == "" {
		return errors.New("meta: empty method name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.classLocked(class)
	if err != nil {
		return err
	}
	if !m.Method(name) {
		m.methods = append(m.methods, MethodDescriptor{Name: name})
	}
	return nil
}

// RegisterField declares a state field of class.
func (r *Registry) RegisterField(class Key, name string) error {
	if name == "" {
		return errors.New("meta: empty field name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.classLocked(class)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(m.fields, func(d FieldDescriptor) bool { return d.Name == name }) {
		m.fields = append(m.fields, FieldDescriptor{Name: name})
	}
	return nil
}

// Descriptors returns the metadata of class. A class without registrations
// yields empty metadata.
func (r *Registry) Descriptors(class Key) *ClassMetadata {
	r.mu.RLock()
	m, ok := r.classes[class]
	r.mu.RUnlock()
	if !ok {
		return newClassMetadata()
	}
	return m
}

// Seal freezes class and returns its final metadata. Sealing twice is
// allowed and returns the same metadata.
func (r *Registry) Seal(class Key) *ClassMetadata {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.classes[class]
	if !ok {
		m = newClassMetadata()
		r.classes[class] = m
	}
	m.sealed = true
	return m
}
