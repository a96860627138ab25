// Package errors provides structured error handling for custom elements.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindProtocol indicates structural misuse of the component API.
	KindProtocol
	// KindConversion indicates an attribute value that could not be assigned
	// to its property.
	KindConversion
	// KindDuplicate indicates a tag name that was already defined.
	KindDuplicate
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindDefine indicates an invalid element definition.
	KindDefine
)

func (k ErrorKind) String() string {
	switch k {
	case KindProtocol:
		return "protocol"
	case KindConversion:
		return "conversion"
	case KindDuplicate:
		return "duplicate"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindDefine:
		return "define"
	default:
		return "unknown"
	}
}

// ElementError represents a structured error raised while defining or
// driving a custom element.
type ElementError struct {
	// Op is the operation that failed (e.g., "core.Controller.Mount").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Tag is the custom element tag name, if applicable.
	Tag string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ElementError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("%s [%s] tag=%s: %v", e.Op, e.Kind, e.Tag, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// ProtocolViolation is panicked when a component is constructed outside the
// construction handshake of its controller. It signals a programming error,
// not a runtime condition.
type ProtocolViolation struct {
	// Op is the operation that detected the violation.
	Op string
	// Reason describes what was misused.
	Reason string
}

func (e *ProtocolViolation) Error() string {
	return fmt.Sprintf("protocol violation in %s: %s", e.Op, e.Reason)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "frame.Loop.runFrames").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ConversionError describes an attribute value whose converted form cannot be
// stored in the target property.
type ConversionError struct {
	// Attribute is the attribute name.
	Attribute string
	// Property is the property the value was meant for.
	Property string
	// Want is the property's Go type.
	Want string
	// Got is the converted value.
	Got any
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot assign attribute %s to property %s: want %s, got %T", e.Attribute, e.Property, e.Want, e.Got)
}

// ErrorHandler receives errors reported by the framework.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ElementError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
