// Package convert defines the typed conversions between attribute strings and
// property values.
//
// An attribute is modelled as a (value, present) pair: present=false means
// the attribute does not exist on the element. ToAttr reports ok=false to
// request removal of the attribute.
package convert

import (
	"errors"
	"math"
	"reflect"
	"strconv"
)

// Converter maps property values to attribute strings and back.
type Converter interface {
	// ToAttr serializes a property value. ok=false removes the attribute.
	ToAttr(value any) (attr string, ok bool)
	// FromAttr deserializes an attribute. It never fails: malformed input is
	// coerced to a fallback value.
	FromAttr(attr string, present bool) any
}

// Typed is implemented by converters that know the Go type they produce.
type Typed interface {
	Type() reflect.Type
}

var (
	// String passes attribute text through unchanged. An absent attribute
	// converts to "".
	String Converter = stringConverter{}

	// Number stores float64 values. Text that does not parse converts to NaN.
	Number Converter = numberConverter{}

	// Boolean serializes to the literals "true" and "false". Only "true" and
	// the empty value of a valueless attribute convert to true. An explicit
	// attr="" cannot be told apart from a valueless attribute, so it is true
	// as well; every other value, and an absent attribute, is false.
	Boolean Converter = booleanConverter{}
)

type stringConverter struct{}

func (stringConverter) ToAttr(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case nil:
		return "", false
	default:
		return toString(v), true
	}
}

func (stringConverter) FromAttr(attr string, present bool) any {
	if !present {
		return ""
	}
	return attr
}

func (stringConverter) Type() reflect.Type { return reflect.TypeFor[string]() }

type numberConverter struct{}

func (numberConverter) ToAttr(value any) (string, bool) {
	f, ok := toFloat(value)
	if !ok {
		return "", false
	}
	return FormatNumber(f), true
}

func (numberConverter) FromAttr(attr string, present bool) any {
	if !present {
		return math.NaN()
	}
	return ParseNumber(attr)
}

func (numberConverter) Type() reflect.Type { return reflect.TypeFor[float64]() }

type booleanConverter struct{}

func (booleanConverter) ToAttr(value any) (string, bool) {
	b, _ := value.(bool)
	if b {
		return "true", true
	}
	return "false", true
}

func (booleanConverter) FromAttr(attr string, present bool) any {
	return present && (attr == "true" || attr == "")
}

func (booleanConverter) Type() reflect.Type { return reflect.TypeFor[bool]() }

// Func builds a typed custom converter. to may return ok=false to remove the
// attribute.
func Func[T any](to func(T) (string, bool), from func(attr string, present bool) T) Converter {
	return funcConverter[T]{to: to, from: from}
}

type funcConverter[T any] struct {
	to   func(T) (string, bool)
	from func(string, bool) T
}

func (c funcConverter[T]) ToAttr(value any) (string, bool) {
	v, ok := value.(T)
	if !ok {
		return "", false
	}
	return c.to(v)
}

func (c funcConverter[T]) FromAttr(attr string, present bool) any {
	return c.from(attr, present)
}

func (c funcConverter[T]) Type() reflect.Type { return reflect.TypeFor[T]() }

// FormatNumber renders f the way JavaScript's String(number) would for the
// common cases: integers without a fraction, NaN and the infinities spelled out.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ParseNumber parses the longest numeric prefix of s, ignoring leading
// whitespace. It returns NaN when no prefix parses.
func ParseNumber(s string) float64 {
	s = trimLeftSpace(s)
	switch {
	case hasPrefix(s, "Infinity"), hasPrefix(s, "+Infinity"):
		return math.Inf(1)
	case hasPrefix(s, "-Infinity"):
		return math.Inf(-1)
	}
	end := numericPrefix(s)
	if end == 0 {
		return math.NaN()
	}
	// Out-of-range literals come back as ±Inf or 0 with ErrRange, which is
	// the value we want.
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// numericPrefix returns the length of the leading run of characters that can
// belong to a decimal float literal.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := false
	for i < len(s) && isDigit(s[i]) {
		i++
		digits = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits = true
		}
	}
	if !digits {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func trimLeftSpace(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t' || s[0] == '\n' || s[0] == '\r' || s[0] == '\f') {
		s = s[1:]
	}
	return s
}

func toFloat(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func toString(value any) string {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case interface{ String() string }:
		return v.String()
	}
	if f, ok := toFloat(value); ok {
		return FormatNumber(f)
	}
	return ""
}
