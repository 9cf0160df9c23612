// Package cluster defines cluster identifiers, attribute values and the
// metadata and metric collaborators the colour selector reads from.
package cluster

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// ID identifies a cluster for the lifetime of a session.
type ID int

// Kind tags the content of a Value.
type Kind int

const (
	// KindMissing marks the absence of a value.
	KindMissing Kind = iota
	// KindNumber holds a float64.
	KindNumber
	// KindLabel holds a string.
	KindLabel
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindLabel:
		return "label"
	default:
		return "missing"
	}
}

// Value is an attribute value bound to a cluster and a field. The zero Value
// is Missing.
type Value struct {
	kind  Kind
	num   float64
	label string
}

// Missing returns the missing-value marker.
func Missing() Value { return Value{} }

// Number returns a numeric value; NaN is treated as Missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

// Label returns a string-label value; the empty label is treated as Missing.
func Label(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: KindLabel, label: s}
}

// ValueOf converts an arbitrary Go value, as handed out by metadata providers.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Missing()
	case Value:
		return x
	case ID:
		return Number(float64(x))
	case string:
		return Label(x)
	case fmt.Stringer:
		return Label(x.String())
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	case reflect.Bool:
		if rv.Bool() {
			return Number(1)
		}
		return Number(0)
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Missing()
		}
		return ValueOf(rv.Elem().Interface())
	}
	return Label(fmt.Sprint(v))
}

// ParseValue interprets a text cell: empty is Missing, numbers are numbers,
// anything else is a label.
func ParseValue(s string) Value {
	if s == "" {
		return Missing()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	return Label(s)
}

// Kind returns the tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is the missing marker.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric content and whether v is a number.
func (v Value) Float() (float64, bool) { return v.num, v.kind == KindNumber }

// Text returns the label content and whether v is a label.
func (v Value) Text() (string, bool) { return v.label, v.kind == KindLabel }

// Index returns the value as a non-negative integer, if it is one.
func (v Value) Index() (int, bool) {
	if v.kind != KindNumber || v.num < 0 || v.num != math.Trunc(v.num) || v.num > math.MaxInt32 {
		return 0, false
	}
	return int(v.num), true
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindLabel:
		return v.label
	default:
		return "<missing>"
	}
}
