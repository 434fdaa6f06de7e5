// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package value defines the JSON value model used by the jpath engine: a
// tagged union of null, Boolean, number, string, array, and object values.
// Object members are an ordered sequence, and member keys are not required
// to be unique; a key lookup is a linear scan that returns the first member
// with a matching key, so later duplicates are shadowed but never erased.
package value

import (
	"strconv"
	"strings"

	"github.com/creachadair/jpath/internal/escape"
	"go4.org/mem"
)

// A Value is a single JSON value. All the concrete types in this package
// satisfy Value, as does Missing, which marks the absence of a value.
type Value interface {
	// Kind reports the structural kind of the value.
	Kind() Kind

	// JSON returns a compact JSON rendering of the value.
	JSON() string

	// String returns a human-readable rendering of the value.
	String() string
}

// A Kind classifies the structure of a value. The zero Kind is invalid.
type Kind byte

const (
	KindInvalid Kind = iota // not a JSON value (e.g. Missing)
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindText = map[Kind]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindBool:    "boolean",
	KindNumber:  "number",
	KindString:  "string",
	KindArray:   "array",
	KindObject:  "object",
}

func (k Kind) String() string {
	if s, ok := kindText[k]; ok {
		return s
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Missing is the result of a lookup that matched nothing. It is distinct
// from Null, which represents an explicit JSON null in the document.
// Missing is filtered out during evaluation and never appears among the
// results delivered to the caller.
var Missing Value = missing{}

type missing struct{}

func (missing) Kind() Kind     { return KindInvalid }
func (missing) JSON() string   { return "" } // no JSON encoding exists
func (missing) String() string { return "missing" }

// Null is the JSON null value.
type Null struct{}

func (Null) Kind() Kind     { return KindNull }
func (Null) JSON() string   { return "null" }
func (Null) String() string { return "null" }

// Bool is a JSON truth value.
type Bool bool

func (b Bool) Kind() Kind     { return KindBool }
func (b Bool) JSON() string   { return strconv.FormatBool(bool(b)) }
func (b Bool) String() string { return b.JSON() }

// A Number is a JSON number. It records whether it was constructed from an
// integer, so that integer values render without a fractional part.
type Number struct {
	isInt bool
	i     int64
	f     float64
}

// Int returns a Number holding the integer z.
func Int(z int64) Number { return Number{isInt: true, i: z} }

// Float returns a Number holding the floating-point value f.
func Float(f float64) Number { return Number{f: f} }

// IsInt reports whether n holds an integer value.
func (n Number) IsInt() bool { return n.isInt }

// Int64 returns the value of n truncated to an integer.
func (n Number) Int64() int64 {
	if n.isInt {
		return n.i
	}
	return int64(n.f)
}

// Float64 returns the value of n as a float64.
func (n Number) Float64() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

func (n Number) Kind() Kind { return KindNumber }

func (n Number) JSON() string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

func (n Number) String() string { return n.JSON() }

// A String is a JSON string. The Go string value is the decoded text; use
// JSON to obtain its quoted wire form.
type String string

func (s String) Kind() Kind { return KindString }

func (s String) JSON() string {
	buf := make([]byte, 1, len(s)+2)
	buf[0] = '"'
	buf = escape.Quote(buf, mem.S(string(s)))
	return string(append(buf, '"'))
}

func (s String) String() string { return string(s) }

// An Array is an ordered sequence of values.
type Array []Value

func (a Array) Kind() Kind { return KindArray }

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) String() string { return a.JSON() }

// An Object is an ordered sequence of key/value members. Keys are not
// required to be unique; Find and the evaluation engine treat the first
// member with a given key as authoritative.
type Object []*Member

// A Member is a single key/value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, v Value) *Member { return &Member{Key: key, Value: v} }

func (o Object) Kind() Kind { return KindObject }

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o whose key equals key, or nil if no
// such member exists. Later members with the same key are shadowed.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(String(m.Key).JSON())
		sb.WriteByte(':')
		sb.WriteString(m.Value.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o Object) String() string { return o.JSON() }

// Truthy reports the truth value of v as used by filter predicates: null,
// false, zero numbers, and empty strings, arrays, and objects are false,
// and every other value of the model is true. Missing, nil, and values
// outside this package's model are false.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Bool:
		return bool(t)
	case Number:
		return t.Float64() != 0
	case String:
		return t != ""
	case Array:
		return len(t) != 0
	case Object:
		return len(t) != 0
	default:
		return false
	}
}

// Equal reports whether a and b are structurally equal: the same kind with
// equal contents, comparing array elements and object members pairwise in
// order. Numbers compare by numeric value, so Int(1) equals Float(1).
func Equal(a, b Value) bool {
	switch t := a.(type) {
	case nil:
		return b == nil
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		u, ok := b.(Bool)
		return ok && t == u
	case Number:
		u, ok := b.(Number)
		return ok && numEqual(t, u)
	case String:
		u, ok := b.(String)
		return ok && t == u
	case Array:
		u, ok := b.(Array)
		if !ok || len(t) != len(u) {
			return false
		}
		for i, v := range t {
			if !Equal(v, u[i]) {
				return false
			}
		}
		return true
	case Object:
		u, ok := b.(Object)
		if !ok || len(t) != len(u) {
			return false
		}
		for i, m := range t {
			if m.Key != u[i].Key || !Equal(m.Value, u[i].Value) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func numEqual(a, b Number) bool {
	if a.isInt && b.isInt {
		return a.i == b.i
	}
	return a.Float64() == b.Float64()
}
