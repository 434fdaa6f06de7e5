// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

// ToValue converts a native Go value into a Value. It accepts the types
// produced by the standard JSON and YAML decoders: nil, bool, string, the
// built-in integer and float types, json.Number, []any, and map[string]any.
// A Value passes through unchanged, []Value converts to an Array, and
// []*Member to an Object, so ordered pair lists are accepted directly.
//
// Because Go maps are unordered, members converted from a map are ordered
// by key, making the conversion deterministic. ToValue reports an error
// for any type it does not recognize.
func ToValue(v any) (Value, error) {
	switch t := v.(type) {
	case Value:
		return t, nil
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		if t > math.MaxInt64 {
			return Float(float64(t)), nil
		}
		return Int(int64(t)), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case json.Number:
		if z, err := t.Int64(); err == nil {
			return Int(z), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", t, err)
		}
		return Float(f), nil
	case []Value:
		return Array(t), nil
	case []*Member:
		return Object(t), nil
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			w, err := ToValue(elt)
			if err != nil {
				return nil, err
			}
			out[i] = w
		}
		return out, nil
	case map[string]any:
		out := make(Object, 0, len(t))
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			w, err := ToValue(t[key])
			if err != nil {
				return nil, err
			}
			out = append(out, Field(key, w))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to a value", v)
	}
}

// Native converts v into plain Go data: objects become map[string]any,
// arrays become []any, and scalars become nil, bool, string, int64, or
// float64. When an object holds duplicate keys, the first member wins,
// matching the lookup rule. Missing and unrecognized values become nil.
func Native(v Value) any {
	switch t := v.(type) {
	case Null:
		return nil
	case Bool:
		return bool(t)
	case Number:
		if t.IsInt() {
			return t.Int64()
		}
		return t.Float64()
	case String:
		return string(t)
	case Array:
		out := make([]any, len(t))
		for i, elt := range t {
			out[i] = Native(elt)
		}
		return out
	case Object:
		out := make(map[string]any, len(t))
		for _, m := range t {
			if _, ok := out[m.Key]; !ok {
				out[m.Key] = Native(m.Value)
			}
		}
		return out
	default:
		return nil
	}
}
