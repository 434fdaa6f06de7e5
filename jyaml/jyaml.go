// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jyaml reads YAML documents into the value representation used
// by the query evaluator.
//
// YAML mappings preserve their written key order, so queries see members
// in the same order as in the source text, as they do for JSON input.
package jyaml

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/creachadair/jpath/value"
	"github.com/goccy/go-yaml"
)

// Parse reads a single YAML document from r.
func Parse(r io.Reader) (value.Value, error) {
	var raw any
	if err := yaml.NewDecoder(r, yaml.UseOrderedMap()).Decode(&raw); err != nil {
		return nil, err
	}
	return fromYAML(raw)
}

// ParseString reads a single YAML document from s.
func ParseString(s string) (value.Value, error) { return Parse(strings.NewReader(s)) }

// fromYAML converts a decoded YAML value into the evaluator's value
// representation. Mapping keys must be strings.
func fromYAML(raw any) (value.Value, error) {
	switch t := raw.(type) {
	case yaml.MapSlice:
		out := make(value.Object, len(t))
		for i, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("mapping key %v is not a string", item.Key)
			}
			elt, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			out[i] = value.Field(key, elt)
		}
		return out, nil

	case []any:
		out := make(value.Array, len(t))
		for i, elt := range t {
			v, err := fromYAML(elt)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case time.Time:
		// Timestamps have no JSON form; render them as strings.
		return value.String(t.Format(time.RFC3339)), nil

	default:
		return value.ToValue(raw)
	}
}
