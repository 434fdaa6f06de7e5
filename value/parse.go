// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/tailscale/hujson"
)

// Parse decodes a single JSON value from r. Object member order is
// preserved, and duplicate member keys are retained in order of appearance
// rather than rejected or merged. Numbers written without a fraction or
// exponent decode as integers when they fit in an int64.
//
// The input must contain exactly one value; anything further after the
// value is an error.
func Parse(r io.Reader) (Value, error) {
	dec := jsontext.NewDecoder(r, jsontext.AllowDuplicateNames(true))
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.ReadToken(); err == nil {
		return nil, errors.New("unexpected data after value")
	} else if err != io.EOF {
		return nil, err
	}
	return v, nil
}

// ParseString decodes a single JSON value from s.
func ParseString(s string) (Value, error) { return Parse(strings.NewReader(s)) }

// ParseJWCC decodes a single value from r in the JWCC format (JSON With
// Commas and Comments). Comments and trailing commas are stripped before
// decoding; the result is an ordinary Value.
func ParseJWCC(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(std))
}

func decodeValue(dec *jsontext.Decoder) (Value, error) {
	switch dec.PeekKind() {
	case 'n':
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return Null{}, nil

	case 't', 'f':
		tok, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		return Bool(tok.Bool()), nil

	case '"':
		tok, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		return String(tok.String()), nil

	case '0':
		raw, err := dec.ReadValue()
		if err != nil {
			return nil, err
		}
		return parseNumber(string(raw))

	case '[':
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		arr := Array{}
		for dec.PeekKind() != ']' {
			elt, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, elt)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return arr, nil

	case '{':
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		obj := Object{}
		for dec.PeekKind() != '}' {
			name, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			// The name token is only valid until the next read, so unquote
			// it before decoding the member value advances the decoder.
			key := name.String()
			elt, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj = append(obj, Field(key, elt))
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return obj, nil

	default:
		// No value is available; surface the decoder's error.
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected %v in input", dec.PeekKind())
	}
}

func parseNumber(text string) (Value, error) {
	if !strings.ContainsAny(text, ".eE") {
		if z, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(z), nil
		}
		// Out-of-range integer texts fall through to float.
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", text, err)
	}
	return Float(f), nil
}
