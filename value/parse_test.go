// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value_test

import (
	"strings"
	"testing"

	"github.com/creachadair/jpath/value"
)

func TestParse(t *testing.T) {
	// Inputs are compact, so a correct parse reproduces its input exactly,
	// including member order and duplicate keys.
	tests := []string{
		`null`,
		`true`,
		`false`,
		`0`,
		`-15`,
		`0.5`,
		`"hello"`,
		`""`,
		`[]`,
		`[1,2,3]`,
		`[[null],{}]`,
		`{}`,
		`{"b":1,"a":2,"b":3}`,
		`{"list":[{"x":1},{"x":2}],"y":{"hello":"there"}}`,
	}
	for _, input := range tests {
		v, err := value.ParseString(input)
		if err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", input, err)
			continue
		}
		if got := v.JSON(); got != input {
			t.Errorf("Parse %#q: got %#q", input, got)
		}
	}
}

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		input  string
		isInt  bool
		asReal float64
	}{
		{`0`, true, 0},
		{`-19`, true, -19},
		{`3.25`, false, 3.25},
		{`5e2`, false, 500},
		{`-1.5e-1`, false, -0.15},
	}
	for _, tc := range tests {
		v, err := value.ParseString(tc.input)
		if err != nil {
			t.Fatalf("Parse %#q: unexpected error: %v", tc.input, err)
		}
		n, ok := v.(value.Number)
		if !ok {
			t.Fatalf("Parse %#q: got %T, want Number", tc.input, v)
		}
		if n.IsInt() != tc.isInt {
			t.Errorf("Parse %#q: IsInt = %v, want %v", tc.input, n.IsInt(), tc.isInt)
		}
		if got := n.Float64(); got != tc.asReal {
			t.Errorf("Parse %#q: Float64 = %v, want %v", tc.input, got, tc.asReal)
		}
	}
}

func TestParseStrings(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`"simple"`, "simple"},
		{`"a\tb"`, "a\tb"},
		{`"quo\"te"`, `quo"te`},
		{`"\u0041BC"`, "ABC"},
		{`"\u2028ok"`, "\u2028ok"},
		{`"pair \ud83d\ude03"`, "pair \U0001F603"},
	}
	for _, tc := range tests {
		v, err := value.ParseString(tc.input)
		if err != nil {
			t.Fatalf("Parse %#q: unexpected error: %v", tc.input, err)
		}
		s, ok := v.(value.String)
		if !ok {
			t.Fatalf("Parse %#q: got %T, want String", tc.input, v)
		}
		if string(s) != tc.want {
			t.Errorf("Parse %#q: got %#q, want %#q", tc.input, string(s), tc.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		``,
		`{`,
		`[1 2]`,
		`{"a":1,}`,
		`{"a"}`,
		`tru`,
		`"unterminated`,
		`1 2`,
	}
	for _, input := range tests {
		v, err := value.ParseString(input)
		if err == nil {
			t.Errorf("Parse %#q: got %v, want error", input, v)
		} else {
			t.Logf("Parse %#q: got expected error: %v", input, err)
		}
	}
}

func TestParseJWCC(t *testing.T) {
	const input = `// A document with comments.
{
  "name": "aloysius", // a line comment
  /* A block comment. */
  "values": [1, 2, 3,], // trailing commas are fine
}`
	v, err := value.ParseJWCC(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseJWCC: unexpected error: %v", err)
	}
	const want = `{"name":"aloysius","values":[1,2,3]}`
	if got := v.JSON(); got != want {
		t.Errorf("ParseJWCC: got %#q, want %#q", got, want)
	}
}
