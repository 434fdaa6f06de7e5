// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jyaml_test

import (
	"testing"

	"github.com/creachadair/jpath"
	"github.com/creachadair/jpath/jyaml"
	"github.com/creachadair/jpath/syntax"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // JSON
	}{
		{"Scalars", "a: 1\nb: two\nc: 0.25\nd: true\ne: ~\n",
			`{"a":1,"b":"two","c":0.25,"d":true,"e":null}`},

		// Mapping keys keep their written order.
		{"Order", "z: 1\ny: 2\nx: 3\n", `{"z":1,"y":2,"x":3}`},

		{"Sequence", "- 1\n- two\n- [3, false]\n", `[1,"two",[3,false]]`},

		{"Nested", `
outer:
  inner:
    - name: first
    - name: second
`, `{"outer":{"inner":[{"name":"first"},{"name":"second"}]}}`},

		{"Flow", `{up: [1, 2], down: {}}`, `{"up":[1,2],"down":{}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := jyaml.ParseString(tc.input)
			if err != nil {
				t.Fatalf("Parse: unexpected error: %v", err)
			}
			if got := v.JSON(); got != tc.want {
				t.Errorf("Parse: got %#q, want %#q", got, tc.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Invalid", "[unclosed"},
		{"Empty", ""},
		{"NonStringKey", "? [1, 2]\n: pair\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := jyaml.ParseString(tc.input)
			if err == nil {
				t.Errorf("Parse: got %v, want error", v)
			} else {
				t.Logf("Parse: got expected error: %v", err)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	doc, err := jyaml.ParseString(`
hosts:
  - name: alpha
    port: 8080
  - name: bravo
    port: 9090
  - name: charlie
    port: 8080
`)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	q, err := syntax.Parse("$.hosts[?(@.port == 8080)].name")
	if err != nil {
		t.Fatalf("Parse query: %v", err)
	}
	res, err := jpath.EvalValues(q, doc)
	if err != nil {
		t.Fatalf("EvalValues: unexpected error: %v", err)
	}
	var got []string
	for _, v := range res {
		got = append(got, v.String())
	}
	if diff := cmp.Diff(got, []string{"alpha", "charlie"}); diff != "" {
		t.Errorf("Wrong result (-got, +want):\n%s", diff)
	}
}
