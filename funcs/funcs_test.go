// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package funcs_test

import (
	"testing"

	"github.com/creachadair/jpath"
	"github.com/creachadair/jpath/funcs"
	"github.com/creachadair/jpath/syntax"
	"github.com/creachadair/jpath/value"
	"github.com/google/go-cmp/cmp"
)

func TestStd(t *testing.T) {
	doc, err := value.ParseString(`{
  "nums": [3, 1, 4, 1, 5],
  "floats": [0.5, 2.5],
  "mixed": [1, "x"],
  "words": ["kumquat", "ox"],
  "obj": {"a": 1, "b": 2, "a": 3},
  "rows": [[1, 2], [3], [4, 5, 6]],
  "none": []
}`)
	if err != nil {
		t.Fatalf("Parse document: %v", err)
	}

	// Each filter runs with the standard functions installed, the current
	// node being each member value of the enclosing object in turn.
	tests := []struct {
		name string
		path string
		want []string
	}{
		{"Length", "$[?(length() == 5)]", []string{"[3,1,4,1,5]"}},
		{"LengthMany", "$[?(length() == 2)]",
			[]string{"[0.5,2.5]", `[1,"x"]`, `["kumquat","ox"]`}},
		{"LengthString", "$.words[?(length() == 2)]", []string{`"ox"`}},
		{"First", "$[?(first() == 3)]", []string{"[3,1,4,1,5]"}},
		{"Last", "$[?(last() == 'x')]", []string{`[1,"x"]`}},
		{"Min", "$[?(min() == 0.5)]", []string{"[0.5,2.5]"}},
		{"Max", "$[?(max() == 5)]", []string{"[3,1,4,1,5]"}},
		{"Sum", "$[?(sum() == 14)]", []string{"[3,1,4,1,5]"}},
		{"Avg", "$[?(avg() == 1.5)]", []string{"[0.5,2.5]"}},
		{"Keys", "$.obj[?(keys())]", nil}, // keys of a number: no match
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := syntax.Parse(tc.path)
			if err != nil {
				t.Fatalf("Parse %#q: %v", tc.path, err)
			}
			res, err := jpath.EvalValues(q, doc, jpath.WithFuncs(funcs.Std()))
			if err != nil {
				t.Fatalf("EvalValues %#q: unexpected error: %v", tc.path, err)
			}
			var got []string
			for _, v := range res {
				got = append(got, v.JSON())
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("EvalValues %#q: (-got, +want):\n%s", tc.path, diff)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	obj := value.Object{
		value.Field("a", value.Int(1)),
		value.Field("b", value.Int(2)),
		value.Field("a", value.Int(3)),
	}
	got, err := funcs.Keys(obj, nil, nil)
	if err != nil {
		t.Fatalf("Keys: unexpected error: %v", err)
	}
	want := []value.Value{value.String("a"), value.String("b"), value.String("a")}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Keys: (-got, +want):\n%s", diff)
	}

	if got, err := funcs.Keys(value.Int(5), nil, nil); err != nil || got != nil {
		t.Errorf("Keys on number: got %v, %v; want nil, nil", got, err)
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		input value.Value
		want  value.Value
	}{
		{value.Array{value.Int(1), value.Int(2)}, value.Int(2)},
		{value.Object{value.Field("a", value.Null{})}, value.Int(1)},
		{value.String("kumquat"), value.Int(7)},
		{value.String(""), value.Int(0)},
		{value.Int(25), value.Missing},
		{value.Null{}, value.Missing},
	}
	for _, tc := range tests {
		got, err := funcs.Length(tc.input, nil, nil)
		if err != nil {
			t.Errorf("Length %v: unexpected error: %v", tc.input, err)
		} else if !value.Equal(got, tc.want) {
			t.Errorf("Length %v: got %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestAggregates(t *testing.T) {
	ints := value.Array{value.Int(3), value.Int(1), value.Int(4)}
	mixed := value.Array{value.Int(1), value.Float(0.5)}
	words := value.Array{value.String("no")}
	empty := value.Array{}

	type fn = func(_, _ value.Value, _ []value.Value) (value.Value, error)
	tests := []struct {
		name  string
		fn    fn
		input value.Value
		want  value.Value
	}{
		{"MinInts", funcs.Min, ints, value.Int(1)},
		{"MaxInts", funcs.Max, ints, value.Int(4)},
		{"MinMixed", funcs.Min, mixed, value.Float(0.5)},
		{"MaxMixed", funcs.Max, mixed, value.Int(1)},
		{"MinEmpty", funcs.Min, empty, value.Missing},
		{"MinWords", funcs.Min, words, value.Missing},
		{"MinScalar", funcs.Min, value.Int(3), value.Missing},

		// An all-integer sum stays integral; any float makes it a float.
		{"SumInts", funcs.Sum, ints, value.Int(8)},
		{"SumMixed", funcs.Sum, mixed, value.Float(1.5)},
		{"SumEmpty", funcs.Sum, empty, value.Int(0)},
		{"SumWords", funcs.Sum, words, value.Missing},

		{"AvgInts", funcs.Avg, ints, value.Float(8.0 / 3)},
		{"AvgEmpty", funcs.Avg, empty, value.Missing},

		{"FirstInts", funcs.First, ints, value.Int(3)},
		{"LastInts", funcs.Last, ints, value.Int(4)},
		{"FirstEmpty", funcs.First, empty, value.Missing},
		{"LastScalar", funcs.Last, value.Bool(true), value.Missing},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn(tc.input, nil, nil)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !value.Equal(got, tc.want) {
				t.Errorf("Got %v, want %v", got, tc.want)
			}
		})
	}
}
