package jpath_test

import (
	"fmt"
	"log"

	"github.com/creachadair/jpath"
	"github.com/creachadair/jpath/funcs"
	"github.com/creachadair/jpath/syntax"
	"github.com/creachadair/jpath/value"
)

func mustParseValue(s string) value.Value {
	v, err := value.ParseString(s)
	if err != nil {
		log.Fatalf("Parse: %v", err)
	}
	return v
}

func Example_small() {
	root := mustParseValue(`[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]`)
	vs, err := jpath.EvalValues(syntax.MustParse("$[1].c.d"), root)
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	fmt.Println(vs[0].JSON())
	// Output:
	// true
}

func Example_medium() {
	root := mustParseValue(`
{
  "planets": [
    {"name": "Mercury", "moons": 0},
    {"name": "Earth", "moons": 1},
    {"name": "Mars", "moons": 2},
    {"name": "Jupiter", "moons": 95}
  ]
}`)

	q := syntax.MustParse(`$.planets[?(@.moons > 1)].name`)
	vs, err := jpath.EvalValues(q, root)
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	for _, v := range vs {
		fmt.Println(v)
	}
	// Output:
	// Mars
	// Jupiter
}

func ExampleEval() {
	doc := map[string]any{
		"fruit": []any{
			map[string]any{"name": "apple", "qty": 3},
			map[string]any{"name": "pear", "qty": 24},
			map[string]any{"name": "plum", "qty": 12},
		},
	}
	hits, err := jpath.Eval(syntax.MustParse(`$.fruit[?(@.qty > 10)].name`), doc)
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	fmt.Println(hits...)
	// Output:
	// pear plum
}

func ExampleWithFuncs() {
	root := mustParseValue(`{"rows": [[1, 2], [3], [4, 5], []]}`)
	q := syntax.MustParse(`$.rows[?(length() == 2)]`)
	vs, err := jpath.EvalValues(q, root, jpath.WithFuncs(funcs.Std()))
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	for _, v := range vs {
		fmt.Println(v.JSON())
	}
	// Output:
	// [1,2]
	// [4,5]
}
