// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jpath evaluates path queries over JSON document trees.
//
// A query selects a set of nodes from a document, in document order. The
// query language follows the familiar JSONPath notation: a query begins
// at the document root "$" and applies a sequence of steps, each of
// which selects children of the nodes matched so far.
//
// # Queries
//
// Use the syntax package to parse a query string into a reusable form:
//
//	q, err := syntax.Parse(`$.store.book[?(@.price < 10)].title`)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// A parsed query is inert data. It can be evaluated any number of times,
// concurrently if desired, against the same or different documents.
//
// The steps of a query take these forms:
//
//	Form     | Example              | Description
//	-------- | -------------------- | ------------------------------------
//	member   | $.store.book         | named member of an object
//	wildcard | $.store.*            | all members or elements, in order
//	union    | $[0,2], $['a','b']   | the listed elements or members
//	slice    | $[1:3]               | a contiguous range of elements
//	index    | $[('title')]         | member or element by computed key
//	filter   | $[?(@.price < 10)]   | members satisfying a condition
//
// # Evaluation
//
// The Eval function evaluates a query against a document in ordinary Go
// form, such as the output of encoding/json, and returns the matches in
// the same form:
//
//	hits, err := jpath.Eval(q, doc)
//	if err != nil {
//	   log.Fatalf("Eval failed: %v", err)
//	}
//	for _, hit := range hits {
//	   fmt.Println(hit)
//	}
//
// A query that matches nothing returns an empty set and a nil error.
// Evaluation reports an error only for constructs the engine cannot
// evaluate at all, such as a call to an unregistered function; in that
// case no partial results are returned.
//
// To preserve member order and duplicate keys, parse the document with
// the value package and use EvalValues:
//
//	doc, err := value.Parse(input)
//	...
//	hits, err := jpath.EvalValues(q, doc)
//
// # Functions
//
// A filter or index script may call named functions, supplied to the
// evaluator with the WithFuncs option. The funcs package provides a
// standard set including length, keys, min, max, sum, and avg:
//
//	hits, err := jpath.EvalValues(q, doc, jpath.WithFuncs(funcs.Std()))
//
// No functions are available unless the caller provides them.
package jpath
