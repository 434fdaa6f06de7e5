// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jpath

import (
	"github.com/creachadair/jpath/syntax"
	"github.com/creachadair/jpath/value"
)

// A Function is a callable made available to query scripts by name.
type Function interface {
	// Call invokes the function with the node currently under
	// consideration, the root of the document, and the constant
	// arguments written in the call. A result of exactly one value is
	// treated as that value; any other length is treated as a node
	// sequence.
	Call(current, root value.Value, args []value.Value) ([]value.Value, error)
}

// A Func is a Function that returns a single value.
type Func func(current, root value.Value, args []value.Value) (value.Value, error)

// Call satisfies the Function interface.
func (f Func) Call(current, root value.Value, args []value.Value) ([]value.Value, error) {
	v, err := f(current, root, args)
	if err != nil {
		return nil, err
	}
	return []value.Value{v}, nil
}

// A SeqFunc is a Function that returns a node sequence.
type SeqFunc func(current, root value.Value, args []value.Value) ([]value.Value, error)

// Call satisfies the Function interface.
func (f SeqFunc) Call(current, root value.Value, args []value.Value) ([]value.Value, error) {
	return f(current, root, args)
}

// A FuncMap maps names to functions callable from query scripts. The
// evaluator reads the map during evaluation, so the caller must not
// modify it while an evaluation using it is in flight.
type FuncMap map[string]Function

// An Option adjusts the behavior of an evaluation.
type Option func(*config)

type config struct {
	funcs FuncMap
}

// WithFuncs makes the functions of m callable from query scripts. By
// default no functions are available, and a script calling any function
// reports ErrUnknownFunction.
func WithFuncs(m FuncMap) Option { return func(c *config) { c.funcs = m } }

// EvalValues evaluates q against the document rooted at root, returning
// the matching nodes in document order. A query that matches nothing
// returns an empty set and a nil error; a nil q matches the root itself.
//
// The result may share structure with the document. Callers that modify
// the results should copy them first.
func EvalValues(q *syntax.Path, root value.Value, opts ...Option) ([]value.Value, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	e := &evaluator{root: root, funcs: cfg.funcs}
	var steps []syntax.Step
	if q != nil {
		steps = q.Steps
	}
	return e.runSteps(steps, []value.Value{root})
}

// Eval evaluates q against doc and returns the matching nodes in
// document order, in the same representation as the input.
//
// The document may be a value.Value, an object given as its members, an
// array given as its elements, or a plain Go value of the kinds accepted
// by value.ToValue, such as the output of the encoding/json unmarshaler.
// For a plain Go document the matches are converted back to plain Go
// values; otherwise they are returned as value.Value.
func Eval(q *syntax.Path, doc any, opts ...Option) ([]any, error) {
	switch t := doc.(type) {
	case value.Value:
		return evalRoot(q, t, false, opts)
	case []*value.Member:
		return evalRoot(q, value.Object(t), false, opts)
	case []value.Value:
		return evalRoot(q, value.Array(t), false, opts)
	default:
		v, err := value.ToValue(doc)
		if err != nil {
			return nil, err
		}
		return evalRoot(q, v, true, opts)
	}
}

// evalRoot runs the evaluation for Eval and converts the results back to
// plain Go values if the document arrived in that form.
func evalRoot(q *syntax.Path, root value.Value, native bool, opts []Option) ([]any, error) {
	res, err := EvalValues(q, root, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(res))
	for i, r := range res {
		if native {
			out[i] = value.Native(r)
		} else {
			out[i] = r
		}
	}
	return out, nil
}
