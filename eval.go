// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jpath

import (
	"cmp"
	"fmt"
	"math"
	"strings"

	"github.com/creachadair/jpath/syntax"
	"github.com/creachadair/jpath/value"
)

// An evaluator carries the state shared by all the steps of a single
// evaluation: the document root, for "$" references in scripts, and the
// function registry.
type evaluator struct {
	root  value.Value
	funcs FuncMap
}

// runSteps folds the steps over nodes, replacing the node set at each
// step. The outer order of the result follows the node order of the
// incoming set, the inner order is the predicate's own match order.
// Missing placeholders reported by a predicate are dropped here, and an
// empty node set stops the fold, since no later step can recover it.
func (e *evaluator) runSteps(steps []syntax.Step, nodes []value.Value) ([]value.Value, error) {
	for _, step := range steps {
		if len(nodes) == 0 {
			break
		}
		var next []value.Value
		for _, node := range nodes {
			got, err := e.applyPred(step.Pred, node)
			if err != nil {
				return nil, err
			}
			for _, v := range got {
				if v != value.Missing {
					next = append(next, v)
				}
			}
		}
		nodes = next
	}
	return nodes, nil
}

// applyPred returns the children of node selected by pred, in order. An
// empty result is an ordinary outcome, not an error; errors are reserved
// for constructs the engine cannot evaluate at all.
func (e *evaluator) applyPred(pred syntax.Predicate, node value.Value) ([]value.Value, error) {
	switch p := pred.(type) {
	case syntax.Key:
		if obj, ok := node.(value.Object); ok {
			if m := obj.Find(string(p)); m != nil {
				return []value.Value{m.Value}, nil
			}
		}
		return nil, nil

	case syntax.Wildcard:
		switch t := node.(type) {
		case value.Object:
			out := make([]value.Value, len(t))
			for i, m := range t {
				out[i] = m.Value
			}
			return out, nil
		case value.Array:
			return t, nil
		}
		return nil, nil

	case syntax.Index:
		return e.applyIndex(p, node)

	case syntax.Union:
		return e.applyUnion(p, node)

	case syntax.Slice:
		return e.applySlice(p, node)

	case syntax.Filter:
		return e.applyFilter(p, node)
	}
	return nil, nil
}

// applyIndex selects by a computed key or position. On an object the
// script must produce a string, on an array a number; any other result
// selects nothing.
func (e *evaluator) applyIndex(p syntax.Index, node value.Value) ([]value.Value, error) {
	switch node.(type) {
	case value.Object, value.Array:
	default:
		return nil, nil
	}
	v, err := e.evalScalar(p.Expr, node)
	if err != nil {
		return nil, err
	}
	switch t := node.(type) {
	case value.Object:
		if key, ok := v.(value.String); ok {
			return e.applyPred(syntax.Key(key), node)
		}
	case value.Array:
		return pickElements(t, []value.Value{v}), nil
	}
	return nil, nil
}

// applyUnion selects the terms of a bracketed list. On an object each
// term is looked up independently, and a key that is not present
// contributes a missing placeholder for the step executor to drop, so
// the other terms still match. On an array the terms are positions, and
// a single position with no element empties the whole selection.
func (e *evaluator) applyUnion(p syntax.Union, node value.Value) ([]value.Value, error) {
	switch t := node.(type) {
	case value.Object:
		out := make([]value.Value, len(p))
		for i, s := range p {
			v, err := e.evalScalar(s, node)
			if err != nil {
				return nil, err
			}
			out[i] = value.Missing
			if key, ok := v.(value.String); ok {
				if m := t.Find(string(key)); m != nil {
					out[i] = m.Value
				}
			}
		}
		return out, nil

	case value.Array:
		picks := make([]value.Value, len(p))
		for i, s := range p {
			v, err := e.evalScalar(s, node)
			if err != nil {
				return nil, err
			}
			picks[i] = v
		}
		return pickElements(t, picks), nil
	}
	return nil, nil
}

// pickElements resolves each pick to a position in arr, negative values
// counting from the end, and returns the selected elements in order. If
// any pick does not denote an element of arr the result is empty.
func pickElements(arr value.Array, picks []value.Value) []value.Value {
	out := make([]value.Value, 0, len(picks))
	for _, p := range picks {
		idx, ok := arrayIndex(p)
		if !ok {
			return nil
		}
		if idx < 0 {
			idx += len(arr)
		}
		if idx < 0 || idx >= len(arr) {
			return nil
		}
		out = append(out, arr[idx])
	}
	return out
}

// arrayIndex reports the array position denoted by v, which must be a
// number with no fractional part.
func arrayIndex(v value.Value) (int, bool) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, false
	}
	if n.IsInt() {
		return int(n.Int64()), true
	}
	f := n.Float64()
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// applySlice selects a contiguous range of an array. After a negative
// bound is resolved against the length, the upper bound acts as a count
// from the lower bound, not as an endpoint, so $[1:3] of a four-element
// array yields three elements. Changing this would silently change the
// results of existing queries; keep it.
func (e *evaluator) applySlice(p syntax.Slice, node value.Value) ([]value.Value, error) {
	arr, ok := node.(value.Array)
	if !ok {
		return nil, nil
	}
	if p.Step != 1 {
		return nil, fmt.Errorf("%w %d", ErrUnsupportedSlice, p.Step)
	}
	lo, n := p.Lo, p.Hi
	if lo < 0 {
		lo = max(len(arr)+lo, 0)
	}
	if n < 0 {
		n = min(len(arr)+n, len(arr))
	}
	if lo >= len(arr) || n <= 0 {
		return nil, nil
	}
	end := min(lo+n, len(arr))
	return arr[lo:end], nil
}

// applyFilter keeps the members of node whose values satisfy the filter
// condition, in their original order.
func (e *evaluator) applyFilter(p syntax.Filter, node value.Value) ([]value.Value, error) {
	var elems []value.Value
	switch t := node.(type) {
	case value.Object:
		elems = make([]value.Value, len(t))
		for i, m := range t {
			elems[i] = m.Value
		}
	case value.Array:
		elems = t
	default:
		return nil, nil
	}
	var out []value.Value
	for _, elt := range elems {
		res, err := e.evalScript(p.Expr, elt)
		if err != nil {
			return nil, err
		}
		if res.truthy() {
			out = append(out, elt)
		}
	}
	return out, nil
}

// A result is the outcome of evaluating a script: either a single value,
// or a sequence of nodes from a relative path or a function call. The
// distinction matters for filters, where an empty sequence is false even
// though an empty array value would also be.
type result struct {
	vals []value.Value
	seq  bool
}

func one(v value.Value) result      { return result{vals: []value.Value{v}} }
func seqOf(vs []value.Value) result { return result{vals: vs, seq: true} }

// truthy reports the truth of r as a filter condition. A sequence is
// true when it is non-empty, regardless of its contents, so a filter
// like [?(@.expired)] tests existence when expired is false.
func (r result) truthy() bool {
	if r.seq {
		return len(r.vals) > 0
	}
	return value.Truthy(r.vals[0])
}

// scalar reduces r to a single value for comparison or indexing. A
// one-element sequence unwraps to its element; any other sequence is
// treated as an array aggregate.
func (r result) scalar() value.Value {
	if r.seq && len(r.vals) != 1 {
		return value.Array(r.vals)
	}
	return r.vals[0]
}

// evalScalar evaluates s and reduces the result to a single value.
func (e *evaluator) evalScalar(s syntax.Script, current value.Value) (value.Value, error) {
	r, err := e.evalScript(s, current)
	if err != nil {
		return nil, err
	}
	return r.scalar(), nil
}

// evalScript evaluates s with current as the target of "@" references.
func (e *evaluator) evalScript(s syntax.Script, current value.Value) (result, error) {
	switch t := s.(type) {
	case syntax.StringLit:
		return one(value.String(t)), nil

	case syntax.NumberLit:
		return one(value.Float(float64(t))), nil

	case syntax.Self:
		return one(current), nil

	case syntax.Rel:
		got, err := e.runSteps(t.Steps, []value.Value{current})
		if err != nil {
			return result{}, err
		}
		return seqOf(got), nil

	case syntax.Call:
		fn, ok := e.funcs[t.Name]
		if !ok {
			return result{}, fmt.Errorf("%w %q", ErrUnknownFunction, t.Name)
		}
		args, err := callArgs(t.Args)
		if err != nil {
			return result{}, fmt.Errorf("call %q: %w", t.Name, err)
		}
		got, err := fn.Call(current, e.root, args)
		if err != nil {
			return result{}, fmt.Errorf("call %q: %w", t.Name, err)
		}
		if len(got) == 1 {
			return one(got[0]), nil
		}
		return seqOf(got), nil

	case syntax.Cmp:
		lhs, err := e.evalScript(t.LHS, current)
		if err != nil {
			return result{}, err
		}
		rhs, err := e.evalScript(t.RHS, current)
		if err != nil {
			return result{}, err
		}
		ok, err := compare(t.Op, lhs.scalar(), rhs.scalar())
		if err != nil {
			return result{}, err
		}
		return one(value.Bool(ok)), nil
	}
	return result{}, fmt.Errorf("invalid script expression %T", s)
}

// callArgs converts the constant arguments of a call for delivery to the
// function. The parser only admits strings, numbers, booleans, and null,
// so conversion failures indicate a hand-built syntax tree.
func callArgs(args []any) ([]value.Value, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make([]value.Value, len(args))
	for i, a := range args {
		v, err := value.ToValue(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// compare applies op to a and b. Equality is structural over any pair of
// values; the order operators apply to two numbers or two strings and
// report false for every other combination of operands.
func compare(op syntax.Op, a, b value.Value) (bool, error) {
	switch op {
	case syntax.Eq:
		return value.Equal(a, b), nil
	case syntax.Ne:
		return !value.Equal(a, b), nil
	case syntax.Lt, syntax.Le, syntax.Gt, syntax.Ge:
		c, ok := orderValues(a, b)
		if !ok {
			return false, nil
		}
		switch op {
		case syntax.Lt:
			return c < 0, nil
		case syntax.Le:
			return c <= 0, nil
		case syntax.Gt:
			return c > 0, nil
		default:
			return c >= 0, nil
		}
	}
	return false, fmt.Errorf("%w %v", ErrUnsupportedOperator, op)
}

// orderValues orders two numbers or two strings, reporting -1, 0, or +1.
// Any other combination of operands has no defined order.
func orderValues(a, b value.Value) (int, bool) {
	switch ta := a.(type) {
	case value.Number:
		tb, ok := b.(value.Number)
		if !ok {
			return 0, false
		}
		if ta.IsInt() && tb.IsInt() {
			return cmp.Compare(ta.Int64(), tb.Int64()), true
		}
		return cmp.Compare(ta.Float64(), tb.Float64()), true
	case value.String:
		tb, ok := b.(value.String)
		if !ok {
			return 0, false
		}
		return strings.Compare(string(ta), string(tb)), true
	}
	return 0, false
}
