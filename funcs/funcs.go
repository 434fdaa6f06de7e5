// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package funcs provides a standard set of functions that can be called
// from query scripts.
//
// The functions are not installed by default. To make them available,
// pass the result of Std to the evaluator:
//
//	jpath.Eval(q, doc, jpath.WithFuncs(funcs.Std()))
package funcs

import (
	"github.com/creachadair/jpath"
	"github.com/creachadair/jpath/value"
)

// Std returns a new map of the standard functions:
//
//	length()        number of elements, members, or string bytes
//	keys()          the member keys of the current object, in order
//	first(), last() the first or last element of the current array
//	min(), max()    the least or greatest number in the current array
//	sum(), avg()    the sum or mean of the numbers in the current array
//
// Each function applies to the node under consideration at the point of
// the call. A function applied to a node of the wrong type reports no
// value, so a filter using it simply does not match; it does not fail
// the query.
//
// Std returns a fresh map on each call, which the caller may freely
// extend or modify.
func Std() jpath.FuncMap {
	return jpath.FuncMap{
		"length": jpath.Func(Length),
		"keys":   jpath.SeqFunc(Keys),
		"first":  jpath.Func(First),
		"last":   jpath.Func(Last),
		"min":    jpath.Func(Min),
		"max":    jpath.Func(Max),
		"sum":    jpath.Func(Sum),
		"avg":    jpath.Func(Avg),
	}
}

// Length reports the number of elements of an array, members of an
// object, or bytes of a string. Other values have no length.
func Length(current, root value.Value, args []value.Value) (value.Value, error) {
	switch t := current.(type) {
	case value.Array:
		return value.Int(int64(len(t))), nil
	case value.Object:
		return value.Int(int64(len(t))), nil
	case value.String:
		return value.Int(int64(len(t))), nil
	}
	return value.Missing, nil
}

// Keys reports the member keys of an object in order, including
// duplicates. Other values have no keys.
func Keys(current, root value.Value, args []value.Value) ([]value.Value, error) {
	obj, ok := current.(value.Object)
	if !ok {
		return nil, nil
	}
	out := make([]value.Value, len(obj))
	for i, m := range obj {
		out[i] = value.String(m.Key)
	}
	return out, nil
}

// First reports the first element of a non-empty array.
func First(current, root value.Value, args []value.Value) (value.Value, error) {
	if arr, ok := current.(value.Array); ok && len(arr) > 0 {
		return arr[0], nil
	}
	return value.Missing, nil
}

// Last reports the last element of a non-empty array.
func Last(current, root value.Value, args []value.Value) (value.Value, error) {
	if arr, ok := current.(value.Array); ok && len(arr) > 0 {
		return arr[len(arr)-1], nil
	}
	return value.Missing, nil
}

// Min reports the least number in a non-empty array of numbers.
func Min(current, root value.Value, args []value.Value) (value.Value, error) {
	return extremum(current, func(v, best float64) bool { return v < best })
}

// Max reports the greatest number in a non-empty array of numbers.
func Max(current, root value.Value, args []value.Value) (value.Value, error) {
	return extremum(current, func(v, best float64) bool { return v > best })
}

func extremum(current value.Value, better func(v, best float64) bool) (value.Value, error) {
	nums, ok := numbers(current)
	if !ok || len(nums) == 0 {
		return value.Missing, nil
	}
	best := 0
	for i, n := range nums[1:] {
		if better(n.Float64(), nums[best].Float64()) {
			best = i + 1
		}
	}
	return nums[best], nil
}

// Sum reports the sum of the numbers in an array. The sum of an empty
// array is 0. If every element is an integer the sum is an integer,
// otherwise it is a float.
func Sum(current, root value.Value, args []value.Value) (value.Value, error) {
	nums, ok := numbers(current)
	if !ok {
		return value.Missing, nil
	}
	allInt := true
	var isum int64
	var fsum float64
	for _, n := range nums {
		if n.IsInt() {
			isum += n.Int64()
		} else {
			allInt = false
		}
		fsum += n.Float64()
	}
	if allInt {
		return value.Int(isum), nil
	}
	return value.Float(fsum), nil
}

// Avg reports the arithmetic mean of the numbers in a non-empty array.
func Avg(current, root value.Value, args []value.Value) (value.Value, error) {
	nums, ok := numbers(current)
	if !ok || len(nums) == 0 {
		return value.Missing, nil
	}
	var sum float64
	for _, n := range nums {
		sum += n.Float64()
	}
	return value.Float(sum / float64(len(nums))), nil
}

// numbers reports whether current is an array of numbers, and if so
// returns the elements.
func numbers(current value.Value) ([]value.Number, bool) {
	arr, ok := current.(value.Array)
	if !ok {
		return nil, false
	}
	out := make([]value.Number, len(arr))
	for i, elt := range arr {
		n, ok := elt.(value.Number)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}
