// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jpath

import "errors"

// Errors reported during evaluation. Each aborts the whole evaluation;
// the engine never returns partial results alongside an error.
var (
	// ErrUnknownFunction is reported when a script calls a function name
	// that is not present in the registry.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrUnsupportedOperator is reported for a comparison operator the
	// engine does not implement.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrUnsupportedSlice is reported for a slice whose step is not 1.
	ErrUnsupportedSlice = errors.New("unsupported slice step")
)
