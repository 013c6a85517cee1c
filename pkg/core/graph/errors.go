// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidExponent is thrown (panic) by Pow when the exponent is not a plain number.
	ErrInvalidExponent = errors.New("invalid exponent")

	// ErrDivisionByZero is thrown (panic) by Div, DivScalar and ScalarDiv when the denominator is 0.
	ErrDivisionByZero = errors.New("division by zero")
)

// TryBuild runs fn, which usually builds some graph, and returns as an error any exception
// (panic) with an error that it throws. Other panics are not recovered.
//
// Use errors.Is to check for ErrInvalidExponent or ErrDivisionByZero.
func TryBuild(fn func()) error {
	return exceptions.TryCatch[error](fn)
}
