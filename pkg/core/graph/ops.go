// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"math"

	. "github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"
)

// Number is the set of Go types that can be promoted to a leaf node by the *Scalar functions.
type Number interface {
	constraints.Integer | constraints.Float
}

// Const creates a leaf node (no inputs) holding the given value.
//
// The value can be any Go number type (int, uint8, float32, float16.Float16, etc.): it is
// converted to float64. It panics if value is not a number.
func Const(value any) *Node {
	v, ok := toFloat64(value)
	if !ok {
		Panicf("Const(%v): value of type %T is not a number", value, value)
	}
	return newNode(v, nodeInputsConst{})
}

// toFloat64 converts any Go number to float64. It returns false if value is not a number.
func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case float16.Float16:
		return float64(v.Float32()), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uintptr:
		return float64(v), true
	}
	return 0, false
}

// Add returns a node with the sum of x0 and x1.
func Add(x0, x1 *Node) *Node {
	return newNode(x0.value+x1.value, nodeInputsAdd, x0, x1)
}

// Mul returns a node with the product of x0 and x1.
func Mul(x0, x1 *Node) *Node {
	return newNode(x0.value*x1.value, nodeInputsMul, x0, x1)
}

// Neg returns -x. It is built as Mul(x, -1), so it has no node type of its own.
func Neg(x *Node) *Node {
	return Mul(x, Const(-1.0))
}

// Sub returns x0 - x1, built as Add(x0, Neg(x1)).
func Sub(x0, x1 *Node) *Node {
	return Add(x0, Neg(x1))
}

// Div returns x0 / x1.
//
// It panics with an error wrapping ErrDivisionByZero if x1 is 0: it doesn't produce IEEE
// infinities or NaN.
func Div(x0, x1 *Node) *Node {
	if x1.value == 0 {
		panic(errors.Wrapf(ErrDivisionByZero, "Div(%s, %s)", x0, x1))
	}
	return newNode(x0.value/x1.value, nodeInputsDiv, x0, x1)
}

// Pow returns x raised to a fixed exponent.
//
// The exponent must be a Go number (see Const): it is not a node of the graph, so no gradient
// flows to it. It panics with an error wrapping ErrInvalidExponent otherwise, for instance if
// given a *Node.
//
// Edge cases follow math.Pow: Pow(0, -1) is +Inf, and a negative x with a non-integer
// exponent is NaN.
func Pow(x *Node, exponent any) *Node {
	p, ok := toFloat64(exponent)
	if !ok {
		panic(errors.Wrapf(ErrInvalidExponent, "Pow(%s, %v): exponent of type %T must be a number", x, exponent, exponent))
	}
	return newNode(math.Pow(x.value, p), &nodeInputsPow{exponent: p}, x)
}

// Square returns x^2.
func Square(x *Node) *Node {
	return Pow(x, 2.0)
}

// Inverse returns 1/x, built as ScalarDiv(1, x).
func Inverse(x *Node) *Node {
	return ScalarDiv(1.0, x)
}

// Exp returns e^x.
func Exp(x *Node) *Node {
	return newNode(math.Exp(x.value), nodeInputsExp, x)
}

// Relu returns max(0, x). Its gradient at exactly 0 is 0.
func Relu(x *Node) *Node {
	return newNode(max(0, x.value), nodeInputsRelu, x)
}

// Tanh returns the hyperbolic tangent of x.
func Tanh(x *Node) *Node {
	return newNode(math.Tanh(x.value), nodeInputsTanh, x)
}

// AddScalar returns x + scalar (equivalently scalar + x).
func AddScalar[T Number](x *Node, scalar T) *Node {
	return Add(x, Const(float64(scalar)))
}

// MulScalar returns x * scalar (equivalently scalar * x).
func MulScalar[T Number](x *Node, scalar T) *Node {
	return Mul(x, Const(float64(scalar)))
}

// SubScalar returns x - scalar.
func SubScalar[T Number](x *Node, scalar T) *Node {
	return Sub(x, Const(float64(scalar)))
}

// ScalarSub returns scalar - x.
func ScalarSub[T Number](scalar T, x *Node) *Node {
	return Sub(Const(float64(scalar)), x)
}

// DivScalar returns x / scalar. It panics with ErrDivisionByZero if scalar is 0.
func DivScalar[T Number](x *Node, scalar T) *Node {
	if scalar == 0 {
		panic(errors.Wrapf(ErrDivisionByZero, "DivScalar(%s, %v)", x, scalar))
	}
	return Div(x, Const(float64(scalar)))
}

// ScalarDiv returns scalar / x. It panics with ErrDivisionByZero if x is 0.
func ScalarDiv[T Number](scalar T, x *Node) *Node {
	if x.value == 0 {
		panic(errors.Wrapf(ErrDivisionByZero, "ScalarDiv(%v, %s)", scalar, x))
	}
	return Div(Const(float64(scalar)), x)
}
