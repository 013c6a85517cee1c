// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFailedOperationCreatesNoNode(t *testing.T) {
	x := Const(2.0)
	y := Const(0.0)
	before := lastNodeId.Load()
	require.ErrorIs(t, TryBuild(func() { _ = Pow(x, y) }), ErrInvalidExponent)
	require.ErrorIs(t, TryBuild(func() { _ = Div(x, y) }), ErrDivisionByZero)
	require.ErrorIs(t, TryBuild(func() { _ = DivScalar(x, 0.0) }), ErrDivisionByZero)
	require.ErrorIs(t, TryBuild(func() { _ = ScalarDiv(1, y) }), ErrDivisionByZero)
	require.Equal(t, before, lastNodeId.Load(), "no node should have been created by failed operations")

	// The operands are still usable and not connected to anything.
	z := Mul(x, y)
	require.Equal(t, []*Node{x, y}, TopologicalOrder(z)[:2])
	require.Len(t, TopologicalOrder(z), 3)
}

func TestReverseGraphOrder(t *testing.T) {
	x := Const(1.0)
	y := Const(2.0)
	sum := Add(x, y)
	prod := Mul(sum, x)
	rg := newReverseGraph(prod)
	require.Equal(t, prod, rg.Root)
	require.Equal(t, []*Node{x, y, sum, prod}, rg.Order)
	require.Len(t, rg.visited, 4)
}

func TestBackwardUnknownNodeType(t *testing.T) {
	x := Const(1.0)
	invalid := newNode(1, nodeInputsBasic(NodeTypeInvalid), x)
	err := TryBuild(func() { Backward(invalid) })
	require.ErrorContains(t, err, "no gradient is defined")
}

func TestBackwardVJPWithWrongNumberOfAdjoints(t *testing.T) {
	original := VJPRegistration[NodeTypeExp]
	defer func() { VJPRegistration[NodeTypeExp] = original }()
	VJPRegistration[NodeTypeExp] = func(_ *Node, v float64) []float64 { return []float64{v, v} }

	err := TryBuild(func() { Backward(Exp(Const(1.0))) })
	require.ErrorContains(t, err, "returned 2 adjoints, but it has 1 inputs")
}

func TestPowVJPUsesFixedExponent(t *testing.T) {
	x := Const(3.0)
	p := Pow(x, 4)
	require.Equal(t, 4.0, p.inputs.(*nodeInputsPow).exponent)
	// 4 * 3^3 = 108, not (4*3)^3.
	require.Equal(t, []float64{108}, powVJP(p, 1))
	require.Equal(t, []float64{216}, powVJP(p, 2))
}
