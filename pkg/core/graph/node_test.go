// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph_test

import (
	"fmt"
	"testing"

	. "github.com/gomlx/scalargrad/pkg/core/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeString(t *testing.T) {
	x := Const(3.0)
	assert.Equal(t, "Value(data=3, grad=0)", x.String())
	assert.Equal(t, x, x.SetLabel("x"), "SetLabel should return the node itself")
	assert.Equal(t, "x", x.Label())
	assert.Equal(t, "x: Value(data=3, grad=0)", x.String())

	Backward(x)
	assert.Equal(t, "x: Value(data=3, grad=1)", x.String())

	var nilNode *Node
	assert.Equal(t, "Node(nil)", nilNode.String())
}

func TestNodeDescribe(t *testing.T) {
	x := Const(3.0).SetLabel("x")
	y := Const(-4.0).SetLabel("y")
	z := Add(x, y)
	assert.Equal(t, fmt.Sprintf("#%d = Add(x, y) -> -1", z.Id()), z.Describe())

	p := Pow(x, 2).SetLabel("p")
	assert.Equal(t, "p = Pow(x, exponent=2) -> 9", p.Describe())
	assert.Equal(t, "x = Const() -> 3", x.Describe())
}

func TestNodeIdsAreIncreasing(t *testing.T) {
	x := Const(1.0)
	y := Exp(x)
	z := Mul(x, y)
	assert.Less(t, x.Id(), y.Id())
	assert.Less(t, y.Id(), z.Id())
}

func TestNodeParents(t *testing.T) {
	x := Const(2.0)
	y := Const(5.0)

	leaf := Const(1.0)
	assert.True(t, leaf.IsLeaf())
	assert.Empty(t, leaf.Parents())
	assert.Equal(t, NodeTypeConst, leaf.Type())

	sum := Add(x, y)
	assert.False(t, sum.IsLeaf())
	assert.Equal(t, []*Node{x, y}, sum.Inputs())
	assert.Equal(t, []*Node{x, y}, sum.Parents())

	// Duplicate operands are kept as inputs, but are a single parent.
	double := Add(x, x)
	assert.Equal(t, []*Node{x, x}, double.Inputs())
	assert.Equal(t, []*Node{x}, double.Parents())

	tanh := Tanh(x)
	assert.Equal(t, []*Node{x}, tanh.Parents())
	assert.Equal(t, NodeTypeTanh, tanh.Type())
}

func TestNodeValueIsImmutable(t *testing.T) {
	a := Const(2.0)
	b := Const(-3.0)
	c := Tanh(Add(Mul(a, b), Const(10.0)))
	before := []float64{a.Value(), b.Value(), c.Value()}
	for range 3 {
		_ = Mul(c, a)
		Backward(c)
		require.Equal(t, before, []float64{a.Value(), b.Value(), c.Value()})
	}
}

func TestNodeType(t *testing.T) {
	for _, nodeType := range NodeTypeValues() {
		parsed, err := NodeTypeString(nodeType.String())
		require.NoError(t, err)
		assert.Equal(t, nodeType, parsed)
	}
	parsed, err := NodeTypeString("tanh")
	require.NoError(t, err)
	assert.Equal(t, NodeTypeTanh, parsed)

	_, err = NodeTypeString("Sigmoid")
	require.Error(t, err)
	assert.Equal(t, "NodeType(100)", NodeType(100).String())
}
