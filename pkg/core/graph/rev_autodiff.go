// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"math"

	. "github.com/gomlx/exceptions"
	"github.com/gomlx/scalargrad/pkg/support/sets"
	"k8s.io/klog/v2"
)

// This file implements reverse-mode automatic differentiation, using VJP (Vector Jacobian Product).
// For scalars the "vector" is a single value: the adjoint v, the gradient of the root node with
// respect to the output of the node being processed.
//
// Conventions:
//
// * root node: the output of the computation, whose gradient with respect to every ancestor we want.
// * order: the ancestors of root (root included) in post-order, that is, every node comes after all of
//      its parents. Traversing it back-to-front guarantees that once a node is reached, all its consumers
//      have already added their contributions to its gradient.

// reverseGraph holds the ancestors of Root in topological order.
type reverseGraph struct {
	Root  *Node
	Order []*Node

	visited sets.Set[*Node]
}

func newReverseGraph(root *Node) *reverseGraph {
	if root == nil {
		Panicf("cannot differentiate a nil node")
	}
	rg := &reverseGraph{
		Root:    root,
		visited: sets.Make[*Node](),
	}
	rg.recursivePostOrder(root)
	return rg
}

// recursivePostOrder appends node to rg.Order after all its parents.
func (rg *reverseGraph) recursivePostOrder(node *Node) {
	if !rg.visited.InsertNew(node) {
		// Already visited.
		return
	}
	for _, parent := range node.Parents() {
		rg.recursivePostOrder(parent)
	}
	rg.Order = append(rg.Order, node)
}

// TopologicalOrder returns root and all of its ancestors, each exactly once, ordered such that every
// node comes after all of its parents: leaves come first and root is the last element.
func TopologicalOrder(root *Node) []*Node {
	return newReverseGraph(root).Order
}

// Backward computes the gradient of root with respect to root itself and to all of its ancestors,
// and adds it to their gradient (see Node.Grad).
//
// The gradient of root is set to 1 (not accumulated), and each node's local gradient rule
// (see VJPRegistration) is applied exactly once, only after all the nodes that use it as input
// have applied theirs.
//
// Gradients are never zeroed: if some of the nodes were already used in a previous Backward, their
// gradients accumulate over the previous values. That is the caller's responsibility: call
// ZeroGradients before each independent pass if nodes are reused.
func Backward(root *Node) {
	rg := newReverseGraph(root)
	if klog.V(1).Enabled() {
		var numFinalized int
		for _, node := range rg.Order {
			if node.finalized {
				numFinalized++
			}
		}
		if numFinalized > 0 {
			klog.Infof("Backward(%s): %d of %d nodes already had their gradients propagated, "+
				"new gradients will accumulate over the old ones -- use ZeroGradients to reset them",
				root.name(), numFinalized, len(rg.Order))
		}
	}
	klog.V(2).Infof("Backward(%s): back-propagating over %d nodes", root.name(), len(rg.Order))

	// Gradient of the output with respect to itself.
	root.grad = 1

	for ii := len(rg.Order) - 1; ii >= 0; ii-- {
		node := rg.Order[ii]
		vjpFn, ok := VJPRegistration[node.Type()]
		if !ok {
			Panicf("graph has node %s of type %s, for which no gradient is defined, cannot back-propagate",
				node.Describe(), node.Type())
		}
		inputsVJPs := vjpFn(node, node.grad)
		if len(inputsVJPs) != len(node.inputNodes) {
			Panicf("VJP(%s) returned %d adjoints, but it has %d inputs, implementation of auto-differentiation for "+
				"node type %s failed", node.Describe(), len(inputsVJPs), len(node.inputNodes), node.Type())
		}
		for jj, input := range node.inputNodes {
			input.grad += inputsVJPs[jj]
		}
		node.finalized = true
	}
}

// ZeroGradients resets the gradient of root and all of its ancestors to 0, and marks them as not
// yet back-propagated, so Backward can be called again from scratch.
func ZeroGradients(root *Node) {
	for _, node := range TopologicalOrder(root) {
		node.grad = 0
		node.finalized = false
	}
}

// VJP returns the adjoint of each of the inputs of node (given by node.Inputs()), given the
// adjoint v of node itself. That is, the contribution of node to the gradient of each of its
// inputs, by the chain rule: v * ∂node/∂input.
//
// It must return exactly one value per input, even when the same node appears twice as input.
type VJP func(node *Node, v float64) []float64

// VJPRegistration maps each node type to its local gradient rule.
var VJPRegistration = map[NodeType]VJP{
	NodeTypeConst: constVJP,
	NodeTypeAdd:   addVJP,
	NodeTypeMul:   mulVJP,
	NodeTypeDiv:   divVJP,
	NodeTypePow:   powVJP,
	NodeTypeExp:   expVJP,
	NodeTypeRelu:  reluVJP,
	NodeTypeTanh:  tanhVJP,
}

// constVJP: leaves have no inputs to back-propagate to.
func constVJP(_ *Node, _ float64) []float64 {
	return nil
}

func addVJP(_ *Node, v float64) []float64 {
	return []float64{v, v}
}

func mulVJP(node *Node, v float64) []float64 {
	x0, x1 := node.inputNodes[0].value, node.inputNodes[1].value
	return []float64{v * x1, v * x0}
}

// VJP formulation for Div:
// F(a,b) = a/b ->  v*dF/da = v/b ; v*dF/db = -v*a/b^2
func divVJP(node *Node, v float64) []float64 {
	a, b := node.inputNodes[0].value, node.inputNodes[1].value
	return []float64{v / b, -v * a / (b * b)}
}

// VJP formulation for Pow with a fixed exponent p:
// F(x) = x^p -> v*dF/dx = v*p*x^(p-1)
func powVJP(node *Node, v float64) []float64 {
	p := node.inputs.(*nodeInputsPow).exponent
	if p == 0 {
		// x^0 is constant, and p*x^(p-1) would be 0*Inf=NaN at x=0.
		return []float64{0}
	}
	x := node.inputNodes[0].value
	return []float64{v * p * math.Pow(x, p-1)}
}

func expVJP(node *Node, v float64) []float64 {
	// node holds the output of exp(x), which is also its derivative.
	return []float64{v * node.value}
}

func reluVJP(node *Node, v float64) []float64 {
	if node.inputNodes[0].value > 0 {
		return []float64{v}
	}
	return []float64{0}
}

func tanhVJP(node *Node, v float64) []float64 {
	tanhX := node.value // node holds the output of tanh(x)
	return []float64{v * (1 - tanhX*tanhX)}
}
