// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/gomlx/scalargrad/pkg/support/sets"
)

// NodeId is the unique id of a Node, assigned in creation order.
type NodeId int64

var lastNodeId atomic.Int64

// Node is a scalar value recorded in the computation graph, along with the operation
// and the operands (inputs) that produced it.
//
// Its value is fixed at creation. Its gradient is only changed by Backward and ZeroGradients.
type Node struct {
	id    NodeId
	value float64
	grad  float64

	// inputNodes are the edges of the computation graph, in operand order.
	// The same node may appear more than once (e.g.: Add(x, x)).
	inputNodes []*Node

	// inputs holds the operation type and its static parameters.
	inputs nodeInputs

	label string

	// finalized is set once Backward applied this node's gradient rule.
	finalized bool
}

// newNode is called only after the operation has been validated: a failed operation
// never creates a node.
func newNode(value float64, inputs nodeInputs, inputNodes ...*Node) *Node {
	return &Node{
		id:         NodeId(lastNodeId.Add(1)),
		value:      value,
		inputNodes: inputNodes,
		inputs:     inputs,
	}
}

// Id is the unique id of this node. Nodes created later have larger ids.
func (n *Node) Id() NodeId {
	return n.id
}

// Type identify the operation performed by the node.
func (n *Node) Type() NodeType {
	if n == nil || n.inputs == nil {
		return NodeTypeInvalid
	}
	return n.inputs.Type()
}

// Value returns the value computed for the node when it was created.
func (n *Node) Value() float64 {
	return n.value
}

// Grad returns the gradient of the output of the last Backward call with respect to this node.
// It is 0 before Backward is called.
func (n *Node) Grad() float64 {
	return n.grad
}

// IsFinalized returns whether Backward already propagated this node's gradient to its inputs.
// ZeroGradients resets it.
func (n *Node) IsFinalized() bool {
	return n.finalized
}

// IsLeaf returns whether the node has no inputs.
func (n *Node) IsLeaf() bool {
	return len(n.inputNodes) == 0
}

// Inputs are the operands of the operation that created the node, in order.
// A node used twice as operand (e.g.: Mul(x, x)) appears twice.
func (n *Node) Inputs() []*Node { return n.inputNodes }

// Parents returns the distinct nodes in Inputs, in the order they first appear.
// It is empty for leaf nodes.
func (n *Node) Parents() []*Node {
	if len(n.inputNodes) <= 1 {
		return n.inputNodes
	}
	seen := sets.Make[*Node](len(n.inputNodes))
	parents := make([]*Node, 0, len(n.inputNodes))
	for _, input := range n.inputNodes {
		if seen.InsertNew(input) {
			parents = append(parents, input)
		}
	}
	return parents
}

// SetLabel sets a human-readable name for the node, used only when printing it.
// It returns the node itself, so it can be chained.
func (n *Node) SetLabel(label string) *Node {
	n.label = label
	return n
}

// Label returns the label set with SetLabel, or an empty string.
func (n *Node) Label() string {
	return n.label
}

// String implements fmt.Stringer. It shows the value and gradient of the node, prefixed with
// its label if one is set.
func (n *Node) String() string {
	if n == nil {
		return "Node(nil)"
	}
	str := fmt.Sprintf("Value(data=%s, grad=%s)", formatFloat(n.value), formatFloat(n.grad))
	if n.label != "" {
		str = n.label + ": " + str
	}
	return str
}

// Describe returns a one-line description of the operation that created the node, referencing
// its inputs by label (or id, if unlabeled). E.g.: "#5 = Add(x, #4) -> 3".
func (n *Node) Describe() string {
	inputNames := make([]string, len(n.inputNodes))
	for ii, input := range n.inputNodes {
		inputNames[ii] = input.name()
	}
	return fmt.Sprintf("%s = %s -> %s", n.name(), n.inputs.String(inputNames), formatFloat(n.value))
}

func (n *Node) name() string {
	if n.label != "" {
		return n.label
	}
	return "#" + strconv.FormatInt(int64(n.id), 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
