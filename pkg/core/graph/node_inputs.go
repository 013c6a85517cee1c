// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"fmt"
	"strings"
)

// nodeInputs represents the operation of a node, along with its static (non-node) parameters.
// Each operation has its own implementation, named nodeInputs<OperationName>.
type nodeInputs interface {
	Type() NodeType

	// String prints a descriptive representation of the operation, given the names of its input nodes.
	String(inputNames []string) string
}

// nodeInputsBasic is used by operations that have no static parameters.
type nodeInputsBasic NodeType

func (ni nodeInputsBasic) Type() NodeType { return NodeType(ni) }

func (ni nodeInputsBasic) String(inputNames []string) string {
	return fmt.Sprintf("%s(%s)", NodeType(ni), strings.Join(inputNames, ", "))
}

var (
	nodeInputsAdd  = nodeInputsBasic(NodeTypeAdd)
	nodeInputsMul  = nodeInputsBasic(NodeTypeMul)
	nodeInputsDiv  = nodeInputsBasic(NodeTypeDiv)
	nodeInputsExp  = nodeInputsBasic(NodeTypeExp)
	nodeInputsRelu = nodeInputsBasic(NodeTypeRelu)
	nodeInputsTanh = nodeInputsBasic(NodeTypeTanh)
)

// nodeInputsConst is a leaf: no inputs.
type nodeInputsConst struct{}

func (nodeInputsConst) Type() NodeType { return NodeTypeConst }

func (nodeInputsConst) String(_ []string) string { return "Const()" }

// nodeInputsPow holds the exponent: it is a fixed value, not a node of the graph.
type nodeInputsPow struct {
	exponent float64
}

func (ni *nodeInputsPow) Type() NodeType { return NodeTypePow }

func (ni *nodeInputsPow) String(inputNames []string) string {
	return fmt.Sprintf("Pow(%s, exponent=%s)", strings.Join(inputNames, ", "), formatFloat(ni.exponent))
}
