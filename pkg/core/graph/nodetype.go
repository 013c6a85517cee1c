// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// NodeType identifies the operation that produced a Node. It selects the local gradient rule
// used by Backward, see VJPRegistration.
type NodeType int

const (
	NodeTypeInvalid NodeType = iota

	// NodeTypeConst is a leaf node: an input value with no parents.
	NodeTypeConst

	NodeTypeAdd
	NodeTypeMul
	NodeTypeDiv
	NodeTypePow
	NodeTypeExp
	NodeTypeRelu
	NodeTypeTanh
)

var nodeTypeNames = []string{
	NodeTypeInvalid: "Invalid",
	NodeTypeConst:   "Const",
	NodeTypeAdd:     "Add",
	NodeTypeMul:     "Mul",
	NodeTypeDiv:     "Div",
	NodeTypePow:     "Pow",
	NodeTypeExp:     "Exp",
	NodeTypeRelu:    "Relu",
	NodeTypeTanh:    "Tanh",
}

// String returns the name of the node type, without the "NodeType" prefix.
func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
	return nodeTypeNames[t]
}

// NodeTypeValues returns all valid node types.
func NodeTypeValues() []NodeType {
	values := make([]NodeType, 0, len(nodeTypeNames))
	for ii := range nodeTypeNames {
		values = append(values, NodeType(ii))
	}
	return values
}

// NodeTypeString converts a node type name (case-insensitive) back to its NodeType.
func NodeTypeString(name string) (NodeType, error) {
	for ii, typeName := range nodeTypeNames {
		if strings.EqualFold(typeName, name) {
			return NodeType(ii), nil
		}
	}
	return NodeTypeInvalid, errors.Errorf("%q does not belong to NodeType values", name)
}
