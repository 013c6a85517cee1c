// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package graph implements reverse-mode automatic differentiation over scalar (float64) values.
//
// Every operation (Add, Mul, Pow, Tanh, etc.) eagerly computes its value and returns a new Node
// that records the operands it was computed from. The result is a directed acyclic graph of
// Node's, built as the computation is evaluated. Backward then walks the ancestors of an output
// node and accumulates, in each of them, the gradient of the output with respect to that node.
//
// Example:
//
//	x := graph.Const(3.0).SetLabel("x")
//	y := graph.Const(-4.0).SetLabel("y")
//	z := graph.Add(graph.Mul(x, y), graph.Pow(x, 2))
//	graph.Backward(z)
//	fmt.Println(z.Value(), x.Grad(), y.Grad()) // -3 2 3
//
// # Error Handling
//
// Like the rest of GoMLX, graph building functions "throw" errors with panic(), which keeps
// expressions readable. Failures are detected before the new node is created, so a failed
// operation never leaves a partial node in the graph. Use TryBuild (or exceptions.TryCatch[error])
// to convert them back into an error:
//
//	err := graph.TryBuild(func() { q = graph.Div(a, b) })
//	if errors.Is(err, graph.ErrDivisionByZero) { ... }
//
// # Gradient accumulation
//
// Gradients are never reset automatically. Calling Backward a second time on a graph that shares
// nodes with a previous pass accumulates into the existing gradients. Call ZeroGradients before
// each independent backward pass if nodes are reused.
//
// # Concurrency
//
// Graphs are not safe for concurrent use: build and differentiate each graph in a single
// goroutine. Independent graphs can be used in different goroutines.
package graph
