// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package graphtest holds test utilities for packages that depend on the graph package.
package graphtest

import (
	"testing"

	"github.com/gomlx/scalargrad/pkg/core/graph"
	"github.com/gomlx/scalargrad/pkg/support/xslices"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

// TestGraphFn should build an output node from the given input leaves.
type TestGraphFn func(inputs []*graph.Node) *graph.Node

// DefaultEpsilon is the step used by NumericGradients when epsilon <= 0.
const DefaultEpsilon = 1e-6

func buildLeaves(at []float64) []*graph.Node {
	return xslices.Map(at, func(v float64) *graph.Node { return graph.Const(v) })
}

// AnalyticGradients builds graphFn over leaves with the values given in at, runs graph.Backward
// on its output, and returns the output value and the gradients of each input.
func AnalyticGradients(graphFn TestGraphFn, at []float64) (value float64, grads []float64) {
	inputs := buildLeaves(at)
	output := graphFn(inputs)
	graph.Backward(output)
	grads = xslices.Map(inputs, (*graph.Node).Grad)
	return output.Value(), grads
}

// NumericGradients estimates the gradient of graphFn with respect to each of its inputs, at the
// point given by at, using central finite differences: (f(x+ε)-f(x-ε))/2ε.
//
// A new graph is built for each probe, Backward is never called.
func NumericGradients(graphFn TestGraphFn, at []float64, epsilon float64) []float64 {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	probe := make([]float64, len(at))
	eval := func(ii int, delta float64) float64 {
		copy(probe, at)
		probe[ii] += delta
		return graphFn(buildLeaves(probe)).Value()
	}
	grads := make([]float64, len(at))
	for ii := range at {
		grads[ii] = (eval(ii, epsilon) - eval(ii, -epsilon)) / (2 * epsilon)
	}
	return grads
}

// CheckGradients compares, for each input, the gradient computed by graph.Backward with the
// numeric estimate of NumericGradients, failing t if they differ by more than delta.
func CheckGradients(t *testing.T, testName string, graphFn TestGraphFn, at []float64, delta float64) {
	t.Run(testName, func(t *testing.T) {
		value, analytic := AnalyticGradients(graphFn, at)
		numeric := NumericGradients(graphFn, at, 0)
		klog.V(1).Infof("%s: f(%v)=%g, analytic gradients=%v, numeric gradients=%v", testName, at, value, analytic, numeric)
		require.Len(t, analytic, len(numeric))
		for ii := range analytic {
			require.InDeltaf(t, numeric[ii], analytic[ii], delta,
				"%s: gradient of input #%d at %v: numeric=%g, analytic=%g", testName, ii, at, numeric[ii], analytic[ii])
		}
	})
}
