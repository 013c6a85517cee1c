// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"

	"github.com/gomlx/scalargrad/pkg/core/graph"
	"github.com/gomlx/scalargrad/pkg/support/xslices"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// numPlotSamples is the number of points sampled for each curve.
const numPlotSamples = 401

var activations = map[string]func(x *graph.Node) *graph.Node{
	"tanh": graph.Tanh,
	"relu": graph.Relu,
	"exp":  graph.Exp,
}

func activationNames() []string {
	return xslices.SortedKeys(activations)
}

func parseActivationName(name string) (string, error) {
	name = strings.ToLower(name)
	if _, found := activations[name]; !found {
		return "", errors.Errorf("unknown activation %q, valid values are %q", name, activationNames())
	}
	return name, nil
}

// sampleActivation evaluates activationFn and its derivative at numSamples points evenly spaced
// in [-xRange, xRange]. Each point is a separate graph, differentiated with graph.Backward.
func sampleActivation(activationFn func(x *graph.Node) *graph.Node, xRange float64, numSamples int) (values, derivatives plotter.XYs) {
	values = make(plotter.XYs, numSamples)
	derivatives = make(plotter.XYs, numSamples)
	step := 2 * xRange / float64(numSamples-1)
	for ii := range numSamples {
		xValue := -xRange + float64(ii)*step
		x := graph.Const(xValue)
		y := activationFn(x)
		graph.Backward(y)
		values[ii].X, values[ii].Y = xValue, y.Value()
		derivatives[ii].X, derivatives[ii].Y = xValue, x.Grad()
	}
	return
}

// plotActivations plots each of the named activations and their derivatives to a PNG file.
func plotActivations(filePath string, names []string, xRange float64) error {
	if len(names) == 0 {
		return errors.New("no activations to plot")
	}
	if xRange <= 0 {
		return errors.Errorf("invalid plot range %g, it must be > 0", xRange)
	}
	var lines []any
	for _, name := range names {
		activationFn, found := activations[name]
		if !found {
			return errors.Errorf("unknown activation %q, valid values are %q", name, activationNames())
		}
		values, derivatives := sampleActivation(activationFn, xRange, numPlotSamples)
		lines = append(lines, name+"(x)", values, name+"'(x)", derivatives)
	}

	p := plot.New()
	p.Title.Text = strings.Join(names, ", ")
	p.X.Label.Text = "x"
	p.X.Min = -xRange
	p.X.Max = xRange
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLines(p, lines...); err != nil {
		return errors.Wrapf(err, "failed to create lines for plot of %q", names)
	}
	if err := p.Save(10*vg.Inch, 6*vg.Inch, filePath); err != nil {
		return errors.Wrapf(err, "failed to save plot to %q", filePath)
	}
	return nil
}
