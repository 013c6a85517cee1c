// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// scalargrad evaluates a few expressions over two values, a and b, and prints their values along
// with their gradients with respect to a and b. Optionally, it plots an activation function and
// its derivative.
//
// Usage:
//
//	scalargrad -a=10 -b=5 -plot=activations.png -activations=tanh,relu
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/scalargrad/pkg/core/graph"
	"github.com/gomlx/scalargrad/pkg/support/xslices"
	"github.com/janpfeifer/must"
	"github.com/muesli/termenv"
	"k8s.io/klog/v2"
)

var (
	flagA = flag.Float64("a", 10, "Value of the leaf a.")
	flagB = flag.Float64("b", 5, "Value of the leaf b.")

	flagPlot = flag.String("plot", "", "If set, plots the functions selected with --activations and their "+
		"derivatives (computed with graph.Backward) to the given PNG file.")
	flagActivations = xslices.Flag("activations", []string{"tanh"},
		fmt.Sprintf("Comma-separated list of activations to plot, valid values are %q.", activationNames()),
		parseActivationName)
	flagRange = flag.Float64("range", 4, "The plot covers x in the interval [-range, range].")

	flagNoColor = flag.Bool("no_color", false, "Disable colors and styles in the output.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if flag.NArg() > 0 {
		klog.Errorf("Unexpected arguments %q. See 'scalargrad -help'.", flag.Args())
		os.Exit(1)
	}
	if *flagNoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	report(*flagA, *flagB)
	if *flagPlot != "" {
		must.M(plotActivations(*flagPlot, *flagActivations, *flagRange))
		fmt.Printf("Plot of %q saved to %q\n", *flagActivations, *flagPlot)
	}
}

// expression is built fresh, over new leaves, for each row of the report.
type expression struct {
	name    string
	buildFn func(a, b *graph.Node) *graph.Node
}

var expressions = []expression{
	{"a", func(a, _ *graph.Node) *graph.Node { return a }},
	{"b", func(_, b *graph.Node) *graph.Node { return b }},
	{"a + b", graph.Add},
	{"a - b", graph.Sub},
	{"a * b", graph.Mul},
	{"a / b", graph.Div},
	{"a ** 2", func(a, _ *graph.Node) *graph.Node { return graph.Pow(a, 2) }},
	{"a / 2", func(a, _ *graph.Node) *graph.Node { return graph.DivScalar(a, 2) }},
	{"exp(a)", func(a, _ *graph.Node) *graph.Node { return graph.Exp(a) }},
	{"relu(a)", func(a, _ *graph.Node) *graph.Node { return graph.Relu(a) }},
	{"tanh(a)", func(a, _ *graph.Node) *graph.Node { return graph.Tanh(a) }},
	{"tanh(a*b + a)", func(a, b *graph.Node) *graph.Node { return graph.Tanh(graph.Add(graph.Mul(a, b), a)) }},
}

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)

	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 0, 4)
)

func newTable() *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			switch {
			case row == lgtable.HeaderRow:
				return headerRowStyle
			case row%2 == 0:
				s = evenRowStyle
			default:
				s = oddRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Left)
			} else {
				s = s.Align(lipgloss.Right)
			}
			return
		})
}

// report prints the value and gradients of each of the expressions.
func report(aValue, bValue float64) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Expressions for a=%g, b=%g", aValue, bValue)))
	table := newTable().Headers("expression", "value", "∂/∂a", "∂/∂b")
	var numNodes, numFailed int
	for _, expr := range expressions {
		a := graph.Const(aValue).SetLabel("a")
		b := graph.Const(bValue).SetLabel("b")
		var output *graph.Node
		err := graph.TryBuild(func() {
			output = expr.buildFn(a, b)
			graph.Backward(output)
		})
		if err != nil {
			klog.Errorf("Failed to evaluate %q: %v", expr.name, err)
			table.Row(expr.name, "error", "-", "-")
			numFailed++
			continue
		}
		klog.V(1).Infof("%s: %s", expr.name, output)
		numNodes += len(graph.TopologicalOrder(output))
		table.Row(expr.name, formatValue(output.Value()), formatValue(a.Grad()), formatValue(b.Grad()))
	}
	fmt.Println(table.Render())

	summary := newTable()
	summary.Row("# expressions", humanize.Comma(int64(len(expressions))))
	summary.Row("# failed", humanize.Comma(int64(numFailed)))
	summary.Row("# graph nodes", humanize.Comma(int64(numNodes)))
	fmt.Println(summary.Render())
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
