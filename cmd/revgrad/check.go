package main

import (
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/revgrad/autodiff"
	"github.com/born-ml/revgrad/tensor"
)

type expression func(in []*autodiff.Node) (*autodiff.Node, error)

type checkCase struct {
	name   string
	f      expression
	inputs []*tensor.Array
}

func checkCases() []checkCase {
	x := tensor.MustFromSlice([]float64{0.3, -1.2, 0.8, 1.5, -0.4, 0.9}, 2, 3)
	y := tensor.MustFromSlice([]float64{1.1, 0.7, -1.3, 0.5, 2.0, -0.6}, 2, 3)
	pos := tensor.MustFromSlice([]float64{0.5, 1.2, 2.0, 0.8, 3.0, 1.7}, 2, 3)
	w := tensor.MustFromSlice([]float64{0.2, -0.5, 1.0, 0.3, -1.1, 0.4, 0.6, -0.2, 0.9, 0.1, -0.7, 1.4}, 3, 4)

	return []checkCase{
		{"add", func(in []*autodiff.Node) (*autodiff.Node, error) { return autodiff.Add(in[0], in[1]) }, []*tensor.Array{x, y}},
		{"sub", func(in []*autodiff.Node) (*autodiff.Node, error) { return autodiff.Sub(in[0], in[1]) }, []*tensor.Array{x, y}},
		{"mul", func(in []*autodiff.Node) (*autodiff.Node, error) { return autodiff.Mul(in[0], in[1]) }, []*tensor.Array{x, y}},
		{"neg", func(in []*autodiff.Node) (*autodiff.Node, error) { return autodiff.Neg(in[0]), nil }, []*tensor.Array{x}},
		{"div", func(in []*autodiff.Node) (*autodiff.Node, error) { return autodiff.Div(in[0], in[1]) }, []*tensor.Array{x, pos}},
		{"pow", func(in []*autodiff.Node) (*autodiff.Node, error) { return autodiff.Pow(in[0], 1.5) }, []*tensor.Array{pos}},
		{"exp", func(in []*autodiff.Node) (*autodiff.Node, error) { return autodiff.Exp(in[0]), nil }, []*tensor.Array{x}},
		{"matmul", func(in []*autodiff.Node) (*autodiff.Node, error) { return autodiff.MatMul(in[0], in[1]) }, []*tensor.Array{x, w}},
	}
}

// runCheck compares Backward with central finite differences for every
// operation and fails if any element differs by more than tol.
func runCheck(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	eps := fs.Float64("eps", 1e-6, "finite difference step")
	tol := fs.Float64("tol", 1e-4, "maximum relative error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var failed int
	for _, c := range checkCases() {
		maxErr, err := gradientError(c.f, c.inputs, *eps)
		if err != nil {
			return errors.WithMessagef(err, "check %s", c.name)
		}
		status := "ok"
		if maxErr > *tol {
			status = "FAIL"
			failed++
		}
		klog.V(1).InfoS("Gradient check", "op", c.name, "maxError", maxErr)
		fmt.Fprintf(w, "%-8s %-4s max error %.3g\n", c.name, status, maxErr)
	}
	if failed > 0 {
		return errors.Errorf("%d of %d operations exceed tolerance %g", failed, len(checkCases()), *tol)
	}
	return nil
}

// gradientError returns the largest relative difference between the
// autodiff gradient of sum(f) and its central finite difference estimate.
func gradientError(f expression, inputs []*tensor.Array, eps float64) (float64, error) {
	g := autodiff.NewGraph()
	nodes := make([]*autodiff.Node, len(inputs))
	for i, in := range inputs {
		nodes[i] = g.Variable(in)
	}
	root, err := f(nodes)
	if err != nil {
		return 0, err
	}
	if err := autodiff.Backward(root); err != nil {
		return 0, err
	}

	var maxErr float64
	for i, in := range inputs {
		analytic := nodes[i].Grad().Data()
		for j := range in.NumElements() {
			perturbed := make([]*tensor.Array, len(inputs))
			copy(perturbed, inputs)
			perturbed[i] = in.Clone()

			perturbed[i].Data()[j] = in.Data()[j] + eps
			plus, err := sumOf(f, perturbed)
			if err != nil {
				return 0, err
			}
			perturbed[i].Data()[j] = in.Data()[j] - eps
			minus, err := sumOf(f, perturbed)
			if err != nil {
				return 0, err
			}

			numeric := (plus - minus) / (2 * eps)
			diff := math.Abs(numeric-analytic[j]) / math.Max(1, math.Abs(numeric))
			maxErr = math.Max(maxErr, diff)
		}
	}
	return maxErr, nil
}

func sumOf(f expression, inputs []*tensor.Array) (float64, error) {
	g := autodiff.NewGraph()
	nodes := make([]*autodiff.Node, len(inputs))
	for i, in := range inputs {
		nodes[i] = g.Leaf(in, false)
	}
	root, err := f(nodes)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, v := range root.Data().Data() {
		sum += v
	}
	return sum, nil
}
