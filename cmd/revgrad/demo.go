package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/born-ml/revgrad/autodiff"
	"github.com/born-ml/revgrad/tensor"
)

// runDemo builds z = a*b + exp(b) with a=2, b=3, runs Backward and prints
// the graph and the gradients.
func runDemo(w io.Writer) error {
	g := autodiff.NewGraph()
	a := g.Variable(tensor.MustFromSlice([]float64{2})).SetLabel("a")
	b := g.Variable(tensor.MustFromSlice([]float64{3})).SetLabel("b")

	ab, err := a.Mul(b)
	if err != nil {
		return errors.WithMessage(err, "demo")
	}
	z, err := ab.Add(b.Exp())
	if err != nil {
		return errors.WithMessage(err, "demo")
	}
	z.SetLabel("z")

	if err := autodiff.Backward(z); err != nil {
		return errors.WithMessage(err, "demo")
	}

	fmt.Fprintln(w, g)
	fmt.Fprintf(w, "z     = %v\n", z.Data())
	fmt.Fprintf(w, "dz/da = %v\n", a.Grad())
	fmt.Fprintf(w, "dz/db = %v\n", b.Grad())
	return nil
}
