// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over
// n-dimensional arrays.
//
// Operations on Nodes of a Graph are evaluated eagerly and recorded in the
// graph's arena. Backward walks the recorded graph from a root in reverse
// topological order and accumulates d(sum(root))/d(node) into the Grad of
// every node that requires gradients.
//
// Example:
//
//	import (
//	    "github.com/born-ml/revgrad/autodiff"
//	    "github.com/born-ml/revgrad/tensor"
//	)
//
//	func main() {
//	    g := autodiff.NewGraph()
//	    a := g.Variable(tensor.MustFromSlice([]float64{2}))
//	    b := g.Variable(tensor.MustFromSlice([]float64{3}))
//
//	    ab, _ := a.Mul(b)
//	    z, _ := ab.Add(b.Exp())
//
//	    // Compute gradients
//	    if err := autodiff.Backward(z); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(a.Grad(), b.Grad())
//	}
package autodiff

import (
	"github.com/go-logr/logr"

	"github.com/born-ml/revgrad/internal/autodiff"
	"github.com/born-ml/revgrad/tensor"
)

// Graph is the arena owning every node of a computation.
type Graph = autodiff.Graph

// Node is a value in a Graph: forward data, gradient and the operation
// that produced it.
type Node = autodiff.Node

// NodeID is the handle of a node within its graph.
type NodeID = autodiff.NodeID

// OpKind identifies the operation that produced a node.
type OpKind = autodiff.OpKind

// Operation kinds.
const (
	OpLeaf   = autodiff.OpLeaf
	OpAdd    = autodiff.OpAdd
	OpMul    = autodiff.OpMul
	OpNeg    = autodiff.OpNeg
	OpMatMul = autodiff.OpMatMul
	OpPow    = autodiff.OpPow
	OpDiv    = autodiff.OpDiv
	OpExp    = autodiff.OpExp
)

// Option configures a Graph.
type Option = autodiff.Option

// NewGraph creates an empty graph. Without options it computes on the CPU
// backend and logs through klog.
func NewGraph(opts ...Option) *Graph {
	return autodiff.NewGraph(opts...)
}

// WithBackend sets the backend that computes forward values and gradients.
func WithBackend(backend tensor.Backend) Option {
	return autodiff.WithBackend(backend)
}

// WithLogger sets the logger that traces backward passes.
func WithLogger(logger logr.Logger) Option {
	return autodiff.WithLogger(logger)
}

// WithStrictDivision makes Div reject divisors with a zero element.
func WithStrictDivision(strict bool) Option {
	return autodiff.WithStrictDivision(strict)
}

// Add returns a + b. Either operand may be a literal.
func Add(a, b any) (*Node, error) { return autodiff.Add(a, b) }

// Sub returns a - b, recorded as a + (-b).
func Sub(a, b any) (*Node, error) { return autodiff.Sub(a, b) }

// Mul returns the elementwise product a * b.
func Mul(a, b any) (*Node, error) { return autodiff.Mul(a, b) }

// Div returns the elementwise quotient a / b.
func Div(a, b any) (*Node, error) { return autodiff.Div(a, b) }

// MatMul returns the matrix product a @ b of two rank-2 operands.
func MatMul(a, b any) (*Node, error) { return autodiff.MatMul(a, b) }

// Pow returns a raised elementwise to the constant scalar exponent p.
func Pow(a *Node, p any) (*Node, error) { return autodiff.Pow(a, p) }

// Neg returns -a. a must not be nil.
func Neg(a *Node) *Node { return autodiff.Neg(a) }

// Exp returns e raised elementwise to a. a must not be nil.
func Exp(a *Node) *Node { return autodiff.Exp(a) }

// Backward computes the gradient of sum(root) with respect to every node
// reachable from root.
func Backward(root *Node) error {
	return autodiff.Backward(root)
}

// BackwardWithGrad runs Backward with an explicit upstream gradient for
// root. seed must have root's shape.
func BackwardWithGrad(root *Node, seed *tensor.Array) error {
	return autodiff.BackwardWithGrad(root, seed)
}

// TopologicalOrder returns the nodes reachable from root, every node after
// its inputs and root last. A nil root has an empty order.
func TopologicalOrder(root *Node) []*Node {
	return autodiff.TopologicalOrder(root)
}
