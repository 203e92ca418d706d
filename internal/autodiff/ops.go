package autodiff

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/revgrad/internal/tensor"
)

// Operation constructors compute the forward value eagerly and record the
// result as a new node whose children are the operands. Binary
// constructors accept a *Node or a numeric literal (see Graph.Constant) on
// either side, as long as one side is a *Node. Literals become leaves that
// do not require gradients.
//
// Elementwise operations broadcast like NumPy; gradients are summed back to
// each operand's shape. Incompatible shapes fail with ErrShapeMismatch and
// leave the graph unchanged.

// Add returns a + b.
func Add(a, b any) (*Node, error) {
	return binary("add", OpAdd, a, b, func(g *Graph, x, y *Node) (*tensor.Array, error) {
		return g.backend.Add(x.data, y.data)
	})
}

// Mul returns the elementwise product a * b.
func Mul(a, b any) (*Node, error) {
	return binary("mul", OpMul, a, b, func(g *Graph, x, y *Node) (*tensor.Array, error) {
		return g.backend.Mul(x.data, y.data)
	})
}

// MatMul returns the matrix product a @ b of two 2-D operands.
func MatMul(a, b any) (*Node, error) {
	return binary("matmul", OpMatMul, a, b, func(g *Graph, x, y *Node) (*tensor.Array, error) {
		return g.backend.MatMul(x.data, y.data)
	})
}

// Div returns the elementwise quotient a / b. Zero divisors give ±Inf or
// NaN unless the graph was created WithStrictDivision.
func Div(a, b any) (*Node, error) {
	return binary("div", OpDiv, a, b, func(g *Graph, x, y *Node) (*tensor.Array, error) {
		if g.strictDivision {
			for i, v := range y.data.Data() {
				if v == 0 {
					return nil, errors.Wrapf(tensor.ErrDivisionByZero, "div: divisor element %d is zero", i)
				}
			}
		}
		return g.backend.Div(x.data, y.data)
	})
}

// Sub returns a - b, built as Add(a, Neg(b)).
func Sub(a, b any) (*Node, error) {
	g, err := graphOf("sub", a, b)
	if err != nil {
		return nil, err
	}
	return g.build(func() (*Node, error) {
		y, err := g.operand(b)
		if err != nil {
			return nil, err
		}
		return Add(a, Neg(y))
	})
}

// Neg returns -a. a must be a non-nil node; Neg panics otherwise.
func Neg(a *Node) *Node {
	g := a.graph
	return g.newNode(OpNeg, g.backend.Neg(a.data), []NodeID{a.id}, a.requiresGrad)
}

// Exp returns the elementwise exponential of a. As with Neg, a must be a
// non-nil node.
func Exp(a *Node) *Node {
	g := a.graph
	return g.newNode(OpExp, g.backend.Exp(a.data), []NodeID{a.id}, a.requiresGrad)
}

// Pow raises a elementwise to the constant power p. p must be a real
// scalar: a Go number or a single-element array. The exponent is not
// differentiated, so a *Node exponent is rejected with ErrInvalidArgument.
func Pow(a *Node, p any) (*Node, error) {
	if a == nil {
		return nil, errors.Wrap(tensor.ErrInvalidArgument, "pow: nil node")
	}
	exponent, err := scalarExponent(p)
	if err != nil {
		return nil, err
	}
	g := a.graph
	n := g.newNode(OpPow, g.backend.Pow(a.data, exponent), []NodeID{a.id}, a.requiresGrad)
	n.exponent = exponent
	return n, nil
}

func scalarExponent(p any) (float64, error) {
	if _, ok := p.(*Node); ok {
		return 0, errors.Wrap(tensor.ErrInvalidArgument, "pow: exponent must be a constant, not a node")
	}
	arr, err := literal(p)
	if err != nil {
		return 0, errors.WithMessage(err, "pow: exponent")
	}
	exponent, err := arr.Item()
	if err != nil {
		return 0, errors.Wrapf(tensor.ErrInvalidArgument, "pow: exponent must be a scalar, got shape %v", arr.Shape())
	}
	if math.IsNaN(exponent) {
		return 0, errors.Wrap(tensor.ErrInvalidArgument, "pow: exponent is NaN")
	}
	return exponent, nil
}

// binary builds a two-operand node of the given kind.
func binary(name string, op OpKind, a, b any, forward func(g *Graph, x, y *Node) (*tensor.Array, error)) (*Node, error) {
	g, err := graphOf(name, a, b)
	if err != nil {
		return nil, err
	}
	return g.build(func() (*Node, error) {
		x, err := g.operand(a)
		if err != nil {
			return nil, errors.WithMessage(err, name)
		}
		y, err := g.operand(b)
		if err != nil {
			return nil, errors.WithMessage(err, name)
		}
		data, err := forward(g, x, y)
		if err != nil {
			return nil, err
		}
		return g.newNode(op, data, []NodeID{x.id, y.id}, x.requiresGrad || y.requiresGrad), nil
	})
}

// graphOf returns the graph of the first *Node among operands.
func graphOf(name string, operands ...any) (*Graph, error) {
	for _, v := range operands {
		if n, ok := v.(*Node); ok {
			if n == nil {
				return nil, errors.Wrapf(tensor.ErrInvalidArgument, "%s: nil node operand", name)
			}
			return n.graph, nil
		}
	}
	return nil, errors.Wrapf(tensor.ErrInvalidArgument, "%s: at least one operand must be a *Node", name)
}

// Add returns n + other.
func (n *Node) Add(other any) (*Node, error) {
	return Add(n, other)
}

// Sub returns n - other.
func (n *Node) Sub(other any) (*Node, error) {
	return Sub(n, other)
}

// Mul returns n * other, elementwise.
func (n *Node) Mul(other any) (*Node, error) {
	return Mul(n, other)
}

// Div returns n / other, elementwise.
func (n *Node) Div(other any) (*Node, error) {
	return Div(n, other)
}

// MatMul returns n @ other.
func (n *Node) MatMul(other any) (*Node, error) {
	return MatMul(n, other)
}

// Pow returns n raised elementwise to the constant power p.
func (n *Node) Pow(p any) (*Node, error) {
	return Pow(n, p)
}

// Neg returns -n.
func (n *Node) Neg() *Node {
	return Neg(n)
}

// Exp returns exp(n), elementwise.
func (n *Node) Exp() *Node {
	return Exp(n)
}
