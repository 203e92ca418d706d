package autodiff

import (
	"github.com/pkg/errors"

	"github.com/born-ml/revgrad/internal/tensor"
)

// pass holds the gradients computed by one backward pass, indexed by
// NodeID. A nil entry is a zero gradient. They are added into Node.grad
// only once the whole pass has succeeded.
type pass struct {
	g     *Graph
	grads []*tensor.Array
}

func newPass(g *Graph) *pass {
	return &pass{g: g, grads: make([]*tensor.Array, len(g.nodes))}
}

// vjpFn adds the vector-Jacobian product of grad, the gradient of n in
// this pass, into the pass gradient of every operand of n that requires
// gradients. It never assigns: an operand consumed by several nodes sums
// the contributions of all of them.
type vjpFn func(p *pass, n *Node, grad *tensor.Array) error

// vjpRules is indexed by OpKind. Leaves have no rule.
var vjpRules = [numOpKinds]vjpFn{
	OpAdd:    addVJP,
	OpMul:    mulVJP,
	OpNeg:    negVJP,
	OpMatMul: matMulVJP,
	OpPow:    powVJP,
	OpDiv:    divVJP,
	OpExp:    expVJP,
}

// accumulate adds contribution into input's pass gradient, first summing
// it over any axes input was broadcast along in the forward pass.
func (p *pass) accumulate(input *Node, contribution *tensor.Array) error {
	if !input.requiresGrad {
		return nil
	}
	reduced, err := p.g.backend.SumTo(contribution, input.Shape())
	if err != nil {
		return err
	}
	if p.grads[input.id] == nil {
		p.grads[input.id] = reduced
		return nil
	}
	return p.g.backend.AddInto(p.grads[input.id], reduced)
}

// operands returns the two children of a binary node.
func (p *pass) operands(n *Node) (*Node, *Node) {
	return p.g.nodes[n.inputs[0]], p.g.nodes[n.inputs[1]]
}

// d(a+b)/da = d(a+b)/db = 1.
func addVJP(p *pass, n *Node, grad *tensor.Array) error {
	a, b := p.operands(n)
	if err := p.accumulate(a, grad); err != nil {
		return err
	}
	return p.accumulate(b, grad)
}

// d(a*b)/da = b, d(a*b)/db = a.
func mulVJP(p *pass, n *Node, grad *tensor.Array) error {
	backend := p.g.backend
	a, b := p.operands(n)
	if a.requiresGrad {
		gradA, err := backend.Mul(b.data, grad)
		if err != nil {
			return err
		}
		if err := p.accumulate(a, gradA); err != nil {
			return err
		}
	}
	if b.requiresGrad {
		gradB, err := backend.Mul(a.data, grad)
		if err != nil {
			return err
		}
		if err := p.accumulate(b, gradB); err != nil {
			return err
		}
	}
	return nil
}

// d(-a)/da = -1.
func negVJP(p *pass, n *Node, grad *tensor.Array) error {
	a := p.g.nodes[n.inputs[0]]
	if !a.requiresGrad {
		return nil
	}
	return p.accumulate(a, p.g.backend.Neg(grad))
}

// For C = A @ B: dA = dC @ Bᵀ (M,N)@(N,K) -> (M,K), and
// dB = Aᵀ @ dC (K,M)@(M,N) -> (K,N).
func matMulVJP(p *pass, n *Node, grad *tensor.Array) error {
	backend := p.g.backend
	a, b := p.operands(n)
	if a.requiresGrad {
		bT, err := backend.Transpose(b.data)
		if err != nil {
			return err
		}
		gradA, err := backend.MatMul(grad, bT)
		if err != nil {
			return err
		}
		if err := p.accumulate(a, gradA); err != nil {
			return err
		}
	}
	if b.requiresGrad {
		aT, err := backend.Transpose(a.data)
		if err != nil {
			return err
		}
		gradB, err := backend.MatMul(aT, grad)
		if err != nil {
			return err
		}
		if err := p.accumulate(b, gradB); err != nil {
			return err
		}
	}
	return nil
}

// d(a^p)/da = p * a^(p-1).
func powVJP(p *pass, n *Node, grad *tensor.Array) error {
	backend := p.g.backend
	a := p.g.nodes[n.inputs[0]]
	if !a.requiresGrad {
		return nil
	}
	local := backend.Scale(backend.Pow(a.data, n.exponent-1), n.exponent)
	gradA, err := backend.Mul(local, grad)
	if err != nil {
		return err
	}
	return p.accumulate(a, gradA)
}

// d(a/b)/da = 1/b, d(a/b)/db = -a/b².
func divVJP(p *pass, n *Node, grad *tensor.Array) error {
	backend := p.g.backend
	a, b := p.operands(n)
	if a.requiresGrad {
		gradA, err := backend.Div(grad, b.data)
		if err != nil {
			return err
		}
		if err := p.accumulate(a, gradA); err != nil {
			return err
		}
	}
	if b.requiresGrad {
		num, err := backend.Mul(grad, a.data)
		if err != nil {
			return err
		}
		quot, err := backend.Div(num, backend.Pow(b.data, 2))
		if err != nil {
			return err
		}
		if err := p.accumulate(b, backend.Neg(quot)); err != nil {
			return err
		}
	}
	return nil
}

// d(exp(a))/da = exp(a), which is the node's own data.
func expVJP(p *pass, n *Node, grad *tensor.Array) error {
	a := p.g.nodes[n.inputs[0]]
	if !a.requiresGrad {
		return nil
	}
	gradA, err := p.g.backend.Mul(n.data, grad)
	if err != nil {
		return err
	}
	return p.accumulate(a, gradA)
}

// runVJP dispatches n's rule by its OpKind. Nodes that received no
// gradient in this pass contribute nothing.
func (p *pass) runVJP(n *Node) error {
	if !n.requiresGrad || n.op == OpLeaf {
		return nil
	}
	if n.op < 0 || n.op >= numOpKinds || vjpRules[n.op] == nil {
		return errors.Errorf("no gradient rule for operation %s of node #%d", n.op, n.id)
	}
	grad := p.grads[n.id]
	if grad == nil {
		return nil
	}
	return vjpRules[n.op](p, n, grad)
}

// commit adds every gradient of the pass into the nodes' accumulators.
func (p *pass) commit(order []*Node) error {
	for _, n := range order {
		grad := p.grads[n.id]
		if grad == nil {
			continue
		}
		if err := p.g.backend.AddInto(n.grad, grad); err != nil {
			return errors.WithMessagef(err, "accumulating gradient of node #%d", n.id)
		}
	}
	return nil
}
