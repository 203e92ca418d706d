package autodiff

import (
	"github.com/pkg/errors"

	"github.com/born-ml/revgrad/internal/tensor"
)

// TopologicalOrder returns root and every node it depends on, each exactly
// once, with every node placed after all of its children. A nil root has
// an empty order.
func TopologicalOrder(root *Node) []*Node {
	if root == nil {
		return nil
	}
	g := root.graph
	visited := make([]bool, len(g.nodes))
	order := make([]*Node, 0, len(g.nodes))

	var visit func(n *Node)
	visit = func(n *Node) {
		if visited[n.id] {
			return
		}
		visited[n.id] = true
		for _, id := range n.inputs {
			visit(g.nodes[id])
		}
		order = append(order, n)
	}
	visit(root)
	return order
}

// Backward computes the gradient of root with respect to every node it
// depends on that requires gradients, adding the result into each node's
// Grad.
//
// The root's gradient is seeded with ones. For a non-scalar root this
// yields the vector-Jacobian product against an all-ones covector, i.e.
// the gradient of the sum of root's elements; use BackwardWithGrad for any
// other covector.
//
// Each call computes its gradients in buffers of its own and then adds
// them into the nodes' Grad, the root's included. Calling Backward twice
// without Graph.ZeroGrad therefore doubles every gradient. If the pass
// fails, no Grad is modified. A root that does not require gradients is a
// no-op.
func Backward(root *Node) error {
	if root == nil {
		return errors.Wrap(tensor.ErrInvalidArgument, "backward: nil root")
	}
	return root.graph.backward(root, tensor.OnesLike(root.data))
}

// BackwardWithGrad is Backward with an explicit seed for the root's
// gradient. seed must have the root's shape.
func BackwardWithGrad(root *Node, seed *tensor.Array) error {
	if root == nil || seed == nil {
		return errors.Wrap(tensor.ErrInvalidArgument, "backward: nil root or seed")
	}
	if !seed.Shape().Equal(root.Shape()) {
		return errors.Wrapf(tensor.ErrShapeMismatch, "backward: seed shape %v for root shape %v", seed.Shape(), root.Shape())
	}
	return root.graph.backward(root, seed)
}

func (g *Graph) backward(root *Node, seed *tensor.Array) error {
	if !root.requiresGrad {
		g.logger.V(2).Info("Backward on a node that does not require gradients", "root", root.id)
		return nil
	}

	order := TopologicalOrder(root)
	if logger := g.logger.V(2); logger.Enabled() {
		names := make([]string, len(order))
		for i, n := range order {
			names[i] = n.String()
		}
		logger.Info("Backward", "root", root.id, "nodes", len(order), "order", names)
	}

	p := newPass(g)
	p.grads[root.id] = seed.Clone()

	// Children precede their consumers in order, so walking it backwards
	// runs each node's rule only after all of its consumers have added
	// their contributions to its gradient.
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		g.logger.V(3).Info("VJP", "node", n.id, "op", n.op.String(), "label", n.label)
		if err := p.runVJP(n); err != nil {
			return errors.WithMessagef(err, "backward through node #%d (%s)", n.id, n.op)
		}
	}
	return p.commit(order)
}
