package autodiff

import (
	"fmt"

	"github.com/born-ml/revgrad/internal/tensor"
)

// NodeID is the handle of a Node within its Graph: the node's index in the
// graph's arena.
type NodeID int

// OpKind identifies the operation that produced a node. The backward driver
// dispatches on it to pick the node's VJP rule.
type OpKind int

// Operation kinds. OpLeaf marks user inputs and coerced literals.
const (
	OpLeaf OpKind = iota
	OpAdd
	OpMul
	OpNeg
	OpMatMul
	OpPow
	OpDiv
	OpExp

	numOpKinds
)

var opNames = [numOpKinds]string{
	OpLeaf:   "leaf",
	OpAdd:    "+",
	OpMul:    "*",
	OpNeg:    "neg",
	OpMatMul: "@",
	OpPow:    "pow",
	OpDiv:    "/",
	OpExp:    "exp",
}

// String returns the operator symbol or name.
func (k OpKind) String() string {
	if k < 0 || k >= numOpKinds {
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
	return opNames[k]
}

// Node is a value in the computation graph: the forward data of one
// operation (or a leaf input) plus the gradient accumulated into it by
// Backward.
//
// Nodes are created by Graph.Leaf and by the operation constructors, and
// are never structurally changed afterwards. Only the gradient mutates.
type Node struct {
	graph *Graph
	id    NodeID
	op    OpKind

	// inputs are the children: handles of the operands, all smaller than id.
	inputs []NodeID

	// exponent is the constant power of an OpPow node.
	exponent float64

	data         *tensor.Array
	grad         *tensor.Array
	requiresGrad bool
	label        string
}

// Graph that owns this node.
func (n *Node) Graph() *Graph {
	return n.graph
}

// ID is the node's handle within its graph.
func (n *Node) ID() NodeID {
	return n.id
}

// Op returns the kind of operation that produced the node.
func (n *Node) Op() OpKind {
	return n.op
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.inputs) == 0
}

// Inputs returns the operands the node was computed from, in order.
func (n *Node) Inputs() []*Node {
	inputs := make([]*Node, len(n.inputs))
	for i, id := range n.inputs {
		inputs[i] = n.graph.nodes[id]
	}
	return inputs
}

// Data returns the forward value. It must not be modified.
func (n *Node) Data() *tensor.Array {
	return n.data
}

// Grad returns the gradient accumulator, always of the same shape as Data.
func (n *Node) Grad() *tensor.Array {
	return n.grad
}

// Shape returns the shape of the node's data.
func (n *Node) Shape() tensor.Shape {
	return n.data.Shape()
}

// RequiresGrad reports whether the node takes part in gradient
// accumulation.
func (n *Node) RequiresGrad() bool {
	return n.requiresGrad
}

// Exponent returns the constant power of an OpPow node, and 0 otherwise.
func (n *Node) Exponent() float64 {
	return n.exponent
}

// Label returns the node's optional name.
func (n *Node) Label() string {
	return n.label
}

// SetLabel names the node for String and trace logs, and returns it.
func (n *Node) SetLabel(label string) *Node {
	n.label = label
	return n
}

// ZeroGrad resets the node's gradient to zeros.
func (n *Node) ZeroGrad() {
	n.grad.Fill(0)
}

// String describes the node, e.g. "#3 * (1) data=[6] requires_grad=true".
func (n *Node) String() string {
	name := fmt.Sprintf("#%d", n.id)
	if n.label != "" {
		name = fmt.Sprintf("#%d %q", n.id, n.label)
	}
	return fmt.Sprintf("%s %s %v data=%v requires_grad=%t", name, n.op, n.Shape(), n.data, n.requiresGrad)
}
