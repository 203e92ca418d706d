package autodiff

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/revgrad/internal/backend/cpu"
	"github.com/born-ml/revgrad/internal/tensor"
)

// Graph is the arena that owns every Node of one computation. A node's
// NodeID is its index in the arena, and operands always have smaller IDs
// than the nodes computed from them, so the graph is acyclic by
// construction.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	nodes          []*Node
	backend        tensor.Backend
	logger         klog.Logger
	strictDivision bool
}

// NewGraph creates an empty graph.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{
		nodes:   make([]*Node, 0, 64),
		backend: cpu.New(),
		logger:  klog.Background(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Backend returns the backend computing the graph's arrays.
func (g *Graph) Backend() tensor.Backend {
	return g.backend
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the node with the given handle, or nil if there is none.
func (g *Graph) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// Nodes returns all nodes in creation order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// ZeroGrad resets the gradient of every node. Call it between backward
// passes; Backward itself only accumulates.
func (g *Graph) ZeroGrad() {
	for _, n := range g.nodes {
		n.ZeroGrad()
	}
}

// Leaf adds an input node holding a copy of data.
func (g *Graph) Leaf(data *tensor.Array, requiresGrad bool) *Node {
	return g.newNode(OpLeaf, data.Clone(), nil, requiresGrad)
}

// Variable adds a leaf that requires gradients.
func (g *Graph) Variable(data *tensor.Array) *Node {
	return g.Leaf(data, true)
}

// Constant adds a leaf that does not require gradients, converting a
// literal the same way operation constructors do.
func (g *Graph) Constant(value any) (*Node, error) {
	return g.operand(value)
}

// newNode appends a node to the arena.
func (g *Graph) newNode(op OpKind, data *tensor.Array, inputs []NodeID, requiresGrad bool) *Node {
	n := &Node{
		graph:        g,
		id:           NodeID(len(g.nodes)),
		op:           op,
		inputs:       inputs,
		data:         data,
		grad:         tensor.ZerosLike(data),
		requiresGrad: requiresGrad,
	}
	g.nodes = append(g.nodes, n)
	return n
}

// build runs an operation constructor and drops every node it appended if
// it fails, so a failed operation leaves the graph as it was.
func (g *Graph) build(fn func() (*Node, error)) (*Node, error) {
	mark := len(g.nodes)
	n, err := fn()
	if err != nil {
		for i := mark; i < len(g.nodes); i++ {
			g.nodes[i] = nil
		}
		g.nodes = g.nodes[:mark]
		return nil, err
	}
	return n, nil
}

// operand returns v as a node of g: nodes are used as they are, literals
// become new leaves that do not require gradients.
func (g *Graph) operand(v any) (*Node, error) {
	if n, ok := v.(*Node); ok {
		if n == nil {
			return nil, errors.Wrap(tensor.ErrInvalidArgument, "nil node operand")
		}
		if n.graph != g {
			return nil, errors.Wrapf(tensor.ErrInvalidArgument, "node %s belongs to a different graph", n)
		}
		return n, nil
	}
	data, err := literal(v)
	if err != nil {
		return nil, err
	}
	return g.newNode(OpLeaf, data, nil, false), nil
}

// literal converts a numeric Go value into an array.
func literal(v any) (*tensor.Array, error) {
	switch x := v.(type) {
	case *tensor.Array:
		if x == nil {
			return nil, errors.Wrap(tensor.ErrInvalidArgument, "nil array operand")
		}
		return x.Clone(), nil
	case []float64:
		return tensor.FromSlice(x)
	case float64:
		return tensor.Scalar(x), nil
	case float32:
		return tensor.Scalar(float64(x)), nil
	case int:
		return tensor.Scalar(float64(x)), nil
	case int8:
		return tensor.Scalar(float64(x)), nil
	case int16:
		return tensor.Scalar(float64(x)), nil
	case int32:
		return tensor.Scalar(float64(x)), nil
	case int64:
		return tensor.Scalar(float64(x)), nil
	case uint:
		return tensor.Scalar(float64(x)), nil
	case uint8:
		return tensor.Scalar(float64(x)), nil
	case uint16:
		return tensor.Scalar(float64(x)), nil
	case uint32:
		return tensor.Scalar(float64(x)), nil
	case uint64:
		return tensor.Scalar(float64(x)), nil
	default:
		return nil, errors.Wrapf(tensor.ErrInvalidArgument, "cannot use %T as an operand", v)
	}
}

// String lists the graph's nodes, one per line.
func (g *Graph) String() string {
	var bytes int
	for _, n := range g.nodes {
		bytes += n.data.ByteSize() + n.grad.ByteSize()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Graph(%d nodes, %s, backend=%s)", len(g.nodes), humanize.Bytes(uint64(bytes)), g.backend.Name())
	for _, n := range g.nodes {
		sb.WriteString("\n\t")
		sb.WriteString(n.String())
		if len(n.inputs) > 0 {
			fmt.Fprintf(&sb, " <- %v", n.inputs)
		}
	}
	return sb.String()
}
