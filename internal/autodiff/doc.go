// Package autodiff implements reverse-mode automatic differentiation over
// n-dimensional arrays.
//
// Architecture:
//   - Graph: an arena owning every Node of a computation; NodeID is the
//     index of a node in the arena.
//   - Node: forward data, gradient accumulator, operation kind and operand
//     handles.
//   - Operation constructors (Add, Mul, Neg, Sub, MatMul, Pow, Div, Exp)
//     compute the forward value eagerly through the graph's backend.
//   - Backward: orders the nodes reachable from a root topologically, seeds
//     the root gradient and replays the order in reverse, running the VJP
//     rule selected by each node's OpKind.
//
// Usage:
//
//	g := autodiff.NewGraph()
//	a := g.Variable(tensor.MustFromSlice([]float64{2}))
//	b := g.Variable(tensor.MustFromSlice([]float64{3}))
//	ab, _ := a.Mul(b)
//	z, _ := ab.Add(b.Exp())
//	_ = autodiff.Backward(z)
//	fmt.Println(a.Grad(), b.Grad()) // [3] [22.085...]
package autodiff
