package autodiff_test

import (
	"math"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/revgrad/internal/autodiff"
	"github.com/born-ml/revgrad/internal/tensor"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func assertGrad(t *testing.T, want []float64, n *autodiff.Node) {
	t.Helper()
	if diff := cmp.Diff(want, n.Grad().Data(), approx); diff != "" {
		t.Errorf("gradient of %s mismatch (-want +got):\n%s", n, diff)
	}
}

func TestBackward_ProductPlusExp(t *testing.T) {
	g := autodiff.NewGraph()
	a := g.Variable(vec(2))
	b := g.Variable(vec(3))

	z := must.M1(must.M1(a.Mul(b)).Add(b.Exp()))
	require.NoError(t, autodiff.Backward(z))

	assertGrad(t, []float64{3}, a)
	assertGrad(t, []float64{2 + math.Exp(3)}, b)
	assertGrad(t, []float64{1}, z)
}

func TestBackward_ScalarMultiple(t *testing.T) {
	for _, c := range []float64{-2, 0, 0.5, 7} {
		g := autodiff.NewGraph()
		a := g.Variable(vec(4))
		require.NoError(t, autodiff.Backward(must.M1(a.Mul(c))))
		assertGrad(t, []float64{c}, a)
	}
}

func TestBackward_AddMul(t *testing.T) {
	g := autodiff.NewGraph()
	aData := mat(2, 3, 1, -2, 3, 0.5, 5, -6)
	bData := mat(2, 3, 7, 8, -9, 10, 0, 12)
	a := g.Variable(aData)
	b := g.Variable(bData)

	f := must.M1(must.M1(a.Mul(b)).Add(a))
	require.NoError(t, autodiff.Backward(f))

	wantA := make([]float64, 6)
	for i, v := range bData.Data() {
		wantA[i] = v + 1
	}
	assertGrad(t, wantA, a)
	assertGrad(t, aData.Data(), b)
}

func TestBackward_AccumulatesAcrossConsumers(t *testing.T) {
	aData := vec(0.5, -1, 2)
	bData := vec(3, 4, 5)

	// Gradient of each consumer on its own.
	gradOf := func(build func(a, b *autodiff.Node) *autodiff.Node) []float64 {
		g := autodiff.NewGraph()
		a := g.Variable(aData)
		b := g.Leaf(bData, false)
		require.NoError(t, autodiff.Backward(build(a, b)))
		return a.Grad().Data()
	}
	viaExp := gradOf(func(a, _ *autodiff.Node) *autodiff.Node { return a.Exp() })
	viaMul := gradOf(func(a, b *autodiff.Node) *autodiff.Node { return must.M1(a.Mul(b)) })

	g := autodiff.NewGraph()
	a := g.Variable(aData)
	b := g.Leaf(bData, false)
	f := must.M1(a.Exp().Add(must.M1(a.Mul(b))))
	require.NoError(t, autodiff.Backward(f))

	want := make([]float64, 3)
	for i := range want {
		want[i] = viaExp[i] + viaMul[i]
	}
	assertGrad(t, want, a)
}

func TestBackward_DiamondVisitsSharedNodeOnce(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Variable(vec(3))
	y := must.M1(x.Mul(x)) // x²
	z := must.M1(y.Add(y)) // 2x²

	order := autodiff.TopologicalOrder(z)
	require.Len(t, order, 3)
	assert.Same(t, x, order[0])
	assert.Same(t, y, order[1])
	assert.Same(t, z, order[2])

	require.NoError(t, autodiff.Backward(z))
	assertGrad(t, []float64{2}, y)
	assertGrad(t, []float64{12}, x)
}

func TestTopologicalOrder_ChildrenFirst(t *testing.T) {
	g := autodiff.NewGraph()
	a := g.Variable(vec(1))
	b := g.Variable(vec(2))
	c := must.M1(a.Mul(b))
	d := must.M1(c.Add(a))
	e := must.M1(d.Div(c))
	unrelated := g.Variable(vec(5))

	order := autodiff.TopologicalOrder(e)
	position := make(map[autodiff.NodeID]int)
	for i, n := range order {
		_, seen := position[n.ID()]
		require.False(t, seen, "node %s listed twice", n)
		position[n.ID()] = i
	}
	for _, n := range order {
		for _, child := range n.Inputs() {
			assert.Less(t, position[child.ID()], position[n.ID()], "%s before %s", child, n)
		}
	}
	assert.NotContains(t, position, unrelated.ID())
	assert.Equal(t, len(order)-1, position[e.ID()])
}

func TestTopologicalOrder_NilRoot(t *testing.T) {
	assert.Empty(t, autodiff.TopologicalOrder(nil))
}

func TestUnaryOperations_RequireNode(t *testing.T) {
	assert.Panics(t, func() { autodiff.Neg(nil) })
	assert.Panics(t, func() { autodiff.Exp(nil) })

	_, err := autodiff.Pow(nil, 2)
	assert.True(t, errors.Is(err, tensor.ErrInvalidArgument))
}

func TestBackward_NoGradForConstants(t *testing.T) {
	g := autodiff.NewGraph()
	a := g.Variable(vec(1, 2))
	c := g.Leaf(vec(3, 4), false)
	d := g.Leaf(vec(5, 6), false)
	e := must.M1(c.Mul(d))
	require.False(t, e.RequiresGrad())

	f := must.M1(e.Mul(a))
	require.NoError(t, autodiff.Backward(f))

	assertGrad(t, []float64{15, 24}, a)
	for _, n := range []*autodiff.Node{c, d, e} {
		assertGrad(t, []float64{0, 0}, n)
	}
}

func TestBackward_RootWithoutGradIsNoop(t *testing.T) {
	g := autodiff.NewGraph()
	c := g.Leaf(vec(3), false)
	e := c.Exp()
	require.NoError(t, autodiff.Backward(e))
	assertGrad(t, []float64{0}, e)
	assertGrad(t, []float64{0}, c)
}

func TestBackward_TwiceDoublesGradients(t *testing.T) {
	g := autodiff.NewGraph()
	a := g.Variable(vec(2))
	b := g.Variable(vec(3))
	ab := must.M1(a.Mul(b))
	z := must.M1(ab.Add(b.Exp()))

	require.NoError(t, autodiff.Backward(z))
	first := []float64{a.Grad().Data()[0], b.Grad().Data()[0], ab.Grad().Data()[0]}

	require.NoError(t, autodiff.Backward(z))
	assertGrad(t, []float64{6}, a)
	assertGrad(t, []float64{2 * (2 + math.Exp(3))}, b)
	assertGrad(t, []float64{2 * first[0]}, a)
	assertGrad(t, []float64{2 * first[1]}, b)
	assertGrad(t, []float64{2 * first[2]}, ab)
	assertGrad(t, []float64{2}, z)

	require.NoError(t, autodiff.Backward(z))
	assertGrad(t, []float64{3 * first[0]}, a)
	assertGrad(t, []float64{3 * first[1]}, b)

	g.ZeroGrad()
	require.NoError(t, autodiff.Backward(z))
	assertGrad(t, []float64{first[0]}, a)
}

func TestBackward_NonScalarRootSeedsOnes(t *testing.T) {
	g := autodiff.NewGraph()
	a := g.Variable(vec(1, 2, 3))
	y := must.M1(a.Pow(2))

	require.NoError(t, autodiff.Backward(y))
	assertGrad(t, []float64{1, 1, 1}, y)
	// Same as the gradient of sum(a²).
	assertGrad(t, []float64{2, 4, 6}, a)
}

func TestBackwardWithGrad(t *testing.T) {
	g := autodiff.NewGraph()
	a := g.Variable(vec(1, 2, 3))
	y := must.M1(a.Pow(2))

	require.NoError(t, autodiff.BackwardWithGrad(y, vec(1, 0, -1)))
	assertGrad(t, []float64{2, 0, -6}, a)

	err := autodiff.BackwardWithGrad(y, vec(1, 2))
	assert.True(t, errors.Is(err, tensor.ErrShapeMismatch))
	err = autodiff.BackwardWithGrad(y, nil)
	assert.True(t, errors.Is(err, tensor.ErrInvalidArgument))
}

func TestBackward_NilRoot(t *testing.T) {
	err := autodiff.Backward(nil)
	assert.True(t, errors.Is(err, tensor.ErrInvalidArgument))
}

func TestBackward_BroadcastReducesToOperandShape(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Variable(mat(2, 3, 1, 2, 3, 4, 5, 6))
	w := g.Variable(vec(10, 20, 30))
	bias := g.Variable(mat(2, 1, 1, 2))

	y := must.M1(must.M1(x.Mul(w)).Add(bias))
	require.Equal(t, tensor.Shape{2, 3}, y.Shape())
	require.NoError(t, autodiff.Backward(y))

	assert.Equal(t, tensor.Shape{3}, w.Grad().Shape())
	assertGrad(t, []float64{5, 7, 9}, w)
	assertGrad(t, []float64{3, 3}, bias)
	assertGrad(t, []float64{10, 20, 30, 10, 20, 30}, x)
}

func TestBackward_MatMulShapes(t *testing.T) {
	g := autodiff.NewGraph()
	a := g.Variable(mat(2, 3, 1, 2, 3, 4, 5, 6))
	b := g.Variable(mat(3, 4, 1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1))

	c := must.M1(a.MatMul(b))
	require.Equal(t, tensor.Shape{2, 4}, c.Shape())
	require.NoError(t, autodiff.Backward(c))

	assert.Equal(t, tensor.Shape{2, 3}, a.Grad().Shape())
	assert.Equal(t, tensor.Shape{3, 4}, b.Grad().Shape())
	// dA = ones(2,4) @ Bᵀ: row sums of B.
	assertGrad(t, []float64{2, 2, 2, 2, 2, 2}, a)
	// dB = Aᵀ @ ones(2,4): column sums of A repeated.
	assertGrad(t, []float64{5, 5, 5, 5, 7, 7, 7, 7, 9, 9, 9, 9}, b)
}

func TestBackward_TracesThroughInjectedLogger(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 3})

	g := autodiff.NewGraph(autodiff.WithLogger(logger))
	a := g.Variable(vec(2)).SetLabel("a")
	z := must.M1(a.Mul(a))
	require.NoError(t, autodiff.Backward(z))

	all := strings.Join(lines, "\n")
	assert.Contains(t, all, `"msg"="Backward"`)
	assert.Contains(t, all, `"nodes"=2`)
	assert.Contains(t, all, `"msg"="VJP"`)
	assert.Contains(t, all, `"label"="a"`)
}

func TestBackward_QuietByDefault(t *testing.T) {
	var lines []string
	logger := funcr.New(func(_, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	g := autodiff.NewGraph(autodiff.WithLogger(logger))
	a := g.Variable(vec(2))
	require.NoError(t, autodiff.Backward(must.M1(a.Mul(a))))
	assert.Empty(t, lines)
}
