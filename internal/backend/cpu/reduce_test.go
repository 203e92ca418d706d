package cpu

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/revgrad/internal/tensor"
)

func TestSumTo(t *testing.T) {
	backend := New()
	x := arr([]float64{1, 2, 3, 4, 5, 6}, 2, 3)

	tests := []struct {
		name  string
		shape tensor.Shape
		want  []float64
	}{
		{"same", tensor.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6}},
		{"rows", tensor.Shape{1, 3}, []float64{5, 7, 9}},
		{"cols", tensor.Shape{2, 1}, []float64{6, 15}},
		{"leading", tensor.Shape{3}, []float64{5, 7, 9}},
		{"scalar", tensor.Shape{}, []float64{21}},
		{"single", tensor.Shape{1}, []float64{21}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := backend.SumTo(x, tt.shape)
			require.NoError(t, err)
			assert.Equal(t, tt.shape, got.Shape())
			assert.Equal(t, tt.want, got.Data())
		})
	}
}

func TestSumTo_Incompatible(t *testing.T) {
	_, err := New().SumTo(arr([]float64{1, 2, 3, 4, 5, 6}, 2, 3), tensor.Shape{2})
	assert.True(t, errors.Is(err, tensor.ErrShapeMismatch))
}

func TestAddInto(t *testing.T) {
	backend := New()
	dst := arr([]float64{1, 2}, 2)
	require.NoError(t, backend.AddInto(dst, arr([]float64{10, 20}, 2)))
	require.NoError(t, backend.AddInto(dst, arr([]float64{10, 20}, 2)))
	assert.Equal(t, []float64{21, 42}, dst.Data())

	err := backend.AddInto(dst, arr([]float64{1, 2, 3}, 3))
	assert.True(t, errors.Is(err, tensor.ErrShapeMismatch))
}
