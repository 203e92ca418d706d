package tensor

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 6, Shape{2, 3}.NumElements())
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
}

func TestShape_Validate(t *testing.T) {
	require.NoError(t, Shape{}.Validate())
	require.NoError(t, Shape{1, 5}.Validate())

	err := Shape{2, 0}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidShape))
}

func TestShape_ComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Empty(t, Shape{}.ComputeStrides())
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "(2, 3)", Shape{2, 3}.String())
	assert.Equal(t, "()", Shape{}.String())
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{name: "equal", a: Shape{3, 5}, b: Shape{3, 5}, want: Shape{3, 5}},
		{name: "column", a: Shape{3, 1}, b: Shape{3, 5}, want: Shape{3, 5}, broadcast: true},
		{name: "row", a: Shape{1, 5}, b: Shape{3, 5}, want: Shape{3, 5}, broadcast: true},
		{name: "scalar", a: Shape{}, b: Shape{2, 2}, want: Shape{2, 2}, broadcast: true},
		{name: "lower rank", a: Shape{5}, b: Shape{3, 5}, want: Shape{3, 5}, broadcast: true},
		{name: "incompatible", a: Shape{3, 4}, b: Shape{3, 5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broadcast, err := BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrShapeMismatch))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.broadcast, broadcast)
		})
	}
}
