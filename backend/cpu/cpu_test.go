// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"

	"github.com/born-ml/revgrad/backend/cpu"
	"github.com/born-ml/revgrad/tensor"
)

func TestNew(t *testing.T) {
	backend := cpu.New()
	assert.Equal(t, "CPU", backend.Name())
	assert.Equal(t, cpu.DefaultParallelConfig(), backend.Parallel())

	seq := cpu.New(cpu.WithParallel(cpu.SequentialConfig()))
	assert.False(t, seq.Parallel().Enabled)
}

func TestBackendMatMul(t *testing.T) {
	backend := cpu.New()
	a := tensor.MustFromSlice([]float64{1, 2, 3, 4}, 2, 2)
	id := tensor.MustFromSlice([]float64{1, 0, 0, 1}, 2, 2)
	got := must.M1(backend.MatMul(a, id))
	assert.Equal(t, a.Data(), got.Data())
}
