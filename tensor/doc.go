// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 arrays that flow through revgrad
// graphs.
//
// # Overview
//
// An Array is a row-major n-dimensional buffer paired with its Shape. Arrays
// are plain values: they carry no device and no autodiff state. Computation
// on arrays goes through a Backend (see the backend/cpu package), which is
// what the autodiff package uses for every forward and backward kernel.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/revgrad/backend/cpu"
//	    "github.com/born-ml/revgrad/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
//	    y := tensor.MustFromSlice([]float64{10, 20, 30}, 3)
//
//	    // NumPy-style broadcasting: (2, 3) + (3) -> (2, 3)
//	    z, err := backend.Add(x, y)
//	}
//
// # Shapes
//
// The empty Shape is a scalar with one element. Every dimension must be
// positive. Two shapes broadcast when, aligned from the right, each pair of
// dimensions is equal or one of them is 1.
package tensor
