// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensortest

import (
	"github.com/born-ml/tensorcheck/internal/tensor"
)

// RandN returns a Float64 tensor of standard normal samples drawn from the
// suite's random source.
func (s *Suite) RandN(shape ...int) *tensor.RawTensor {
	sh := tensor.Shape(shape)
	data := make([]float64, sh.NumElements())
	rng := s.Rand()
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	t, err := tensor.FromSlice(data, sh)
	s.Require().NoError(err)
	return t
}

// RandSparse returns an uncoalesced Float64 sparse tensor with nnz entries at
// random coordinates of shape. Coordinates may repeat.
func (s *Suite) RandSparse(shape tensor.Shape, nnz int) *tensor.Sparse {
	rng := s.Rand()
	coords := make([][]int64, nnz)
	for i := range coords {
		coords[i] = make([]int64, len(shape))
		for d, size := range shape {
			coords[i][d] = int64(rng.Intn(size))
		}
	}
	values := make([]float64, nnz)
	for i := range values {
		values[i] = rng.NormFloat64()
	}

	sp, err := tensor.NewSparseCOO(coords, tensor.MustFromSlice(values, tensor.Shape{nnz}), shape)
	s.Require().NoError(err)
	return sp
}
