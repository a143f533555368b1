// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/tensorcheck/internal/backend/cpu"
	"github.com/born-ml/tensorcheck/internal/sparse"
	"github.com/born-ml/tensorcheck/internal/tensor"
)

// Sparse is a COO sparse tensor. See NewSparse for the layout.
type Sparse = tensor.Sparse

// NewSparse builds a sparse tensor from an Int64 index matrix of shape
// [sparseDims, nnz] and values of shape [nnz, denseDims...].
func NewSparse(indices, values *RawTensor, shape Shape) (*Sparse, error) {
	return tensor.NewSparse(indices, values, shape)
}

// NewSparseCOO builds a sparse tensor from one coordinate tuple per values row.
func NewSparseCOO(coords [][]int64, values *RawTensor, shape Shape) (*Sparse, error) {
	return tensor.NewSparseCOO(coords, values, shape)
}

var hostBackend = cpu.New()

// Coalesce returns the canonical form of s: duplicate coordinates summed and
// entries sorted lexicographically. Coalescing a coalesced tensor is a no-op
// in value.
func Coalesce(s *Sparse) *Sparse {
	return sparse.Coalesce(s, hostBackend)
}

// IsCoalesced reports whether s has strictly increasing coordinates.
func IsCoalesced(s *Sparse) bool {
	return sparse.IsCoalesced(s)
}

// ToDense scatters s into a dense tensor, summing duplicates.
func ToDense(s *Sparse) *RawTensor {
	return sparse.ToDense(s, hostBackend)
}
