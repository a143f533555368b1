// Package sparse canonicalizes COO sparse tensors.
//
// The canonical (coalesced) form has unique coordinates in ascending
// lexicographic order, each holding the sum of every value stored at it.
package sparse

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/born-ml/tensorcheck/internal/tensor"
)

type entry struct {
	coord []int64
	value *tensor.RawTensor
}

// coordKey encodes a coordinate tuple as a map key.
func coordKey(buf []byte, coord []int64) string {
	buf = buf[:0]
	for _, c := range coord {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(c))
	}
	return string(buf)
}

// Coalesce returns the canonical form of s.
//
// Duplicate coordinates are merged by summing their values with backend.Add,
// which also covers hybrid tensors whose values are themselves tensors.
// NaN propagates through the sum. The result owns fresh storage and s is not modified.
// Coalescing a coalesced tensor yields an identical tensor.
func Coalesce(s *tensor.Sparse, backend tensor.Backend) *tensor.Sparse {
	nnz := s.NNZ()
	values := s.Values()

	merged := make(map[string]*entry, nnz)
	order := make([]*entry, 0, nnz)
	var buf []byte
	for i := 0; i < nnz; i++ {
		coord := s.Coord(i)
		key := coordKey(buf, coord)
		row := values.Row(i) // Row copies, so accumulation never aliases s.
		if e, ok := merged[key]; ok {
			e.value = backend.Add(e.value, row)
			continue
		}
		e := &entry{coord: coord, value: row}
		merged[key] = e
		order = append(order, e)
	}

	slices.SortFunc(order, func(a, b *entry) int {
		return slices.Compare(a.coord, b.coord)
	})

	sparseDims := s.SparseDims()
	indices := tensor.Zeros(tensor.Shape{sparseDims, len(order)}, tensor.Int64)
	idx := indices.AsInt64()
	rows := make([]*tensor.RawTensor, len(order))
	for i, e := range order {
		for d, c := range e.coord {
			idx[d*len(order)+i] = c
		}
		rows[i] = e.value
	}
	stacked := backend.To(backend.Stack(rows, values.Shape()[1:], values.DType()), s.Device())

	out, err := tensor.NewSparse(indices, stacked, s.Shape())
	if err != nil {
		// Coordinates come from a valid tensor, so this is a bug.
		panic(fmt.Sprintf("coalesce: %v", err))
	}
	return out
}

// IsCoalesced reports whether the coordinates of s are unique and strictly ascending.
func IsCoalesced(s *tensor.Sparse) bool {
	for i := 1; i < s.NNZ(); i++ {
		if slices.Compare(s.Coord(i-1), s.Coord(i)) >= 0 {
			return false
		}
	}
	return true
}

// ToDense scatters the entries of s into a dense tensor, summing duplicates.
func ToDense(s *tensor.Sparse, backend tensor.Backend) *tensor.RawTensor {
	dense, err := tensor.NewRaw(s.Shape(), s.DType(), s.Device())
	if err != nil {
		panic(fmt.Sprintf("toDense: %v", err))
	}

	rowShape := s.Values().Shape()[1:]
	rowBytes := rowShape.NumElements() * s.DType().Size()
	strides := dense.Strides()
	data := dense.Data()

	for i := 0; i < s.NNZ(); i++ {
		base := 0
		for d, c := range s.Coord(i) {
			base += int(c) * strides[d]
		}
		start := base * s.DType().Size()
		block := data[start : start+rowBytes]

		current := tensor.Zeros(rowShape, s.DType())
		copy(current.Data(), block)
		copy(block, backend.Add(current, s.Values().Row(i)).Data())
	}
	return dense
}
