package tensor

import "fmt"

// Sparse is a COO sparse tensor.
//
// Entry i sits at the coordinate stored in column i of indices and holds row i of values.
// Coordinates address the leading SparseDims() dimensions of shape; the remaining
// dimensions are dense and live in each values row (a hybrid tensor).
// Coordinates may repeat and need not be sorted.
type Sparse struct {
	indices *RawTensor // Int64, [sparseDims, nnz]
	values  *RawTensor // [nnz, denseDims...]
	shape   Shape      // Logical dense shape
}

// NewSparse builds a sparse tensor from an Int64 index matrix of shape [sparseDims, nnz]
// and a values tensor of shape [nnz, denseDims...].
func NewSparse(indices, values *RawTensor, shape Shape) (*Sparse, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if indices.DType() != Int64 {
		return nil, fmt.Errorf("sparse indices must be int64, got %s", indices.DType())
	}
	if len(indices.Shape()) != 2 {
		return nil, fmt.Errorf("sparse indices must be 2-D [sparseDims, nnz], got shape %v", indices.Shape())
	}
	sparseDims, nnz := indices.Shape()[0], indices.Shape()[1]
	if sparseDims < 1 || sparseDims > len(shape) {
		return nil, fmt.Errorf("sparse dims %d out of range for shape %v", sparseDims, shape)
	}
	if len(values.Shape()) == 0 || values.Shape()[0] != nnz {
		return nil, fmt.Errorf("values shape %v does not hold %d entries", values.Shape(), nnz)
	}
	if !values.Shape()[1:].Equal(shape[sparseDims:]) {
		return nil, fmt.Errorf("values row shape %v does not match dense dims %v of shape %v",
			values.Shape()[1:], shape[sparseDims:], shape)
	}

	idx := indices.AsInt64()
	for d := 0; d < sparseDims; d++ {
		for i := 0; i < nnz; i++ {
			c := idx[d*nnz+i]
			if c < 0 || c >= int64(shape[d]) {
				return nil, fmt.Errorf("coordinate %d of entry %d is %d, out of bounds for size %d", d, i, c, shape[d])
			}
		}
	}

	return &Sparse{
		indices: indices.WithDevice(values.Device()),
		values:  values,
		shape:   shape.Clone(),
	}, nil
}

// NewSparseCOO builds a sparse tensor from a list of coordinate tuples, one per values row.
//
// Example:
//
//	// 3x4 matrix with a duplicate at (2, 3)
//	s, err := tensor.NewSparseCOO(
//	    [][]int64{{0, 1}, {2, 3}, {2, 3}},
//	    tensor.Vector(1.0, 1.0, 2.0),
//	    tensor.Shape{3, 4},
//	)
func NewSparseCOO(coords [][]int64, values *RawTensor, shape Shape) (*Sparse, error) {
	nnz := len(coords)
	sparseDims := len(shape) - (len(values.Shape()) - 1)
	if nnz > 0 {
		sparseDims = len(coords[0])
	}
	if sparseDims < 1 {
		return nil, fmt.Errorf("values shape %v leaves no sparse dims in shape %v", values.Shape(), shape)
	}

	indices := Zeros(Shape{sparseDims, nnz}, Int64)
	idx := indices.AsInt64()
	for i, c := range coords {
		if len(c) != sparseDims {
			return nil, fmt.Errorf("entry %d has %d coordinates, expected %d", i, len(c), sparseDims)
		}
		for d, v := range c {
			idx[d*nnz+i] = v
		}
	}
	return NewSparse(indices, values, shape)
}

// Indices returns the [sparseDims, nnz] index matrix. Callers must not modify it.
func (s *Sparse) Indices() *RawTensor { return s.indices }

// Values returns the [nnz, denseDims...] values. Callers must not modify it.
func (s *Sparse) Values() *RawTensor { return s.values }

// Shape returns the logical dense shape.
func (s *Sparse) Shape() Shape { return s.shape }

// NNZ returns the number of stored entries, duplicates included.
func (s *Sparse) NNZ() int { return s.indices.Shape()[1] }

// SparseDims returns how many leading dimensions are addressed by coordinates.
func (s *Sparse) SparseDims() int { return s.indices.Shape()[0] }

// DType returns the values dtype.
func (s *Sparse) DType() DataType { return s.values.DType() }

// Device returns the placement of the values.
func (s *Sparse) Device() Device { return s.values.Device() }

// NumElements returns the element count of the logical dense shape.
func (s *Sparse) NumElements() int { return s.shape.NumElements() }

// IsSparse is always true.
func (s *Sparse) IsSparse() bool { return true }

// Coord returns a copy of the coordinate tuple of entry i.
func (s *Sparse) Coord(i int) []int64 {
	nnz := s.NNZ()
	idx := s.indices.AsInt64()
	c := make([]int64, s.SparseDims())
	for d := range c {
		c[d] = idx[d*nnz+i]
	}
	return c
}

// Clone returns a deep copy.
func (s *Sparse) Clone() *Sparse {
	return &Sparse{
		indices: s.indices.Clone(),
		values:  s.values.Clone(),
		shape:   s.shape.Clone(),
	}
}

// String returns a short description of the tensor.
func (s *Sparse) String() string {
	return fmt.Sprintf("Sparse[%s]%v nnz=%d on %s", s.DType(), s.shape, s.NNZ(), s.Device())
}
