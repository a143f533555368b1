package tensor

// Tensor is the query surface shared by dense and sparse tensors.
type Tensor interface {
	Shape() Shape
	DType() DataType
	Device() Device
	NumElements() int
	IsSparse() bool
}

// Compile-time checks.
var (
	_ Tensor = (*RawTensor)(nil)
	_ Tensor = (*Sparse)(nil)
)
