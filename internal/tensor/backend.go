package tensor

// Backend defines the elementwise operations the comparator and the sparse
// canonicalizer rely on. Binary operations require operands of equal shape and
// dtype; implementations panic otherwise. No operation modifies its inputs.
//
// Implementations:
//   - internal/backend/cpu: pure Go
type Backend interface {
	// Element-wise binary operations.
	Add(a, b *RawTensor) *RawTensor // a + b
	Sub(a, b *RawTensor) *RawTensor // a - b

	// Element-wise unary operations.
	Abs(x *RawTensor) *RawTensor   // |x|
	IsNaN(x *RawTensor) *RawTensor // Bool tensor, true where x != x

	// MaskedFill returns a copy of x with value written where mask is true.
	MaskedFill(x, mask *RawTensor, value float64) *RawTensor

	// Max returns the largest element widened to float64. NaN wins over numbers.
	// Panics on an empty tensor.
	Max(x *RawTensor) float64

	// ArrayEqual reports whether a and b have the same shape, dtype and elements.
	ArrayEqual(a, b *RawTensor) bool

	// Stack joins equally shaped tensors along a new leading dimension.
	// rowShape and dtype describe the result when rows is empty.
	Stack(rows []*RawTensor, rowShape Shape, dtype DataType) *RawTensor

	// Type and placement conversion.
	Cast(x *RawTensor, dtype DataType) *RawTensor // Cast to different data type.
	To(x *RawTensor, device Device) *RawTensor    // Move to a device.

	// Metadata.
	Name() string
	Device() Device
}
