package tensor

import "fmt"

// DType is a constraint for the Go element types a RawTensor can be built from.
type DType interface {
	float32 | float64 | int32 | int64 | uint8 | bool
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}

// FromSlice creates a host tensor from a Go slice.
// The slice is copied into the tensor's memory.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), CPU)
	if err != nil {
		return nil, err
	}

	copy(typedView[T](raw), data)
	return raw, nil
}

// MustFromSlice is FromSlice that panics on error. Meant for fixtures.
func MustFromSlice[T DType](data []T, shape Shape) *RawTensor {
	raw, err := FromSlice(data, shape)
	if err != nil {
		panic(err)
	}
	return raw
}

// Vector creates a 1-D host tensor holding a copy of data.
func Vector[T DType](data ...T) *RawTensor {
	return MustFromSlice(data, Shape{len(data)})
}

// Scalar creates a 0-D host tensor.
func Scalar[T DType](v T) *RawTensor {
	return MustFromSlice([]T{v}, Shape{})
}

// Zeros creates a zero-filled host tensor of the given dtype.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	raw, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		panic(err)
	}
	return raw
}

// typedView returns the tensor data as []T. T must match the tensor dtype.
func typedView[T DType](r *RawTensor) []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(r.AsFloat32()).([]T)
	case float64:
		return any(r.AsFloat64()).([]T)
	case int32:
		return any(r.AsInt32()).([]T)
	case int64:
		return any(r.AsInt64()).([]T)
	case uint8:
		return any(r.AsUint8()).([]T)
	case bool:
		return any(r.AsBool()).([]T)
	default:
		panic("unsupported type")
	}
}

// Values returns a copy of the tensor data as []T. T must match the tensor dtype.
func Values[T DType](r *RawTensor) []T {
	return append([]T(nil), typedView[T](r)...)
}
