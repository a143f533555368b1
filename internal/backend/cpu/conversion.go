package cpu

import (
	"fmt"

	"github.com/born-ml/tensorcheck/internal/tensor"
)

// Cast converts the tensor to a different data type.
// Float to integer conversion truncates toward zero; any non-zero value casts to true.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	// No-op if same dtype
	if x.DType() == dtype {
		return x
	}

	result := cpu.newLike("cast", x, dtype)
	n := x.NumElements()

	// Integers travel through int64 so that large values keep full precision.
	if x.DType().IsFloat() {
		for i := 0; i < n; i++ {
			storeFloat(result, i, x.Float64At(i))
		}
	} else {
		for i := 0; i < n; i++ {
			storeInt(result, i, loadInt(x, i))
		}
	}
	return result
}

func loadInt(x *tensor.RawTensor, i int) int64 {
	switch x.DType() {
	case tensor.Int32:
		return int64(x.AsInt32()[i])
	case tensor.Int64:
		return x.AsInt64()[i]
	case tensor.Uint8:
		return int64(x.AsUint8()[i])
	case tensor.Bool:
		if x.AsBool()[i] {
			return 1
		}
		return 0
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %s", x.DType()))
	}
}

func storeFloat(dst *tensor.RawTensor, i int, v float64) {
	switch dst.DType() {
	case tensor.Float32:
		dst.AsFloat32()[i] = float32(v)
	case tensor.Float64:
		dst.AsFloat64()[i] = v
	case tensor.Int32:
		dst.AsInt32()[i] = int32(v)
	case tensor.Int64:
		dst.AsInt64()[i] = int64(v)
	case tensor.Uint8:
		dst.AsUint8()[i] = uint8(v)
	case tensor.Bool:
		dst.AsBool()[i] = v != 0
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", dst.DType()))
	}
}

func storeInt(dst *tensor.RawTensor, i int, v int64) {
	switch dst.DType() {
	case tensor.Float32:
		dst.AsFloat32()[i] = float32(v)
	case tensor.Float64:
		dst.AsFloat64()[i] = float64(v)
	case tensor.Int32:
		//nolint:gosec // G115: Cast operation - truncation is expected behavior for type conversion.
		dst.AsInt32()[i] = int32(v)
	case tensor.Int64:
		dst.AsInt64()[i] = v
	case tensor.Uint8:
		//nolint:gosec // G115: Cast operation - truncation is expected behavior for type conversion.
		dst.AsUint8()[i] = uint8(v)
	case tensor.Bool:
		dst.AsBool()[i] = v != 0
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", dst.DType()))
	}
}
