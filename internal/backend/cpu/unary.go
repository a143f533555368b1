package cpu

import (
	"bytes"
	"fmt"
	"math"

	"github.com/born-ml/tensorcheck/internal/tensor"
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/floats"
)

func absInt[T ~int32 | ~int64](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Abs returns |x| element-wise. Unsigned and bool tensors are copied unchanged.
func (cpu *CPUBackend) Abs(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newLike("abs", x, x.DType())

	switch x.DType() {
	case tensor.Float32:
		dst, src := result.AsFloat32(), x.AsFloat32()
		for i, v := range src {
			dst[i] = math32.Abs(v)
		}
	case tensor.Float64:
		dst, src := result.AsFloat64(), x.AsFloat64()
		for i, v := range src {
			dst[i] = math.Abs(v)
		}
	case tensor.Int32:
		dst, src := result.AsInt32(), x.AsInt32()
		for i, v := range src {
			dst[i] = absInt(v)
		}
	case tensor.Int64:
		dst, src := result.AsInt64(), x.AsInt64()
		for i, v := range src {
			dst[i] = absInt(v)
		}
	case tensor.Uint8, tensor.Bool:
		copy(result.Data(), x.Data())
	default:
		panic(fmt.Sprintf("abs: unsupported dtype %s", x.DType()))
	}
	return result
}

// IsNaN returns a Bool tensor marking NaN elements. Non-float tensors have none.
func (cpu *CPUBackend) IsNaN(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newLike("isnan", x, tensor.Bool)
	dst := result.AsBool()

	switch x.DType() {
	case tensor.Float32:
		for i, v := range x.AsFloat32() {
			dst[i] = math32.IsNaN(v)
		}
	case tensor.Float64:
		for i, v := range x.AsFloat64() {
			dst[i] = math.IsNaN(v)
		}
	}
	return result
}

// MaskedFill returns a copy of x with value written wherever mask is true.
func (cpu *CPUBackend) MaskedFill(x, mask *tensor.RawTensor, value float64) *tensor.RawTensor {
	if mask.DType() != tensor.Bool {
		panic(fmt.Sprintf("maskedFill: mask must be bool, got %s", mask.DType()))
	}
	if !x.Shape().Equal(mask.Shape()) {
		panic(fmt.Sprintf("maskedFill: shape mismatch %v vs mask %v", x.Shape(), mask.Shape()))
	}
	result := x.Clone()
	m := mask.AsBool()

	switch x.DType() {
	case tensor.Float32:
		fill(result.AsFloat32(), m, float32(value))
	case tensor.Float64:
		fill(result.AsFloat64(), m, value)
	case tensor.Int32:
		fill(result.AsInt32(), m, int32(value))
	case tensor.Int64:
		fill(result.AsInt64(), m, int64(value))
	case tensor.Uint8:
		fill(result.AsUint8(), m, uint8(value))
	case tensor.Bool:
		fill(result.AsBool(), m, value != 0)
	default:
		panic(fmt.Sprintf("maskedFill: unsupported dtype %s", x.DType()))
	}
	return result
}

func fill[T tensor.DType](dst []T, mask []bool, v T) {
	for i, set := range mask {
		if set {
			dst[i] = v
		}
	}
}

// Max returns the largest element of x widened to float64.
// Any NaN makes the result NaN.
func (cpu *CPUBackend) Max(x *tensor.RawTensor) float64 {
	n := x.NumElements()
	if n == 0 {
		panic("max: empty tensor")
	}

	switch x.DType() {
	case tensor.Float64:
		data := x.AsFloat64()
		if floats.HasNaN(data) {
			return math.NaN()
		}
		return floats.Max(data)
	case tensor.Float32:
		data := x.AsFloat32()
		best := data[0]
		for _, v := range data {
			if math32.IsNaN(v) {
				return math.NaN()
			}
			if v > best {
				best = v
			}
		}
		return float64(best)
	default:
		best := x.Float64At(0)
		for i := 1; i < n; i++ {
			if v := x.Float64At(i); v > best {
				best = v
			}
		}
		return best
	}
}

// ArrayEqual reports whether a and b have the same shape, dtype and elements.
// Float elements compare with ==, so NaN never equals NaN.
func (cpu *CPUBackend) ArrayEqual(a, b *tensor.RawTensor) bool {
	if !a.Shape().Equal(b.Shape()) || a.DType() != b.DType() {
		return false
	}
	if !a.DType().IsFloat() {
		return bytes.Equal(a.Data(), b.Data())
	}
	for i := 0; i < a.NumElements(); i++ {
		if a.Float64At(i) != b.Float64At(i) {
			return false
		}
	}
	return true
}
