package cpu

import (
	"fmt"

	"github.com/born-ml/tensorcheck/internal/tensor"
)

type number interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

func add[T number](x, y T) T { return x + y }
func sub[T number](x, y T) T { return x - y }

// binaryKernel computes dst[i] = f(a[i], b[i]).
func binaryKernel[T number](dst, a, b []T, f func(x, y T) T) {
	for i := range dst {
		dst[i] = f(a[i], b[i])
	}
}

// Add performs element-wise addition. Bool addition is logical OR and uint8 wraps.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	checkBinary("add", a, b)
	result := cpu.newLike("add", a, a.DType())

	switch a.DType() {
	case tensor.Float32:
		binaryKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), add[float32])
	case tensor.Float64:
		binaryKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), add[float64])
	case tensor.Int32:
		binaryKernel(result.AsInt32(), a.AsInt32(), b.AsInt32(), add[int32])
	case tensor.Int64:
		binaryKernel(result.AsInt64(), a.AsInt64(), b.AsInt64(), add[int64])
	case tensor.Uint8:
		binaryKernel(result.AsUint8(), a.AsUint8(), b.AsUint8(), add[uint8])
	case tensor.Bool:
		dst, x, y := result.AsBool(), a.AsBool(), b.AsBool()
		for i := range dst {
			dst[i] = x[i] || y[i]
		}
	default:
		panic(fmt.Sprintf("add: unsupported dtype %s", a.DType()))
	}
	return result
}

// Sub performs element-wise subtraction. Unsigned subtraction wraps around.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	checkBinary("sub", a, b)
	result := cpu.newLike("sub", a, a.DType())

	switch a.DType() {
	case tensor.Float32:
		binaryKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), sub[float32])
	case tensor.Float64:
		binaryKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), sub[float64])
	case tensor.Int32:
		binaryKernel(result.AsInt32(), a.AsInt32(), b.AsInt32(), sub[int32])
	case tensor.Int64:
		binaryKernel(result.AsInt64(), a.AsInt64(), b.AsInt64(), sub[int64])
	case tensor.Uint8:
		binaryKernel(result.AsUint8(), a.AsUint8(), b.AsUint8(), sub[uint8])
	default:
		panic(fmt.Sprintf("sub: unsupported dtype %s", a.DType()))
	}
	return result
}
