package compare

import (
	"fmt"
	"math"
	"math/big"
	"math/cmplx"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// exactOptions lets go-cmp walk unexported fields of arbitrary values.
var exactOptions = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

func exactEqual(x, y any) bool {
	return cmp.Equal(x, y, exactOptions...)
}

func exactDiff(x, y any) string {
	return cmp.Diff(x, y, exactOptions...)
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isComplex(k reflect.Kind) bool {
	return k == reflect.Complex64 || k == reflect.Complex128
}

func toBigInt(v reflect.Value) *big.Int {
	if isInt(v.Kind()) {
		return big.NewInt(v.Int())
	}
	return new(big.Int).SetUint64(v.Uint())
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v.Kind()):
		return float64(v.Int())
	case isUint(v.Kind()):
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func toComplex(v reflect.Value) complex128 {
	if isComplex(v.Kind()) {
		return v.Complex()
	}
	return complex(toFloat(v), 0)
}

// numericDistance returns |x - y| for two numeric kinds.
// Integer pairs are subtracted exactly; float pairs that compare equal
// (including matching infinities) have distance zero.
func numericDistance(vx, vy reflect.Value) float64 {
	kx, ky := vx.Kind(), vy.Kind()
	switch {
	case isComplex(kx) || isComplex(ky):
		cx, cy := toComplex(vx), toComplex(vy)
		if cx == cy {
			return 0
		}
		return cmplx.Abs(cx - cy)
	case (isInt(kx) || isUint(kx)) && (isInt(ky) || isUint(ky)):
		diff := new(big.Int).Sub(toBigInt(vx), toBigInt(vy))
		f, _ := new(big.Float).SetInt(diff.Abs(diff)).Float64()
		return f
	default:
		fx, fy := toFloat(vx), toFloat(vy)
		if fx == fy {
			return 0
		}
		return math.Abs(fx - fy)
	}
}

// distance reports |x - y| when the pair supports subtraction: both numeric,
// or both of a type with a registered metric. ok is false otherwise, and the
// caller falls back to exact equality.
func (c *Comparator) distance(x, y any, kx, ky kind) (d float64, ok bool) {
	switch {
	case kx == kindMetric && ky == kindMetric && reflect.TypeOf(x) == reflect.TypeOf(y):
		return c.metrics[reflect.TypeOf(x)](x, y), true
	case kx == kindNumber && ky == kindNumber:
		return numericDistance(reflect.ValueOf(x), reflect.ValueOf(y)), true
	default:
		return 0, false
	}
}

// setsEqual compares two map[K]struct{} values by key membership.
func setsEqual(x, y any) (bool, string) {
	vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
	if vx.Type() != vy.Type() {
		return false, fmt.Sprintf("set types differ: %T vs %T", x, y)
	}
	var missing, extra []any
	for _, k := range vx.MapKeys() {
		if !vy.MapIndex(k).IsValid() {
			missing = append(missing, k.Interface())
		}
	}
	for _, k := range vy.MapKeys() {
		if !vx.MapIndex(k).IsValid() {
			extra = append(extra, k.Interface())
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return true, ""
	}
	return false, fmt.Sprintf("sets differ: only in first %v, only in second %v", missing, extra)
}
