package compare

import (
	"reflect"

	"github.com/born-ml/tensorcheck/internal/autodiff"
	"github.com/born-ml/tensorcheck/internal/tensor"
)

// kind is the closed set of operand shapes the comparator dispatches on.
type kind int

const (
	kindOther kind = iota
	kindVariable
	kindDense
	kindSparse
	kindMetric
	kindString
	kindSet
	kindIterable
	kindNumber
)

func (k kind) String() string {
	switch k {
	case kindVariable:
		return "variable"
	case kindDense:
		return "dense tensor"
	case kindSparse:
		return "sparse tensor"
	case kindMetric:
		return "metric"
	case kindString:
		return "string"
	case kindSet:
		return "set"
	case kindIterable:
		return "iterable"
	case kindNumber:
		return "number"
	default:
		return "other"
	}
}

func (k kind) isTensor() bool {
	return k == kindDense || k == kindSparse
}

var emptyStruct = reflect.TypeOf(struct{}{})

// classify maps a value to its kind. Types with a registered metric take
// precedence over the structural kinds.
func (c *Comparator) classify(v any) kind {
	switch v.(type) {
	case nil:
		return kindOther
	case *autodiff.Variable:
		return kindVariable
	case *tensor.RawTensor:
		return kindDense
	case *tensor.Sparse:
		return kindSparse
	}

	if _, ok := c.metrics[reflect.TypeOf(v)]; ok {
		return kindMetric
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return kindString
	case reflect.Map:
		if rv.Type().Elem() == emptyStruct {
			return kindSet
		}
	case reflect.Slice, reflect.Array:
		return kindIterable
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return kindNumber
	}
	return kindOther
}
