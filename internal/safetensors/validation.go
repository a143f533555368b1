package safetensors

import (
	"fmt"
	"sort"
)

// Validation limits.
const (
	MaxHeaderSize  = 100 * 1024 * 1024 // 100MB
	MaxTensorCount = 100_000
)

// ValidationError provides detailed information about a malformed header.
type ValidationError struct {
	Type    string // e.g. "offset_overlap", "out_of_bounds"
	Tensor  string
	Tensor2 string // second tensor of an overlap
	Details string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Tensor2 != "" {
		return fmt.Sprintf("%s: tensors %q and %q: %s", e.Type, e.Tensor, e.Tensor2, e.Details)
	}
	if e.Tensor != "" {
		return fmt.Sprintf("%s: tensor %q: %s", e.Type, e.Tensor, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

type span struct {
	name       string
	start, end int64
}

// validateHeader checks every tensor's dtype, byte size and offsets against a
// data section of dataSize bytes. Regions must not overlap.
func validateHeader(h *Header, dataSize int64) error {
	if len(h.Tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(h.Tensors), MaxTensorCount),
		}
	}

	spans := make([]span, 0, len(h.Tensors))
	for name, info := range h.Tensors {
		start, end := info.DataOffsets[0], info.DataOffsets[1]
		if start < 0 || end < start {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  name,
				Details: fmt.Sprintf("offsets [%d, %d]", start, end),
			}
		}
		if end > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  name,
				Details: fmt.Sprintf("end %d > data_size %d", end, dataSize),
			}
		}
		if info.DType.Size() == 0 {
			return &ValidationError{
				Type:    "unsupported_dtype",
				Tensor:  name,
				Details: string(info.DType),
			}
		}
		n := 1
		for _, d := range info.Shape {
			if d < 0 {
				return &ValidationError{Type: "invalid_shape", Tensor: name, Details: fmt.Sprint(info.Shape)}
			}
			n *= d
		}
		if want := int64(n * info.DType.Size()); want != end-start {
			return &ValidationError{
				Type:    "size_mismatch",
				Tensor:  name,
				Details: fmt.Sprintf("%s%v needs %d bytes, offsets span %d", info.DType, info.Shape, want, end-start),
			}
		}
		spans = append(spans, span{name: name, start: start, end: end})
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})
	for i := 1; i < len(spans); i++ {
		prev, cur := spans[i-1], spans[i]
		if prev.end > cur.start {
			return &ValidationError{
				Type:    "offset_overlap",
				Tensor:  prev.name,
				Tensor2: cur.name,
				Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap", prev.start, prev.end, cur.start, cur.end),
			}
		}
	}
	return nil
}
