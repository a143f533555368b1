package tensor

import (
	"testing"
)

func TestRawTensorViews(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Int64, CPU)
	data := raw.AsInt64()
	if len(data) != 6 {
		t.Errorf("AsInt64 length = %d, want 6", len(data))
	}

	// Views share storage.
	data[0] = 42
	if raw.AsInt64()[0] != 42 {
		t.Error("AsInt64 should return a view")
	}

	empty, _ := NewRaw(Shape{0, 3}, Float32, CPU)
	if len(empty.AsFloat32()) != 0 {
		t.Error("empty tensor should have an empty view")
	}
}

func TestRawTensorWrongDTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AsFloat64 on an int32 tensor should panic")
		}
	}()
	Vector[int32](1).AsFloat64()
}

func TestRawTensorFloat64At(t *testing.T) {
	tests := []struct {
		name string
		in   *RawTensor
		want float64
	}{
		{"float32", Vector[float32](1.5), 1.5},
		{"int32", Vector[int32](-4), -4},
		{"int64", Vector[int64](1 << 40), 1 << 40},
		{"uint8", Vector[uint8](255), 255},
		{"bool", Vector(true), 1},
	}
	for _, tt := range tests {
		if got := tt.in.Float64At(0); got != tt.want {
			t.Errorf("%s: Float64At(0) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRawTensorClone(t *testing.T) {
	x := MustFromSlice([]float64{1, 2, 3, 4}, Shape{2, 2}).WithDevice(CUDA(0))
	c := x.Clone()
	c.AsFloat64()[0] = 9

	if x.AsFloat64()[0] != 1 {
		t.Error("Clone shares storage with the original")
	}
	if c.Device() != CUDA(0) || !c.Shape().Equal(x.Shape()) {
		t.Errorf("Clone() = %v, want metadata of %v", c, x)
	}
}

func TestRawTensorWithDevice(t *testing.T) {
	x := Vector(1.0, 2.0)
	if x.WithDevice(CPU) != x {
		t.Error("WithDevice to the same device should return the receiver")
	}
	moved := x.WithDevice(WebGPU(0))
	if moved.Device() != WebGPU(0) || x.Device() != CPU {
		t.Errorf("WithDevice: moved on %s, original on %s", moved.Device(), x.Device())
	}
}

func TestRawTensorRow(t *testing.T) {
	x := MustFromSlice([]int32{1, 2, 3, 4, 5, 6}, Shape{3, 2})
	row := x.Row(1)
	if !row.Shape().Equal(Shape{2}) {
		t.Fatalf("Row shape = %v, want (2,)", row.Shape())
	}
	if got := row.AsInt32(); got[0] != 3 || got[1] != 4 {
		t.Errorf("Row(1) = %v, want [3 4]", got)
	}

	row.AsInt32()[0] = 99
	if x.AsInt32()[2] != 3 {
		t.Error("Row should return a copy")
	}

	scalar := Vector(7.0, 8.0).Row(1)
	if len(scalar.Shape()) != 0 || scalar.AsFloat64()[0] != 8 {
		t.Errorf("Row of a vector = %v", scalar)
	}
}

func TestRawTensorReshape(t *testing.T) {
	x := Vector[int64](1, 2, 3, 4, 5, 6)
	y, err := x.Reshape(Shape{2, 3})
	if err != nil {
		t.Fatalf("Reshape: %v", err)
	}
	if y.Strides()[0] != 3 {
		t.Errorf("Strides() = %v, want [3 1]", y.Strides())
	}
	if _, err := x.Reshape(Shape{4}); err == nil {
		t.Error("Reshape to a different element count should fail")
	}
}

func TestFromSlice(t *testing.T) {
	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 2}); err == nil {
		t.Error("FromSlice with a wrong element count should fail")
	}

	src := []uint8{1, 2}
	x := MustFromSlice(src, Shape{2})
	src[0] = 100
	if x.AsUint8()[0] != 1 || x.DType() != Uint8 {
		t.Error("FromSlice should copy its input")
	}

	vals := Values[uint8](x)
	vals[1] = 50
	if x.AsUint8()[1] != 2 {
		t.Error("Values should return a copy")
	}

	if s := Scalar(3.5); len(s.Shape()) != 0 || s.NumElements() != 1 {
		t.Errorf("Scalar() = %v", s)
	}
	if z := Zeros(Shape{2}, Bool); z.AsBool()[0] || z.DType() != Bool {
		t.Errorf("Zeros(bool) = %v", z)
	}
}
