package safetensors

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/tensorcheck/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

// writeRaw writes a file with the given header entries and data section.
func writeRaw(t *testing.T, header map[string]any, data []byte) string {
	t.Helper()

	headerJSON, err := json.Marshal(header)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(len(headerJSON))))
	buf.Write(headerJSON)
	buf.Write(data)

	path := filepath.Join(t.TempDir(), "raw.safetensors")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestWriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.safetensors")
	in := map[string]*tensor.RawTensor{
		"weight": tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}),
		"bias":   tensor.Vector(0.5, -0.5),
		"steps":  tensor.Scalar[int64](1200),
		"mask":   tensor.Vector(true, false, true),
		"empty":  tensor.Zeros(tensor.Shape{0, 4}, tensor.Int32),
		"pixels": tensor.Vector[uint8](0, 255),
	}
	require.NoError(t, Write(path, in, map[string]string{"format": "pt"}))

	out, meta, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pt", meta["format"])
	require.Len(t, out, len(in))

	for name, want := range in {
		got := out[name]
		require.NotNil(t, got, name)
		assert.Equal(t, want.DType(), got.DType(), name)
		assert.True(t, want.Shape().Equal(got.Shape()), "%s: shape %v vs %v", name, want.Shape(), got.Shape())
		assert.Equal(t, want.Data(), got.Data(), name)
	}
}

func TestReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.safetensors")
	require.NoError(t, Write(path, map[string]*tensor.RawTensor{
		"b": tensor.Vector(1.0),
		"a": tensor.Vector[int32](1, 2),
	}, nil))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"a", "b"}, r.Names())
	assert.Nil(t, r.Metadata())

	info, err := r.Info("a")
	require.NoError(t, err)
	assert.Equal(t, I32, info.DType)
	assert.Equal(t, [2]int64{0, 8}, info.DataOffsets)

	_, err = r.Tensor("missing")
	assert.Error(t, err)
}

func TestLoadHalfPrecision(t *testing.T) {
	halves := []float32{1, -2.5, 0.099975586, float32(math.Inf(1))}
	var data []byte
	for _, v := range halves {
		data = binary.LittleEndian.AppendUint16(data, float16.Fromfloat32(v).Bits())
	}
	// bfloat16 keeps the upper 16 bits of a float32.
	brains := []float32{3.140625, -1}
	for _, v := range brains {
		data = binary.LittleEndian.AppendUint16(data, uint16(math.Float32bits(v)>>16))
	}

	path := writeRaw(t, map[string]any{
		"half":  TensorInfo{DType: F16, Shape: []int{4}, DataOffsets: [2]int64{0, 8}},
		"brain": TensorInfo{DType: BF16, Shape: []int{2}, DataOffsets: [2]int64{8, 12}},
	}, data)

	out, _, err := Load(path)
	require.NoError(t, err)

	half := out["half"]
	assert.Equal(t, tensor.Float32, half.DType())
	assert.InDeltaSlice(t, halves[:3], half.AsFloat32()[:3], 1e-6)
	assert.True(t, math.IsInf(float64(half.AsFloat32()[3]), 1))

	assert.Equal(t, brains, out["brain"].AsFloat32())
}

func TestOpenRejectsMalformedHeaders(t *testing.T) {
	f32 := func(start, end int64, shape ...int) TensorInfo {
		return TensorInfo{DType: F32, Shape: shape, DataOffsets: [2]int64{start, end}}
	}

	tests := []struct {
		name     string
		header   map[string]any
		dataSize int
		errType  string
	}{
		{"out of bounds", map[string]any{"x": f32(0, 16, 4)}, 8, "out_of_bounds"},
		{"overlap", map[string]any{"x": f32(0, 8, 2), "y": f32(4, 12, 2)}, 12, "offset_overlap"},
		{"size mismatch", map[string]any{"x": f32(0, 8, 3)}, 8, "size_mismatch"},
		{"negative", map[string]any{"x": f32(8, 4, 1)}, 8, "negative_offset"},
		{"unknown dtype", map[string]any{"x": TensorInfo{DType: "F8", Shape: []int{1}, DataOffsets: [2]int64{0, 1}}}, 1, "unsupported_dtype"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRaw(t, tt.header, make([]byte, tt.dataSize))
			_, err := Open(path)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.errType, verr.Type)
		})
	}
}

func TestOpenRejectsTruncatedFiles(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short")
	require.NoError(t, os.WriteFile(short, []byte{1, 2, 3}, 0o600))
	_, err := Open(short)
	assert.Error(t, err)

	huge := filepath.Join(dir, "huge")
	require.NoError(t, os.WriteFile(huge, binary.LittleEndian.AppendUint64(nil, 1<<20), 0o600))
	_, err = Open(huge)
	assert.Error(t, err)

	_, err = Open(filepath.Join(dir, "absent"))
	assert.Error(t, err)
}

func TestChecksum(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.safetensors")
	b := filepath.Join(dir, "b.safetensors")
	c := filepath.Join(dir, "c.safetensors")

	tensors := map[string]*tensor.RawTensor{"w": tensor.Vector(1.0, 2.0)}
	require.NoError(t, Write(a, tensors, nil))
	require.NoError(t, Write(b, tensors, nil))
	require.NoError(t, Write(c, map[string]*tensor.RawTensor{"w": tensor.Vector(1.0, 2.5)}, nil))

	sumA, err := Checksum(a)
	require.NoError(t, err)
	sumB, err := Checksum(b)
	require.NoError(t, err)
	sumC, err := Checksum(c)
	require.NoError(t, err)

	assert.Len(t, sumA, 64)
	assert.Equal(t, sumA, sumB)
	assert.NotEqual(t, sumA, sumC)
}
