package safetensors

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/born-ml/tensorcheck/internal/tensor"
	"github.com/x448/float16"
)

// Reader reads tensors from a SafeTensors file on demand.
type Reader struct {
	file       *os.File
	header     Header
	dataOffset int64 // Offset where tensor data starts
}

// Open opens path and validates its header.
func Open(path string) (*Reader, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for checkpoint comparison
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r, err := newReader(file)
	if err != nil {
		_ = file.Close() // Best effort close on error
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func newReader(file *os.File) (*Reader, error) {
	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	// Read header size (8 bytes, little-endian uint64)
	var headerSize uint64
	if err := binary.Read(file, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize || int64(headerSize) > stat.Size()-8 { //nolint:gosec // G115: bounded by MaxHeaderSize
		return nil, fmt.Errorf("invalid header size: %d", headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	dataOffset := int64(8 + headerSize) //nolint:gosec // G115: bounded by MaxHeaderSize
	if err := validateHeader(&header, stat.Size()-dataOffset); err != nil {
		return nil, err
	}

	return &Reader{
		file:       file,
		header:     header,
		dataOffset: dataOffset,
	}, nil
}

// Close closes the file.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Metadata returns the __metadata__ map of the header. It may be nil.
func (r *Reader) Metadata() map[string]string {
	return r.header.Metadata
}

// Names returns the tensor names in sorted order.
func (r *Reader) Names() []string {
	names := make([]string, 0, len(r.header.Tensors))
	for name := range r.header.Tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info returns the header entry of a tensor.
func (r *Reader) Info(name string) (TensorInfo, error) {
	info, ok := r.header.Tensors[name]
	if !ok {
		return TensorInfo{}, fmt.Errorf("tensor %s not found", name)
	}
	return info, nil
}

// ReadData reads the stored bytes of a tensor.
func (r *Reader) ReadData(name string) ([]byte, error) {
	info, err := r.Info(name)
	if err != nil {
		return nil, err
	}

	start := r.dataOffset + info.DataOffsets[0]
	data := make([]byte, info.DataOffsets[1]-info.DataOffsets[0])
	if _, err := r.file.ReadAt(data, start); err != nil {
		return nil, fmt.Errorf("failed to read tensor %s: %w", name, err)
	}
	return data, nil
}

// Tensor loads a tensor onto the host. F16 and BF16 data is widened to Float32.
func (r *Reader) Tensor(name string) (*tensor.RawTensor, error) {
	info, err := r.Info(name)
	if err != nil {
		return nil, err
	}
	dtype, err := loadedDType(info.DType)
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", name, err)
	}
	data, err := r.ReadData(name)
	if err != nil {
		return nil, err
	}

	raw, err := tensor.NewRaw(tensor.Shape(info.Shape), dtype, tensor.CPU)
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", name, err)
	}

	switch info.DType {
	case F16:
		dst := raw.AsFloat32()
		for i := range dst {
			dst[i] = float16.Frombits(binary.LittleEndian.Uint16(data[2*i:])).Float32()
		}
	case BF16:
		dst := raw.AsFloat32()
		for i := range dst {
			dst[i] = bfloat16ToFloat32(binary.LittleEndian.Uint16(data[2*i:]))
		}
	default:
		copy(raw.Data(), data)
	}
	return raw, nil
}

// bfloat16ToFloat32 widens a bfloat16, the upper half of a float32.
func bfloat16ToFloat32(bits uint16) float32 {
	return math.Float32frombits(uint32(bits) << 16)
}

// Load reads every tensor of the file at path together with its metadata.
func Load(path string) (map[string]*tensor.RawTensor, map[string]string, error) {
	r, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = r.Close() // Read-only, nothing to flush
	}()

	tensors := make(map[string]*tensor.RawTensor, len(r.header.Tensors))
	for _, name := range r.Names() {
		t, err := r.Tensor(name)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		tensors[name] = t
	}
	return tensors, r.Metadata(), nil
}
