package tensor

import (
	"fmt"
	"strconv"
	"strings"
)

// DeviceKind is the family of a compute device.
type DeviceKind int

// Supported device families.
const (
	KindCPU DeviceKind = iota
	KindCUDA
	KindVulkan
	KindMetal
	KindWebGPU
)

// String returns the lowercase family name used in device strings.
func (k DeviceKind) String() string {
	switch k {
	case KindCPU:
		return "cpu"
	case KindCUDA:
		return "cuda"
	case KindVulkan:
		return "vulkan"
	case KindMetal:
		return "metal"
	case KindWebGPU:
		return "webgpu"
	default:
		return "unknown"
	}
}

// Device tags where a tensor lives: the host, or an accelerator of some kind by index.
type Device struct {
	Kind  DeviceKind
	Index int
}

// CPU is the host device.
var CPU = Device{Kind: KindCPU}

// CUDA returns the CUDA accelerator with the given ordinal.
func CUDA(index int) Device { return Device{Kind: KindCUDA, Index: index} }

// WebGPU returns the WebGPU adapter with the given ordinal.
func WebGPU(index int) Device { return Device{Kind: KindWebGPU, Index: index} }

// IsAccelerator reports whether the device is not the host.
func (d Device) IsAccelerator() bool {
	return d.Kind != KindCPU
}

// String returns "cpu" for the host and "<kind>:<index>" for accelerators.
func (d Device) String() string {
	if !d.IsAccelerator() {
		return "cpu"
	}
	return fmt.Sprintf("%s:%d", d.Kind, d.Index)
}

// ParseDevice parses the output of Device.String.
// A bare accelerator kind ("cuda") means index 0.
func ParseDevice(s string) (Device, error) {
	name, idx, hasIdx := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")
	var kind DeviceKind
	switch name {
	case "cpu":
		if hasIdx {
			return Device{}, fmt.Errorf("cpu device takes no index: %q", s)
		}
		return CPU, nil
	case "cuda":
		kind = KindCUDA
	case "vulkan":
		kind = KindVulkan
	case "metal":
		kind = KindMetal
	case "webgpu":
		kind = KindWebGPU
	default:
		return Device{}, fmt.Errorf("unknown device %q", s)
	}
	index := 0
	if hasIdx {
		n, err := strconv.Atoi(idx)
		if err != nil || n < 0 {
			return Device{}, fmt.Errorf("invalid device index in %q", s)
		}
		index = n
	}
	return Device{Kind: kind, Index: index}, nil
}
