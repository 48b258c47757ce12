package scene

import "fmt"

// VoxelType identifies the scalar type of a volume's voxels.
// The names follow the conventions used by RAW/OSP volume descriptions.
type VoxelType string

const (
	VoxelUint8   VoxelType = "uchar"
	VoxelUint16  VoxelType = "ushort"
	VoxelFloat32 VoxelType = "float"
	VoxelFloat64 VoxelType = "double"
)

// ParseVoxelType normalizes a voxel type string. It accepts both the
// RAW-style names (uchar, ushort, float, double) and Go-style aliases.
func ParseVoxelType(s string) (VoxelType, error) {
	switch s {
	case "uchar", "uint8":
		return VoxelUint8, nil
	case "ushort", "uint16":
		return VoxelUint16, nil
	case "float", "float32":
		return VoxelFloat32, nil
	case "double", "float64":
		return VoxelFloat64, nil
	default:
		return "", fmt.Errorf("unsupported voxel type %q", s)
	}
}

// Size returns the size of one voxel in bytes.
func (t VoxelType) Size() int {
	switch t {
	case VoxelUint8:
		return 1
	case VoxelUint16:
		return 2
	case VoxelFloat32:
		return 4
	case VoxelFloat64:
		return 8
	default:
		return 0
	}
}

// Volume is a dense brick of scalar voxels in x-major order.
type Volume struct {
	Name  string
	Dims  [3]int
	Voxel VoxelType
	Data  []byte
	// Min and Max hold the observed scalar value range.
	Min float64
	Max float64
}

// Kind implements Asset.
func (v *Volume) Kind() Kind { return KindVolume }

// Label implements Asset.
func (v *Volume) Label() string {
	if v.Name != "" {
		return v.Name
	}
	return "volume"
}

// VoxelCount returns the number of voxels described by the dimensions.
func (v *Volume) VoxelCount() int64 {
	return int64(v.Dims[0]) * int64(v.Dims[1]) * int64(v.Dims[2])
}

// Summary implements Asset.
func (v *Volume) Summary() map[string]any {
	return map[string]any{
		"kind":       KindVolume.String(),
		"label":      v.Label(),
		"dimensions": fmt.Sprintf("%dx%dx%d", v.Dims[0], v.Dims[1], v.Dims[2]),
		"voxel_type": string(v.Voxel),
		"voxels":     v.VoxelCount(),
		"value_min":  v.Min,
		"value_max":  v.Max,
	}
}

// Validate checks that the dimensions are positive and the payload
// matches dims product times voxel size exactly.
func (v *Volume) Validate() error {
	for i, d := range v.Dims {
		if d <= 0 {
			return fmt.Errorf("volume %q dimension %d is %d, must be positive", v.Label(), i, d)
		}
	}
	size := v.Voxel.Size()
	if size == 0 {
		return fmt.Errorf("volume %q has unsupported voxel type %q", v.Label(), v.Voxel)
	}
	want := v.VoxelCount() * int64(size)
	if int64(len(v.Data)) != want {
		return fmt.Errorf("volume %q payload is %d bytes, expected %d", v.Label(), len(v.Data), want)
	}
	return nil
}
