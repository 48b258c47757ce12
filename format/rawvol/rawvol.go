// Package rawvol decodes RAW volume bricks into scene.Volume assets.
//
// A RAW file is a headerless dump of scalar voxels, so the shape of
// the data must be supplied through Source params:
//
//   - dimensions: three integers, "256 256 128" or "256x256x128" (required)
//   - voxelType:  uchar, ushort, float, or double (required)
//   - byteOrder:  "little" (default) or "big"
//   - headerSkip: bytes to skip before the voxel data (default 0)
//
// When the volume is referenced from an OSP scene file, these params
// come from the referencing element's children.
package rawvol

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"scene-manager/core/registry"
	"scene-manager/core/utils"
	"scene-manager/scene"
)

// Param names understood by the loader.
const (
	ParamDimensions = "dimensions"
	ParamVoxelType  = "voxelType"
	ParamByteOrder  = "byteOrder"
	ParamHeaderSkip = "headerSkip"
)

// Loader decodes one RAW volume file.
type Loader struct{}

// New returns a RAW volume loader.
func New() registry.Loader { return &Loader{} }

// Load implements registry.Loader.
func (l *Loader) Load(ctx context.Context, src *registry.Source) (scene.Asset, error) {
	dimsStr, ok := src.Param(ParamDimensions)
	if !ok {
		return nil, fmt.Errorf("raw volume requires a %q param", ParamDimensions)
	}
	dims, err := utils.IntTriple(dimsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %q param: %w", ParamDimensions, err)
	}

	typeStr, ok := src.Param(ParamVoxelType)
	if !ok {
		return nil, fmt.Errorf("raw volume requires a %q param", ParamVoxelType)
	}
	voxel, err := scene.ParseVoxelType(typeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %q param: %w", ParamVoxelType, err)
	}

	order, err := byteOrder(src)
	if err != nil {
		return nil, err
	}

	vol := &scene.Volume{
		Name:  volumeName(src),
		Dims:  dims,
		Voxel: voxel,
	}
	if err := checkShape(vol); err != nil {
		return nil, err
	}

	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open raw source: %w", err)
	}
	defer rc.Close()

	r := bufio.NewReaderSize(rc, 1<<20)
	if skip, ok := src.Param(ParamHeaderSkip); ok {
		n := utils.ToInt(skip)
		if n < 0 {
			return nil, fmt.Errorf("invalid %q param %q", ParamHeaderSkip, skip)
		}
		if _, err := io.CopyN(io.Discard, r, int64(n)); err != nil {
			return nil, fmt.Errorf("failed to skip %d header bytes: %w", n, err)
		}
	}

	want := vol.VoxelCount() * int64(voxel.Size())
	data := make([]byte, want)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("raw volume truncated, expected %d bytes: %w", want, err)
	}
	// Trailing bytes mean the declared dimensions do not match the file.
	if n, _ := r.Read(make([]byte, 1)); n != 0 {
		return nil, fmt.Errorf("raw volume has trailing bytes beyond %d declared voxels", vol.VoxelCount())
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vol.Data = data
	vol.Min, vol.Max = valueRange(data, voxel, order)

	if err := vol.Validate(); err != nil {
		return nil, err
	}
	return vol, nil
}

func volumeName(src *registry.Source) string {
	if src.Path == "" {
		return ""
	}
	base := filepath.Base(src.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func byteOrder(src *registry.Source) (binary.ByteOrder, error) {
	s, ok := src.Param(ParamByteOrder)
	if !ok {
		return binary.LittleEndian, nil
	}
	switch strings.ToLower(s) {
	case "little", "le":
		return binary.LittleEndian, nil
	case "big", "be":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("invalid %q param %q", ParamByteOrder, s)
	}
}

func checkShape(v *scene.Volume) error {
	for i, d := range v.Dims {
		if d <= 0 {
			return fmt.Errorf("volume dimension %d is %d, must be positive", i, d)
		}
	}
	return nil
}

// valueRange scans the payload for the min and max scalar values.
func valueRange(data []byte, voxel scene.VoxelType, order binary.ByteOrder) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	size := voxel.Size()
	for off := 0; off+size <= len(data); off += size {
		var v float64
		switch voxel {
		case scene.VoxelUint8:
			v = float64(data[off])
		case scene.VoxelUint16:
			v = float64(order.Uint16(data[off:]))
		case scene.VoxelFloat32:
			v = float64(math.Float32frombits(order.Uint32(data[off:])))
		case scene.VoxelFloat64:
			v = math.Float64frombits(order.Uint64(data[off:]))
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if math.IsInf(min, 1) {
		return 0, 0
	}
	return min, max
}
