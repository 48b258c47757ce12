package format_test

import (
	"bytes"
	"context"
	"testing"

	"scene-manager/core/registry"
	"scene-manager/format"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterBuiltins(t *testing.T) {
	reg := registry.New()
	require.NoError(t, format.RegisterBuiltins(reg))

	for _, pair := range []struct {
		cat registry.Category
		tag registry.Tag
	}{
		{registry.ObjectFile, "osp"},
		{registry.VolumeFile, "raw"},
		{registry.TriangleMeshFile, "ply"},
	} {
		factory, err := reg.Lookup(pair.cat, pair.tag)
		assert.NoError(t, err)
		assert.NotNil(t, factory)
	}

	assert.Equal(t, []registry.Category{
		registry.ObjectFile,
		registry.VolumeFile,
		registry.TriangleMeshFile,
	}, reg.Categories())
}

func TestRegisterBuiltins_Twice(t *testing.T) {
	reg := registry.New()
	require.NoError(t, format.RegisterBuiltins(reg))

	err := format.RegisterBuiltins(reg)
	var dup *registry.DuplicateError
	assert.ErrorAs(t, err, &dup)
}

func TestCreate_CorruptRawSurfacesParserError(t *testing.T) {
	reg := registry.New()
	require.NoError(t, format.RegisterBuiltins(reg))

	// Declared 2x2x2 uchar brick but only 3 bytes of payload.
	src := &registry.Source{
		Path:   "brick.raw",
		Reader: bytes.NewReader([]byte{1, 2, 3}),
		Params: map[string]string{"dimensions": "2 2 2", "voxelType": "uchar"},
	}
	_, err := reg.Create(context.Background(), registry.VolumeFile, "raw", src)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, registry.ErrUnknownLoader)
	assert.ErrorContains(t, err, "truncated")
}

func TestCreate_ValidRaw(t *testing.T) {
	reg := registry.New()
	require.NoError(t, format.RegisterBuiltins(reg))

	src := &registry.Source{
		Path:   "brick.raw",
		Reader: bytes.NewReader(make([]byte, 8)),
		Params: map[string]string{"dimensions": "2 2 2", "voxelType": "uchar"},
	}
	asset, err := reg.Create(context.Background(), registry.VolumeFile, "raw", src)
	require.NoError(t, err)
	assert.Equal(t, "volume", asset.Kind().String())
}

func TestLookup_UnregisteredMeshTag(t *testing.T) {
	reg := registry.New()
	require.NoError(t, format.RegisterBuiltins(reg))

	_, err := reg.Lookup(registry.TriangleMeshFile, "obj")
	assert.ErrorIs(t, err, registry.ErrUnknownLoader)
}

func TestDefaultCategory(t *testing.T) {
	cat, ok := format.DefaultCategory("ply")
	assert.True(t, ok)
	assert.Equal(t, registry.TriangleMeshFile, cat)

	cat, ok = format.DefaultCategory("osp")
	assert.True(t, ok)
	assert.Equal(t, registry.ObjectFile, cat)

	_, ok = format.DefaultCategory("obj")
	assert.False(t, ok)
}
