package registry_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"scene-manager/core/registry"
	"scene-manager/scene"

	"github.com/stretchr/testify/assert"
)

// stubLoader returns a fixed asset or error.
type stubLoader struct {
	asset scene.Asset
	err   error
}

func (l *stubLoader) Load(ctx context.Context, src *registry.Source) (scene.Asset, error) {
	return l.asset, l.err
}

func stubFactory(asset scene.Asset, err error) registry.Factory {
	return func() registry.Loader { return &stubLoader{asset: asset, err: err} }
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := registry.New()

	pairs := []struct {
		cat registry.Category
		tag registry.Tag
	}{
		{registry.ObjectFile, "osp"},
		{registry.VolumeFile, "raw"},
		{registry.TriangleMeshFile, "ply"},
	}

	for _, p := range pairs {
		assert.NoError(t, reg.Register(p.cat, p.tag, stubFactory(&scene.Mesh{}, nil)))
	}

	for _, p := range pairs {
		factory, err := reg.Lookup(p.cat, p.tag)
		assert.NoError(t, err)
		assert.NotNil(t, factory)
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	reg := registry.New()
	assert.NoError(t, reg.Register(registry.TriangleMeshFile, "ply", stubFactory(&scene.Mesh{}, nil)))

	_, err := reg.Lookup(registry.TriangleMeshFile, "obj")
	assert.ErrorIs(t, err, registry.ErrUnknownLoader)

	// Same tag in a different category must also miss.
	_, err = reg.Lookup(registry.VolumeFile, "ply")
	assert.ErrorIs(t, err, registry.ErrUnknownLoader)
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	reg := registry.New()
	first := stubFactory(&scene.Object{Name: "first"}, nil)
	second := stubFactory(&scene.Object{Name: "second"}, nil)

	assert.NoError(t, reg.Register(registry.ObjectFile, "osp", first))

	err := reg.Register(registry.ObjectFile, "osp", second)
	var dup *registry.DuplicateError
	assert.ErrorAs(t, err, &dup)
	assert.Equal(t, registry.ObjectFile, dup.Category)
	assert.Equal(t, registry.Tag("osp"), dup.Tag)

	// The first registration must survive.
	factory, err := reg.Lookup(registry.ObjectFile, "osp")
	assert.NoError(t, err)
	asset, err := factory().Load(context.Background(), &registry.Source{})
	assert.NoError(t, err)
	assert.Equal(t, "first", asset.Label())
}

func TestRegistry_RegisterValidation(t *testing.T) {
	reg := registry.New()
	assert.Error(t, reg.Register(registry.VolumeFile, "", stubFactory(nil, nil)))
	assert.Error(t, reg.Register(registry.VolumeFile, "raw", nil))
}

func TestRegistry_CreatePropagatesLoaderError(t *testing.T) {
	reg := registry.New()
	parserErr := errors.New("corrupt payload")
	assert.NoError(t, reg.Register(registry.VolumeFile, "raw", stubFactory(nil, parserErr)))

	_, err := reg.Create(context.Background(), registry.VolumeFile, "raw", &registry.Source{})
	assert.ErrorIs(t, err, parserErr)
	assert.NotErrorIs(t, err, registry.ErrUnknownLoader)
}

func TestRegistry_CreateUnknown(t *testing.T) {
	reg := registry.New()
	_, err := reg.Create(context.Background(), registry.VolumeFile, "raw", &registry.Source{})
	assert.ErrorIs(t, err, registry.ErrUnknownLoader)
}

func TestRegistry_ConcurrentRegistration(t *testing.T) {
	reg := registry.New()

	var wg sync.WaitGroup
	tags := []registry.Tag{"osp", "raw", "ply", "vti", "nrrd", "obj"}
	for _, tag := range tags {
		wg.Add(1)
		go func(tag registry.Tag) {
			defer wg.Done()
			assert.NoError(t, reg.Register(registry.VolumeFile, tag, stubFactory(&scene.Volume{}, nil)))
		}(tag)
	}
	wg.Wait()

	assert.Len(t, reg.Tags(registry.VolumeFile), len(tags))
}

func TestRegistry_TagsSorted(t *testing.T) {
	reg := registry.New()
	for _, tag := range []registry.Tag{"raw", "nrrd", "vti"} {
		assert.NoError(t, reg.Register(registry.VolumeFile, tag, stubFactory(&scene.Volume{}, nil)))
	}
	assert.Equal(t, []registry.Tag{"nrrd", "raw", "vti"}, reg.Tags(registry.VolumeFile))
}

func TestTagFromPath(t *testing.T) {
	tests := []struct {
		path string
		want registry.Tag
	}{
		{"bunny.ply", "ply"},
		{"scenes/head.OSP", "osp"},
		{"/abs/path/brick.raw", "raw"},
		{"noext", ""},
		{"trailing.", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, registry.TagFromPath(tt.path), tt.path)
	}
}

func TestSource_Sibling(t *testing.T) {
	t.Run("Relative Path", func(t *testing.T) {
		src := &registry.Source{Path: "/data/scenes/head.osp"}
		sib, err := src.Sibling("head.raw", nil)
		assert.NoError(t, err)
		assert.Equal(t, "/data/scenes/head.raw", sib.Path)
	})

	t.Run("Resolver", func(t *testing.T) {
		var asked string
		src := &registry.Source{
			Path: "scenes/head.osp",
			Resolve: func(name string) (io.ReadCloser, error) {
				asked = name
				return io.NopCloser(strings.NewReader("payload")), nil
			},
		}
		sib, err := src.Sibling("head.raw", map[string]string{"voxelType": "uchar"})
		assert.NoError(t, err)
		assert.Equal(t, "head.raw", asked)
		assert.NotNil(t, sib.Reader)
		v, ok := sib.Param("voxelType")
		assert.True(t, ok)
		assert.Equal(t, "uchar", v)
	})

	t.Run("Self Reference Rejected", func(t *testing.T) {
		src := &registry.Source{Path: "scenes/loop.osp"}
		_, err := src.Sibling("loop.osp", nil)
		assert.ErrorContains(t, err, "cyclic reference")
	})

	t.Run("Indirect Cycle Rejected", func(t *testing.T) {
		a := &registry.Source{Path: "scenes/a.osp"}
		b, err := a.Sibling("b.osp", nil)
		assert.NoError(t, err)
		_, err = b.Sibling("a.osp", nil)
		assert.ErrorContains(t, err, "cyclic reference")
	})

	t.Run("Depth Limit", func(t *testing.T) {
		src := &registry.Source{Path: "scenes/root.osp"}
		var err error
		for i := 0; i < registry.MaxReferenceDepth+1; i++ {
			src, err = src.Sibling(fmt.Sprintf("level%d.osp", i), nil)
			if err != nil {
				break
			}
		}
		assert.ErrorContains(t, err, "exceeds")
	})
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "object", registry.ObjectFile.String())
	assert.Equal(t, "volume", registry.VolumeFile.String())
	assert.Equal(t, "mesh", registry.TriangleMeshFile.String())
}

func TestParseCategory(t *testing.T) {
	for _, s := range []string{"object", "Volume", "MESH"} {
		_, err := registry.ParseCategory(s)
		assert.NoError(t, err)
	}
	_, err := registry.ParseCategory("texture")
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "texture"))
}
