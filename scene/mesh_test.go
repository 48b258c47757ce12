package scene_test

import (
	"testing"

	"scene-manager/scene"

	"github.com/stretchr/testify/assert"
)

func validMesh() *scene.Mesh {
	return &scene.Mesh{
		Name: "tri",
		Positions: []scene.Vec3{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
		},
		Indices: []int{0, 1, 2},
	}
}

func TestMesh_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, validMesh().Validate())
	})

	t.Run("No Vertices", func(t *testing.T) {
		m := &scene.Mesh{Indices: []int{0, 1, 2}}
		assert.ErrorContains(t, m.Validate(), "no vertices")
	})

	t.Run("Partial Triangle", func(t *testing.T) {
		m := validMesh()
		m.Indices = []int{0, 1}
		assert.ErrorContains(t, m.Validate(), "not a multiple of 3")
	})

	t.Run("Index Out Of Range", func(t *testing.T) {
		m := validMesh()
		m.Indices = []int{0, 1, 3}
		assert.ErrorContains(t, m.Validate(), "out of range")
	})

	t.Run("Attribute Count Mismatch", func(t *testing.T) {
		m := validMesh()
		m.Normals = []scene.Vec3{{0, 0, 1}}
		assert.ErrorContains(t, m.Validate(), "normals")
	})
}

func TestMesh_Summary(t *testing.T) {
	m := validMesh()
	s := m.Summary()
	assert.Equal(t, "mesh", s["kind"])
	assert.Equal(t, "tri", s["label"])
	assert.Equal(t, 3, s["vertices"])
	assert.Equal(t, 1, s["triangles"])
	assert.Equal(t, false, s["has_normals"])
}
