package scene

import "fmt"

// Vec3 is a 3-component vector (positions, normals, colors).
type Vec3 [3]float64

// Vec2 is a 2-component vector (texture coordinates).
type Vec2 [2]float64

// Mesh is a triangle mesh with optional per-vertex attributes.
// Indices holds three entries per triangle.
type Mesh struct {
	Name      string
	Positions []Vec3
	Indices   []int
	Normals   []Vec3
	Colors    []Vec3
	UVs       []Vec2
}

// Kind implements Asset.
func (m *Mesh) Kind() Kind { return KindMesh }

// Label implements Asset.
func (m *Mesh) Label() string {
	if m.Name != "" {
		return m.Name
	}
	return "mesh"
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Summary implements Asset.
func (m *Mesh) Summary() map[string]any {
	return map[string]any{
		"kind":        KindMesh.String(),
		"label":       m.Label(),
		"vertices":    len(m.Positions),
		"triangles":   m.TriangleCount(),
		"has_normals": len(m.Normals) > 0,
		"has_colors":  len(m.Colors) > 0,
		"has_uvs":     len(m.UVs) > 0,
	}
}

// Validate checks structural consistency: the index list must describe
// whole triangles, every index must be in range, and optional attribute
// arrays must match the vertex count.
func (m *Mesh) Validate() error {
	if len(m.Positions) == 0 {
		return fmt.Errorf("mesh %q has no vertices", m.Label())
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q index count %d is not a multiple of 3", m.Label(), len(m.Indices))
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Positions) {
			return fmt.Errorf("mesh %q index %d out of range at position %d (vertices: %d)", m.Label(), idx, i, len(m.Positions))
		}
	}
	if len(m.Normals) > 0 && len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("mesh %q has %d normals for %d vertices", m.Label(), len(m.Normals), len(m.Positions))
	}
	if len(m.Colors) > 0 && len(m.Colors) != len(m.Positions) {
		return fmt.Errorf("mesh %q has %d colors for %d vertices", m.Label(), len(m.Colors), len(m.Positions))
	}
	if len(m.UVs) > 0 && len(m.UVs) != len(m.Positions) {
		return fmt.Errorf("mesh %q has %d uvs for %d vertices", m.Label(), len(m.UVs), len(m.Positions))
	}
	return nil
}
