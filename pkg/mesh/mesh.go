// Package mesh defines the triangle mesh value type shared across the
// voxelization pipeline. A TriMesh is the input to the voxelizer and the
// output of surface extraction; it carries no transform of its own.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TriMesh is a triangle mesh. Positions holds one Vec3 per vertex.
// If Indices is non-empty, every group of 3 indices selects a triangle;
// otherwise Positions is consumed directly in groups of 3 (triangle soup).
// Colors, when present, carries one RGBA value per vertex.
type TriMesh struct {
	Positions []mgl32.Vec3 `json:"positions"`
	Indices   []uint32     `json:"indices,omitempty"`
	Colors    []mgl32.Vec4 `json:"colors,omitempty"`
	Name      string       `json:"name,omitempty"`
}

// VertexCount returns the number of vertices.
func (m *TriMesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *TriMesh) TriangleCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return len(m.Positions) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *TriMesh) IsEmpty() bool {
	return m.TriangleCount() == 0
}

// Triangle returns the three corner positions of triangle i. It handles
// both indexed and non-indexed meshes. The caller must ensure
// 0 <= i < TriangleCount().
func (m *TriMesh) Triangle(i int) (a, b, c mgl32.Vec3) {
	if len(m.Indices) > 0 {
		return m.Positions[m.Indices[3*i]],
			m.Positions[m.Indices[3*i+1]],
			m.Positions[m.Indices[3*i+2]]
	}
	return m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2]
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
// ok is false for a mesh with no vertices.
func (m *TriMesh) Bounds() (min, max mgl32.Vec3, ok bool) {
	if len(m.Positions) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return min, max, true
}

// IndicesFrom16 widens a 16-bit index buffer to the 32-bit form used by
// TriMesh. Mesh assets commonly ship 16-bit indices when they fit.
func IndicesFrom16(indices []uint16) []uint32 {
	out := make([]uint32, len(indices))
	for i, v := range indices {
		out[i] = uint32(v)
	}
	return out
}
