package voxel

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/chazu/cvoxel/pkg/mesh"
)

// DefaultSurfaceColor is the per-vertex color applied by SurfaceMesh.
var DefaultSurfaceColor = mgl32.Vec4{0.8, 0.8, 0.8, 1}

// face describes one of the 6 cube faces: the neighbor step that hides
// it and its 4 corner offsets in {0,1}^3, wound counter-clockwise seen
// from outside.
type face struct {
	step    [3]int
	corners [4][3]float32
}

var cubeFaces = [6]face{
	{[3]int{-1, 0, 0}, [4][3]float32{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	{[3]int{1, 0, 0}, [4][3]float32{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
	{[3]int{0, -1, 0}, [4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	{[3]int{0, 1, 0}, [4][3]float32{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}},
	{[3]int{0, 0, -1}, [4][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
	{[3]int{0, 0, 1}, [4][3]float32{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
}

// SurfaceMesh extracts a renderable triangle mesh of the grid's exposed
// voxel faces with the default color. See SurfaceMeshColored.
func (g *Grid) SurfaceMesh() *mesh.TriMesh {
	return g.SurfaceMeshColored(DefaultSurfaceColor)
}

// SurfaceMeshColored walks the occupancy data and emits, for every
// occupied cell, each of its 6 faces as 4 vertices and 2 triangles,
// but only when the face's neighbor cell is empty or outside the grid.
// Faces between two occupied cells are invisible and skipped.
//
// Positions are local-space cell corners; the consuming renderer applies
// the grid's pose as a whole-object transform. Every vertex carries the
// given color. The walk is a pure read: occupancy is never mutated.
func (g *Grid) SurfaceMeshColored(color mgl32.Vec4) *mesh.TriMesh {
	m := &mesh.TriMesh{}
	for i, solid := range g.occupancy {
		if !solid {
			continue
		}
		x, y, z := g.Coord(i)
		origin := g.CellAABB(i).Min
		for _, f := range cubeFaces {
			if g.OccupiedAt(int(x)+f.step[0], int(y)+f.step[1], int(z)+f.step[2]) {
				continue
			}
			base := uint32(len(m.Positions))
			for _, c := range f.corners {
				m.Positions = append(m.Positions, mgl32.Vec3{
					origin[0] + c[0]*g.dx,
					origin[1] + c[1]*g.dx,
					origin[2] + c[2]*g.dx,
				})
				m.Colors = append(m.Colors, color)
			}
			m.Indices = append(m.Indices,
				base, base+1, base+2,
				base, base+2, base+3,
			)
		}
	}
	return m
}
