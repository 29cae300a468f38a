// Package voxel implements rigid, transformable voxel occupancy grids:
// conservative voxelization of triangle meshes, two-phase intersection
// detection between independently posed grids, and exposed-face surface
// mesh extraction.
//
// A Grid stores occupancy as a dense flat array. The flat index i of cell
// (x, y, z) is z*area + y*shape.x + x with area = shape.x*shape.y; this
// decomposition is relied on by the deterministic narrow-phase scan and
// must not change. Local grid space is centered on the grid, spanning
// [-HalfSize, +HalfSize]; world space is reached through the grid's Pose.
package voxel

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Grid is a rigid voxel occupancy grid. Occupancy is fixed at
// construction; only the pose may change afterward. A Grid is not safe
// for concurrent use while its pose is being mutated.
type Grid struct {
	dx        float32
	shape     [3]uint32
	area      uint32
	halfSize  mgl32.Vec3
	occupancy []bool
	pose      Transform
}

// newGrid allocates an empty grid. shape components must be >= 1 and
// dx > 0; callers validate.
func newGrid(shape [3]uint32, dx float32) *Grid {
	g := &Grid{
		dx:        dx,
		shape:     shape,
		area:      shape[0] * shape[1],
		occupancy: make([]bool, int(shape[0])*int(shape[1])*int(shape[2])),
		pose:      IdentityTransform(),
	}
	g.halfSize = mgl32.Vec3{
		float32(shape[0]) * dx / 2,
		float32(shape[1]) * dx / 2,
		float32(shape[2]) * dx / 2,
	}
	return g
}

// DX returns the edge length of one cubic voxel.
func (g *Grid) DX() float32 { return g.dx }

// Shape returns the grid dimensions along local X, Y, Z.
func (g *Grid) Shape() [3]uint32 { return g.shape }

// Area returns shape.x * shape.y, the Z-slice stride used in flat index
// decomposition.
func (g *Grid) Area() uint32 { return g.area }

// HalfSize returns the half-extent of the grid's local bounding box.
func (g *Grid) HalfSize() mgl32.Vec3 { return g.halfSize }

// Len returns the total number of cells.
func (g *Grid) Len() int { return len(g.occupancy) }

// Pose returns the grid's current local-to-world transform.
func (g *Grid) Pose() Transform { return g.pose }

// SetPose replaces the grid's local-to-world transform. Occupancy is
// unaffected; re-posing never requires re-voxelization.
func (g *Grid) SetPose(t Transform) { g.pose = t }

// SetTranslation replaces only the translation component of the pose.
func (g *Grid) SetTranslation(v mgl32.Vec3) { g.pose.Translation = v }

// SetEuler replaces only the rotation component of the pose, from
// intrinsic X-Y-Z Euler angles in radians.
func (g *Grid) SetEuler(roll, pitch, yaw float32) { g.pose.SetEuler(roll, pitch, yaw) }

// Index returns the flat index of cell (x, y, z), or ok=false when the
// coordinate is out of bounds.
func (g *Grid) Index(x, y, z uint32) (int, bool) {
	if x >= g.shape[0] || y >= g.shape[1] || z >= g.shape[2] {
		return 0, false
	}
	return int(z*g.area + y*g.shape[0] + x), true
}

// Coord decomposes a flat index into its (x, y, z) cell coordinate.
// The caller must ensure 0 <= i < Len().
func (g *Grid) Coord(i int) (x, y, z uint32) {
	idx := uint32(i)
	z = idx / g.area
	rem := idx % g.area
	y = rem / g.shape[0]
	x = rem % g.shape[0]
	return x, y, z
}

// Occupied reports whether the cell at flat index i is solid.
// Out-of-range indices are empty.
func (g *Grid) Occupied(i int) bool {
	return i >= 0 && i < len(g.occupancy) && g.occupancy[i]
}

// OccupiedAt reports whether cell (x, y, z) is solid. Signed coordinates
// so face-neighbor probes can step off the grid; out of bounds is empty.
func (g *Grid) OccupiedAt(x, y, z int) bool {
	if x < 0 || y < 0 || z < 0 {
		return false
	}
	i, ok := g.Index(uint32(x), uint32(y), uint32(z))
	return ok && g.occupancy[i]
}

// OccupiedCount returns the number of solid cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, s := range g.occupancy {
		if s {
			n++
		}
	}
	return n
}

// CellCenter returns the local-space center of the cell at flat index i:
// (coord + 0.5)*dx - halfSize. This is the single local-to-metric mapping
// shared by intersection, surface extraction, and visualization.
func (g *Grid) CellCenter(i int) mgl32.Vec3 {
	x, y, z := g.Coord(i)
	return mgl32.Vec3{
		(float32(x)+0.5)*g.dx - g.halfSize[0],
		(float32(y)+0.5)*g.dx - g.halfSize[1],
		(float32(z)+0.5)*g.dx - g.halfSize[2],
	}
}

// CellAABB returns the local-space bounds of the cell at flat index i.
func (g *Grid) CellAABB(i int) AABB {
	x, y, z := g.Coord(i)
	min := mgl32.Vec3{
		float32(x)*g.dx - g.halfSize[0],
		float32(y)*g.dx - g.halfSize[1],
		float32(z)*g.dx - g.halfSize[2],
	}
	return AABB{Min: min, Max: min.Add(mgl32.Vec3{g.dx, g.dx, g.dx})}
}

// CellWorldAABB returns the world-space bounds of the cell at flat index
// i under the grid's current pose: the AABB of the rotated cell corners.
func (g *Grid) CellWorldAABB(i int) AABB {
	return worldAABB(g.CellAABB(i), g.pose)
}

// WorldAABB returns the world-space bounds of the whole grid under its
// current pose.
func (g *Grid) WorldAABB() AABB {
	local := AABB{Min: g.halfSize.Mul(-1), Max: g.halfSize}
	return worldAABB(local, g.pose)
}

// worldAABB bounds a posed local box by transforming its 8 corners and
// taking per-axis min/max. Correctly bounds a rotated box without OBB
// machinery.
func worldAABB(local AABB, pose Transform) AABB {
	out := AABB{}
	first := true
	for c := 0; c < 8; c++ {
		corner := mgl32.Vec3{local.Min[0], local.Min[1], local.Min[2]}
		if c&1 != 0 {
			corner[0] = local.Max[0]
		}
		if c&2 != 0 {
			corner[1] = local.Max[1]
		}
		if c&4 != 0 {
			corner[2] = local.Max[2]
		}
		w := pose.Apply(corner)
		if first {
			out = AABB{Min: w, Max: w}
			first = false
			continue
		}
		out = out.Extend(w)
	}
	return out
}
