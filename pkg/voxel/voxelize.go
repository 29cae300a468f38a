package voxel

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/chazu/cvoxel/pkg/mesh"
)

// Voxelization failure taxonomy. All failures are recoverable: callers
// treat them as "this mesh cannot be voxelized" and skip or report.
var (
	ErrInvalidVoxelSize = errors.New("voxel: voxel size must be positive")
	ErrEmptyMesh        = errors.New("voxel: mesh has no triangles")
	ErrDegenerateMesh   = errors.New("voxel: mesh bounding box is degenerate")
	ErrGridTooLarge     = errors.New("voxel: grid resolution too large")
)

// maxAxisCells bounds the grid resolution per axis. Beyond this the
// float-to-uint32 shape conversion is unsafe and the occupancy
// allocation is absurd anyway.
const maxAxisCells = 1 << 20

// FromTriMesh voxelizes a non-indexed triangle soup at voxel edge length
// dx. Vertices are consumed in groups of 3; a trailing partial triangle
// is ignored. The grid is voxel-aligned, fully contains the mesh, and is
// centered on the mesh bounding box; its pose defaults to identity.
func FromTriMesh(vertices []mgl32.Vec3, dx float32) (*Grid, error) {
	return FromMesh(&mesh.TriMesh{Positions: vertices}, dx)
}

// FromIndexedMesh voxelizes an indexed triangle mesh at voxel edge length
// dx. Each group of 3 indices selects a triangle. 16-bit index buffers
// are accepted via mesh.IndicesFrom16.
func FromIndexedMesh(vertices []mgl32.Vec3, indices []uint32, dx float32) (*Grid, error) {
	return FromMesh(&mesh.TriMesh{Positions: vertices, Indices: indices}, dx)
}

// FromMesh voxelizes a TriMesh at voxel edge length dx.
//
// Cells are marked by conservative surface rasterization: a cell is solid
// when any triangle intersects or passes through the cell's volume
// (separating axis test per candidate cell). Interior cells behind the
// surface are not filled; the result is a conservative shell sufficient
// for intersection queries.
func FromMesh(m *mesh.TriMesh, dx float32) (*Grid, error) {
	if dx <= 0 || math.IsNaN(float64(dx)) {
		return nil, ErrInvalidVoxelSize
	}
	if m == nil || m.IsEmpty() {
		return nil, ErrEmptyMesh
	}
	lo, hi, ok := m.Bounds()
	if !ok {
		return nil, ErrEmptyMesh
	}

	var shape [3]uint32
	for i := 0; i < 3; i++ {
		// The quotient is taken in float32: extents that are exact
		// multiples of dx in single precision must not gain a spurious
		// extra cell from a higher-precision division (0.3/0.1 is exactly
		// 3 in float32 but 3+eps in float64).
		q := (hi[i] - lo[i]) / dx
		if math.IsNaN(float64(q)) || math.IsInf(float64(q), 0) {
			return nil, ErrDegenerateMesh
		}
		if q > maxAxisCells {
			return nil, ErrGridTooLarge
		}
		n := uint32(math.Ceil(float64(q)))
		if n < 1 {
			// Flat meshes still occupy one cell along their thin axis.
			n = 1
		}
		shape[i] = n
	}

	g := newGrid(shape, dx)

	// Mesh coordinates are re-expressed relative to the mesh AABB center
	// so the grid's local frame spans [-halfSize, +halfSize].
	center := lo.Add(hi).Mul(0.5)
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		g.rasterizeTriangle(a.Sub(center), b.Sub(center), c.Sub(center))
	}
	return g, nil
}

// rasterizeTriangle marks every cell whose volume the triangle touches.
// Candidates are limited to the cells under the triangle's own AABB.
func (g *Grid) rasterizeTriangle(a, b, c mgl32.Vec3) {
	box, _ := AABBOf([]mgl32.Vec3{a, b, c})
	var lo, hi [3]int
	for i := 0; i < 3; i++ {
		lo[i] = clampCell(int(math.Floor(float64((box.Min[i]+g.halfSize[i])/g.dx))), int(g.shape[i]))
		hi[i] = clampCell(int(math.Floor(float64((box.Max[i]+g.halfSize[i])/g.dx))), int(g.shape[i]))
	}
	for z := lo[2]; z <= hi[2]; z++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for x := lo[0]; x <= hi[0]; x++ {
				i, ok := g.Index(uint32(x), uint32(y), uint32(z))
				if !ok || g.occupancy[i] {
					continue
				}
				cell := g.CellAABB(i)
				if triangleBoxOverlap(a, b, c, cell.Center(), cell.Size().Mul(0.5)) {
					g.occupancy[i] = true
				}
			}
		}
	}
}

func clampCell(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// triangleBoxOverlap is the separating axis test between a triangle and
// an axis-aligned box given by center and half extents. 13 axes: 3 box
// face normals, the triangle normal, and 9 edge cross products.
func triangleBoxOverlap(a, b, c, boxCenter, boxHalf mgl32.Vec3) bool {
	v0 := a.Sub(boxCenter)
	v1 := b.Sub(boxCenter)
	v2 := c.Sub(boxCenter)

	e0 := v1.Sub(v0)
	e1 := v2.Sub(v1)
	e2 := v0.Sub(v2)

	// Box face normals.
	for i := 0; i < 3; i++ {
		lo := min32(v0[i], min32(v1[i], v2[i]))
		hi := max32(v0[i], max32(v1[i], v2[i]))
		if lo > boxHalf[i] || hi < -boxHalf[i] {
			return false
		}
	}

	// Triangle plane.
	normal := e0.Cross(e1)
	if !axisOverlaps(normal, v0, v1, v2, boxHalf) {
		return false
	}

	// Cross products of box axes and triangle edges. Near-zero axes are
	// degenerate (edge parallel to box axis) and carry no separation
	// information.
	axes := [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	edges := [3]mgl32.Vec3{e0, e1, e2}
	for _, u := range axes {
		for _, e := range edges {
			axis := u.Cross(e)
			if axis.Dot(axis) <= 1e-12 {
				continue
			}
			if !axisOverlaps(axis, v0, v1, v2, boxHalf) {
				return false
			}
		}
	}
	return true
}

// axisOverlaps projects the triangle and the origin-centered box onto
// axis and reports whether the projections overlap (touching counts).
func axisOverlaps(axis, v0, v1, v2, boxHalf mgl32.Vec3) bool {
	p0 := v0.Dot(axis)
	p1 := v1.Dot(axis)
	p2 := v2.Dot(axis)
	lo := min32(p0, min32(p1, p2))
	hi := max32(p0, max32(p1, p2))
	r := boxHalf[0]*abs32(axis[0]) + boxHalf[1]*abs32(axis[1]) + boxHalf[2]*abs32(axis[2])
	return !(lo > r || hi < -r)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
