package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// cubeSoup returns a triangle soup for an axis-aligned box centered at
// the origin with the given half extents: 6 faces, 2 triangles each.
func cubeSoup(hx, hy, hz float32) []mgl32.Vec3 {
	quads := [6][4][3]float32{
		{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
		{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
		{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
		{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
		{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
		{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	}
	corner := func(c [3]float32) mgl32.Vec3 {
		return mgl32.Vec3{
			(2*c[0] - 1) * hx,
			(2*c[1] - 1) * hy,
			(2*c[2] - 1) * hz,
		}
	}
	var out []mgl32.Vec3
	for _, q := range quads {
		out = append(out,
			corner(q[0]), corner(q[1]), corner(q[2]),
			corner(q[0]), corner(q[2]), corner(q[3]),
		)
	}
	return out
}

// unitCubeGrid voxelizes a unit cube at dx = 0.5; all 8 cells are solid.
func unitCubeGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := FromTriMesh(cubeSoup(0.5, 0.5, 0.5), 0.5)
	if err != nil {
		t.Fatalf("FromTriMesh failed: %v", err)
	}
	return g
}

func TestIndexRoundTrip(t *testing.T) {
	// A deliberately non-cubic grid so the three strides differ.
	g, err := FromTriMesh(cubeSoup(0.15, 0.2, 0.25), 0.1)
	if err != nil {
		t.Fatalf("FromTriMesh failed: %v", err)
	}
	shape := g.Shape()
	if shape != [3]uint32{3, 4, 5} {
		t.Fatalf("shape = %v, want (3,4,5)", shape)
	}
	if g.Area() != 12 {
		t.Fatalf("area = %d, want 12", g.Area())
	}
	for i := 0; i < g.Len(); i++ {
		x, y, z := g.Coord(i)
		back := int(z*g.Area() + y*shape[0] + x)
		if back != i {
			t.Fatalf("index %d decomposed to (%d,%d,%d), recomposed to %d", i, x, y, z, back)
		}
		j, ok := g.Index(x, y, z)
		if !ok || j != i {
			t.Fatalf("Index(%d,%d,%d) = (%d,%v), want (%d,true)", x, y, z, j, ok, i)
		}
	}
}

func TestIndexOutOfBounds(t *testing.T) {
	g := unitCubeGrid(t)
	for _, c := range [][3]uint32{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}, {9, 9, 9}} {
		if _, ok := g.Index(c[0], c[1], c[2]); ok {
			t.Fatalf("Index(%v) should be out of bounds", c)
		}
	}
	if g.OccupiedAt(-1, 0, 0) || g.OccupiedAt(0, 0, 2) {
		t.Fatal("OccupiedAt outside the grid must report empty")
	}
	if g.Occupied(-1) || g.Occupied(g.Len()) {
		t.Fatal("Occupied outside the grid must report empty")
	}
}

func TestCellGeometry(t *testing.T) {
	g := unitCubeGrid(t)

	center := g.CellCenter(0)
	want := mgl32.Vec3{-0.25, -0.25, -0.25}
	if center != want {
		t.Fatalf("CellCenter(0) = %v, want %v", center, want)
	}

	box := g.CellAABB(0)
	if box.Min != (mgl32.Vec3{-0.5, -0.5, -0.5}) || box.Max != (mgl32.Vec3{0, 0, 0}) {
		t.Fatalf("CellAABB(0) = %+v", box)
	}

	last := g.Len() - 1
	if got := g.CellCenter(last); got != (mgl32.Vec3{0.25, 0.25, 0.25}) {
		t.Fatalf("CellCenter(last) = %v", got)
	}
}

func TestWorldAABBFollowsPose(t *testing.T) {
	g := unitCubeGrid(t)

	box := g.WorldAABB()
	if box.Min != (mgl32.Vec3{-0.5, -0.5, -0.5}) || box.Max != (mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Fatalf("identity world AABB = %+v", box)
	}

	g.SetTranslation(mgl32.Vec3{1, 2, 3})
	box = g.WorldAABB()
	if box.Min != (mgl32.Vec3{0.5, 1.5, 2.5}) || box.Max != (mgl32.Vec3{1.5, 2.5, 3.5}) {
		t.Fatalf("translated world AABB = %+v", box)
	}

	// Re-posing must not touch occupancy.
	if g.OccupiedCount() != 8 {
		t.Fatalf("occupancy changed after re-pose: %d", g.OccupiedCount())
	}
}

func TestRotatedWorldAABBBoundsCorners(t *testing.T) {
	g := unitCubeGrid(t)
	g.SetEuler(0, 0, 0.7853982) // 45 degrees about Z

	box := g.WorldAABB()
	// A unit box rotated 45 degrees about Z bounds to sqrt(2) wide in X/Y.
	want := float32(0.70710678)
	for i, w := range []float32{want, want, 0.5} {
		if diff := abs32(box.Max[i] - w); diff > 1e-5 {
			t.Fatalf("axis %d: max = %v, want %v", i, box.Max[i], w)
		}
		if diff := abs32(box.Min[i] + w); diff > 1e-5 {
			t.Fatalf("axis %d: min = %v, want %v", i, box.Min[i], -w)
		}
	}
}
