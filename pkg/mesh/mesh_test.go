package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTriangleSoup(t *testing.T) {
	m := &TriMesh{Positions: []mgl32.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1},
	}}
	if m.VertexCount() != 6 {
		t.Fatalf("vertices = %d, want 6", m.VertexCount())
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("triangles = %d, want 2", m.TriangleCount())
	}
	a, b, c := m.Triangle(1)
	if a != (mgl32.Vec3{0, 0, 1}) || b != (mgl32.Vec3{1, 0, 1}) || c != (mgl32.Vec3{0, 1, 1}) {
		t.Fatalf("triangle 1 = %v %v %v", a, b, c)
	}
}

func TestIndexedTriangles(t *testing.T) {
	m := &TriMesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("triangles = %d, want 2", m.TriangleCount())
	}
	a, b, c := m.Triangle(1)
	if a != (mgl32.Vec3{0, 0, 0}) || b != (mgl32.Vec3{1, 1, 0}) || c != (mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("triangle 1 = %v %v %v", a, b, c)
	}
}

func TestIsEmpty(t *testing.T) {
	var m TriMesh
	if !m.IsEmpty() {
		t.Fatal("zero mesh not empty")
	}
	// Fewer than 3 positions is still no triangle.
	m.Positions = []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}}
	if !m.IsEmpty() {
		t.Fatal("2-vertex soup not empty")
	}
	// Indexed mesh with vertices but no indices has no triangles either.
	m.Positions = []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	if m.IsEmpty() {
		t.Fatal("3-vertex soup reported empty")
	}
}

func TestBounds(t *testing.T) {
	m := &TriMesh{Positions: []mgl32.Vec3{{1, -2, 3}, {-4, 5, 0}, {2, 2, -1}}}
	min, max, ok := m.Bounds()
	if !ok {
		t.Fatal("Bounds returned ok=false for non-empty mesh")
	}
	if min != (mgl32.Vec3{-4, -2, -1}) || max != (mgl32.Vec3{2, 5, 3}) {
		t.Fatalf("bounds = %v .. %v", min, max)
	}

	var empty TriMesh
	if _, _, ok := empty.Bounds(); ok {
		t.Fatal("Bounds returned ok=true for empty mesh")
	}
}

func TestIndicesFrom16(t *testing.T) {
	got := IndicesFrom16([]uint16{0, 1, 65535})
	want := []uint32{0, 1, 65535}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d = %d, want %d", i, got[i], want[i])
		}
	}
}
