package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDisjointGrids(t *testing.T) {
	a := unitCubeGrid(t)
	b := unitCubeGrid(t)
	// Combined half extents along X sum to 1.0; 1.5 is clearly apart.
	b.SetTranslation(mgl32.Vec3{1.5, 0, 0})

	if _, ok := a.IntersectionAABB(b); ok {
		t.Fatal("broad phase reported overlap for disjoint grids")
	}
	if _, _, ok := a.Intersected(b); ok {
		t.Fatal("narrow phase reported contact for disjoint grids")
	}
}

func TestTouchingGrids(t *testing.T) {
	a := unitCubeGrid(t)
	b := unitCubeGrid(t)
	b.SetTranslation(mgl32.Vec3{0.5, 0, 0})

	overlap, ok := a.IntersectionAABB(b)
	if !ok {
		t.Fatal("broad phase missed overlapping grids")
	}
	if diff := abs32(overlap.Min[0] - 0); diff > 1e-6 {
		t.Fatalf("overlap min X = %v, want 0", overlap.Min[0])
	}
	if diff := abs32(overlap.Max[0] - 0.5); diff > 1e-6 {
		t.Fatalf("overlap max X = %v, want 0.5", overlap.Max[0])
	}

	ia, ib, ok := a.Intersected(b)
	if !ok {
		t.Fatal("narrow phase missed touching grids")
	}
	// Ascending scan on both sides: cell 0 of A touches cell 0 of B at
	// the x=0 plane.
	if ia != 0 || ib != 0 {
		t.Fatalf("pair = (%d,%d), want (0,0)", ia, ib)
	}
}

func TestSelfIntersectionConsistency(t *testing.T) {
	a := unitCubeGrid(t)
	b := unitCubeGrid(t)

	overlap, ok := a.IntersectionAABB(b)
	if !ok {
		t.Fatal("grid does not overlap its own copy")
	}
	world := a.WorldAABB()
	for i := 0; i < 3; i++ {
		if abs32(overlap.Min[i]-world.Min[i]) > 1e-6 || abs32(overlap.Max[i]-world.Max[i]) > 1e-6 {
			t.Fatalf("axis %d: self overlap %v..%v, want %v..%v",
				i, overlap.Min[i], overlap.Max[i], world.Min[i], world.Max[i])
		}
	}

	ia, ib, ok := a.Intersected(b)
	if !ok {
		t.Fatal("identical grids report no voxel contact")
	}
	if ia != 0 || ib != 0 {
		t.Fatalf("pair = (%d,%d), want (0,0)", ia, ib)
	}
}

func TestNarrowPhaseDeterminism(t *testing.T) {
	a := unitCubeGrid(t)
	b := unitCubeGrid(t)
	b.SetTranslation(mgl32.Vec3{0.4, 0.1, -0.2})
	b.SetEuler(0.3, 0.2, 0.1)

	ia0, ib0, ok := a.Intersected(b)
	if !ok {
		t.Fatal("expected voxel contact")
	}
	for i := 0; i < 5; i++ {
		ia, ib, ok := a.Intersected(b)
		if !ok || ia != ia0 || ib != ib0 {
			t.Fatalf("call %d: pair = (%d,%d,%v), want (%d,%d,true)", i, ia, ib, ok, ia0, ib0)
		}
	}
}

func TestBroadPhaseFalsePositive(t *testing.T) {
	// A 45-degree rotated cube near a corner of an axis-aligned cube:
	// the world AABBs overlap but no occupied cells touch.
	a := unitCubeGrid(t)
	b := unitCubeGrid(t)
	b.SetEuler(0, 0, 0.7853982)
	b.SetTranslation(mgl32.Vec3{1, 1, 0})

	if _, ok := a.IntersectionAABB(b); !ok {
		t.Fatal("broad phase should overlap in this configuration")
	}
	if ia, ib, ok := a.Intersected(b); ok {
		t.Fatalf("narrow phase reported contact (%d,%d) for separated solids", ia, ib)
	}
}

func TestIntersectedAfterRepose(t *testing.T) {
	// Re-posing alone must flip the outcome; no re-voxelization needed.
	a := unitCubeGrid(t)
	b := unitCubeGrid(t)

	b.SetTranslation(mgl32.Vec3{5, 0, 0})
	if _, _, ok := a.Intersected(b); ok {
		t.Fatal("grids far apart should not intersect")
	}

	b.SetTranslation(mgl32.Vec3{0.25, 0, 0})
	if _, _, ok := a.Intersected(b); !ok {
		t.Fatal("grids moved together should intersect")
	}
}
