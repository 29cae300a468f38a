package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAABBOverlapsAndIntersection(t *testing.T) {
	a := AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}
	b := AABB{Min: mgl32.Vec3{0.5, 0.5, 0.5}, Max: mgl32.Vec3{2, 2, 2}}

	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatal("overlapping boxes reported disjoint")
	}
	got, ok := a.Intersection(b)
	if !ok {
		t.Fatal("Intersection returned no box")
	}
	want := AABB{Min: mgl32.Vec3{0.5, 0.5, 0.5}, Max: mgl32.Vec3{1, 1, 1}}
	if got != want {
		t.Fatalf("intersection = %+v, want %+v", got, want)
	}
}

func TestAABBTouchingCounts(t *testing.T) {
	// Closed intervals: sharing a face is an overlap with zero volume.
	a := AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}
	b := AABB{Min: mgl32.Vec3{1, 0, 0}, Max: mgl32.Vec3{2, 1, 1}}

	if !a.Overlaps(b) {
		t.Fatal("face-touching boxes reported disjoint")
	}
	got, ok := a.Intersection(b)
	if !ok {
		t.Fatal("touching boxes produced no intersection")
	}
	if got.Min.X() != 1 || got.Max.X() != 1 {
		t.Fatalf("touching intersection X range = [%v, %v], want [1, 1]", got.Min.X(), got.Max.X())
	}
}

func TestAABBDisjoint(t *testing.T) {
	a := AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}
	b := AABB{Min: mgl32.Vec3{1.01, 0, 0}, Max: mgl32.Vec3{2, 1, 1}}

	if a.Overlaps(b) {
		t.Fatal("disjoint boxes reported overlapping")
	}
	if _, ok := a.Intersection(b); ok {
		t.Fatal("disjoint boxes produced an intersection")
	}
}

func TestAABBCenterSizeContains(t *testing.T) {
	a := AABB{Min: mgl32.Vec3{-1, -2, -3}, Max: mgl32.Vec3{1, 2, 3}}
	if c := a.Center(); c != (mgl32.Vec3{}) {
		t.Fatalf("center = %v, want origin", c)
	}
	if s := a.Size(); s != (mgl32.Vec3{2, 4, 6}) {
		t.Fatalf("size = %v, want (2, 4, 6)", s)
	}
	if !a.Contains(mgl32.Vec3{1, 2, 3}) {
		t.Fatal("boundary point reported outside")
	}
	if a.Contains(mgl32.Vec3{1.1, 0, 0}) {
		t.Fatal("exterior point reported inside")
	}
}

func TestAABBOf(t *testing.T) {
	pts := []mgl32.Vec3{{1, 5, -2}, {-3, 0, 4}, {2, -1, 0}}
	box, ok := AABBOf(pts)
	if !ok {
		t.Fatal("AABBOf returned no box for non-empty input")
	}
	if box.Min != (mgl32.Vec3{-3, -1, -2}) || box.Max != (mgl32.Vec3{2, 5, 4}) {
		t.Fatalf("bounds = %+v", box)
	}
	if _, ok := AABBOf(nil); ok {
		t.Fatal("AABBOf of empty input returned a box")
	}
}
