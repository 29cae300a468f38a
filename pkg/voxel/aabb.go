package voxel

import (
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box given by its minimum and maximum
// corners. A box with Min == Max is a degenerate but valid (zero-width)
// box; touching boxes count as overlapping.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (a AABB) Center() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Size returns the per-axis extent of the box.
func (a AABB) Size() mgl32.Vec3 {
	return a.Max.Sub(a.Min)
}

// Overlaps reports whether a and b overlap on all three axes.
// Boundary contact counts as overlap.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min[0] <= b.Max[0] && a.Max[0] >= b.Min[0] &&
		a.Min[1] <= b.Max[1] && a.Max[1] >= b.Min[1] &&
		a.Min[2] <= b.Max[2] && a.Max[2] >= b.Min[2]
}

// Intersection returns the axis-wise intersection of a and b.
// ok is false when the boxes do not overlap on some axis.
func (a AABB) Intersection(b AABB) (AABB, bool) {
	var out AABB
	for i := 0; i < 3; i++ {
		out.Min[i] = max32(a.Min[i], b.Min[i])
		out.Max[i] = min32(a.Max[i], b.Max[i])
		if out.Min[i] > out.Max[i] {
			return AABB{}, false
		}
	}
	return out, true
}

// Contains reports whether p lies inside the box, boundary included.
func (a AABB) Contains(p mgl32.Vec3) bool {
	return p[0] >= a.Min[0] && p[0] <= a.Max[0] &&
		p[1] >= a.Min[1] && p[1] <= a.Max[1] &&
		p[2] >= a.Min[2] && p[2] <= a.Max[2]
}

// Extend grows the box to include p.
func (a AABB) Extend(p mgl32.Vec3) AABB {
	for i := 0; i < 3; i++ {
		if p[i] < a.Min[i] {
			a.Min[i] = p[i]
		}
		if p[i] > a.Max[i] {
			a.Max[i] = p[i]
		}
	}
	return a
}

// AABBOf returns the bounding box of a set of points.
// ok is false for an empty set.
func AABBOf(points []mgl32.Vec3) (AABB, bool) {
	if len(points) == 0 {
		return AABB{}, false
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = box.Extend(p)
	}
	return box, true
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
