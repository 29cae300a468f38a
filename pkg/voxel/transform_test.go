package voxel

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vecNear(t *testing.T, got, want mgl32.Vec3, tol float32, msg string) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if abs32(got[i]-want[i]) > tol {
			t.Fatalf("%s: got %v, want %v", msg, got, want)
		}
	}
}

func TestIdentityTransform(t *testing.T) {
	tr := IdentityTransform()
	p := mgl32.Vec3{1, 2, 3}
	vecNear(t, tr.Apply(p), p, 0, "identity apply")
}

func TestApplyRotatesThenTranslates(t *testing.T) {
	var tr Transform
	tr.SetEuler(0, 0, float32(math.Pi/2)) // quarter turn about Z
	tr.Translation = mgl32.Vec3{10, 0, 0}

	got := tr.Apply(mgl32.Vec3{1, 0, 0})
	vecNear(t, got, mgl32.Vec3{10, 1, 0}, 1e-5, "rotate then translate")
}

func TestEulerRoundTrip(t *testing.T) {
	cases := [][3]float32{
		{0, 0, 0},
		{0.3, 0, 0},
		{0, 0.4, 0},
		{0, 0, 0.5},
		{0.3, -0.4, 0.5},
		{-1.2, 0.7, 2.9},
		{0.1, float32(math.Pi / 2), 0.2},  // gimbal lock
		{0.1, -float32(math.Pi / 2), 0.2}, // gimbal lock, other pole
	}
	probes := []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0.3, -0.7, 0.2}}

	for _, c := range cases {
		var tr Transform
		tr.SetEuler(c[0], c[1], c[2])

		roll, pitch, yaw := tr.Euler()
		var back Transform
		back.SetEuler(roll, pitch, yaw)

		// The recovered angles must describe the same rotation, even
		// when they are not numerically identical (gimbal lock).
		for _, p := range probes {
			vecNear(t, back.Apply(p), tr.Apply(p), 1e-4,
				"euler round trip")
		}
	}
}

func TestComposeAndInverse(t *testing.T) {
	var t1, t2 Transform
	t1.SetEuler(0.2, 0.3, -0.1)
	t1.Translation = mgl32.Vec3{1, -2, 0.5}
	t2.SetEuler(-0.6, 0.1, 0.9)
	t2.Translation = mgl32.Vec3{0, 3, -1}

	p := mgl32.Vec3{0.4, 0.5, -0.6}
	vecNear(t, t1.Mul(t2).Apply(p), t1.Apply(t2.Apply(p)), 1e-5, "composition")
	vecNear(t, t1.Inverse().Apply(t1.Apply(p)), p, 1e-5, "inverse")
}

func TestMat4MatchesApply(t *testing.T) {
	var tr Transform
	tr.SetEuler(0.5, -0.2, 1.1)
	tr.Translation = mgl32.Vec3{-1, 2, 3}

	p := mgl32.Vec3{0.7, -0.3, 0.9}
	h := tr.Mat4().Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
	vecNear(t, mgl32.Vec3{h[0], h[1], h[2]}, tr.Apply(p), 1e-5, "mat4")
}
