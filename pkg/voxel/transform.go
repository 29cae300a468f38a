package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a rigid transform (rotation then translation, no scale)
// mapping grid-local space to world space. Rotation is stored as a unit
// quaternion; Euler angles are derived on demand so the rotation state can
// never be left partially applied.
type Transform struct {
	Rotation    mgl32.Quat
	Translation mgl32.Vec3
}

// IdentityTransform returns the identity rigid transform.
func IdentityTransform() Transform {
	return Transform{Rotation: mgl32.QuatIdent()}
}

// Apply maps a local-space point into world space.
func (t Transform) Apply(p mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Rotate(p).Add(t.Translation)
}

// Mul composes two transforms: (t.Mul(o)).Apply(p) == t.Apply(o.Apply(p)).
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		Rotation:    t.Rotation.Mul(o.Rotation).Normalize(),
		Translation: t.Rotation.Rotate(o.Translation).Add(t.Translation),
	}
}

// Inverse returns the transform mapping world space back to local space.
func (t Transform) Inverse() Transform {
	inv := t.Rotation.Inverse()
	return Transform{
		Rotation:    inv,
		Translation: inv.Rotate(t.Translation).Mul(-1),
	}
}

// Mat4 returns the equivalent 4x4 matrix for consumption by renderers.
func (t Transform) Mat4() mgl32.Mat4 {
	m := t.Rotation.Mat4()
	m[12] = t.Translation[0]
	m[13] = t.Translation[1]
	m[14] = t.Translation[2]
	return m
}

// SetEuler replaces the rotation from intrinsic X-Y-Z Euler angles
// (roll, pitch, yaw, in radians). The quaternion is fully re-derived.
func (t *Transform) SetEuler(roll, pitch, yaw float32) {
	t.Rotation = mgl32.AnglesToQuat(roll, pitch, yaw, mgl32.XYZ)
}

// Euler returns the rotation as intrinsic X-Y-Z Euler angles (roll,
// pitch, yaw, in radians). SetEuler(t.Euler()) reproduces the same
// rotation up to floating point error.
func (t Transform) Euler() (roll, pitch, yaw float32) {
	m := t.Rotation.Normalize().Mat4()
	// R = Rx(roll) * Ry(pitch) * Rz(yaw):
	//   R[0][2] = sin(pitch)
	//   R[1][2] = -sin(roll)cos(pitch), R[2][2] = cos(roll)cos(pitch)
	//   R[0][1] = -cos(pitch)sin(yaw),  R[0][0] = cos(pitch)cos(yaw)
	sp := clamp32(m.At(0, 2), -1, 1)
	pitch = float32(math.Asin(float64(sp)))
	if math.Abs(float64(sp)) > 0.9999995 {
		// Gimbal lock: yaw and roll share an axis, fold into roll.
		roll = float32(math.Atan2(float64(m.At(1, 0)), float64(m.At(1, 1))))
		if sp < 0 {
			roll = -roll
		}
		yaw = 0
		return roll, pitch, yaw
	}
	roll = float32(math.Atan2(float64(-m.At(1, 2)), float64(m.At(2, 2))))
	yaw = float32(math.Atan2(float64(-m.At(0, 1)), float64(m.At(0, 0))))
	return roll, pitch, yaw
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
