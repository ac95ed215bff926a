package math

import "math"

// Quat is a rotation quaternion; W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// AxisAngle returns the rotation of angle radians about the unit axis
// (x, y, z).
func AxisAngle(x, y, z, angle float32) Quat {
	sin, cos := math.Sincos(float64(angle) / 2)
	s := float32(sin)
	return Quat{X: x * s, Y: y * s, Z: z * s, W: float32(cos)}
}

// Norm returns the length of q.
func (q Quat) Norm() float32 {
	return float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
}

// Unit returns q scaled to length 1. A (near) zero quaternion carries no
// rotation and becomes the identity.
func (q Quat) Unit() Quat {
	n := q.Norm()
	if n < 1e-4 {
		return Quat{W: 1}
	}
	return Quat{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// Matrix returns the rotation matrix of q, normalising it first.
func (q Quat) Matrix() Mat4 {
	q = q.Unit()

	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, xy, xz := q.X*x2, q.X*y2, q.X*z2
	yy, yz, zz := q.Y*y2, q.Y*z2, q.Z*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	return Mat4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		0, 0, 0, 1,
	}
}
