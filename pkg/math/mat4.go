package math

// Mat4 is a column-major 4x4 matrix: element (row, col) is m[col*4+row].
// RVG frame transforms are affine, so the bottom row stays (0, 0, 0, 1).
type Mat4 [16]float32

// Identity returns the transform that leaves points unchanged.
func Identity() Mat4 {
	return Scale(1, 1, 1)
}

// Translate returns a translation by (x, y, z).
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale returns a scale about the origin.
func Scale(x, y, z float32) Mat4 {
	return Mat4{0: x, 5: y, 10: z, 15: 1}
}

// Mul returns m * n, the transform applying n first and then m.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// Then returns the transform applying m and then next.
func (m Mat4) Then(next Mat4) Mat4 {
	return next.Mul(m)
}

// Apply maps p through m.
func (m Mat4) Apply(p [3]float32) [3]float32 {
	var out [3]float32
	for r := 0; r < 3; r++ {
		out[r] = m[r]*p[0] + m[4+r]*p[1] + m[8+r]*p[2] + m[12+r]
	}
	return out
}

// Apply2 maps a point on the z=0 plane and drops z.
func (m Mat4) Apply2(v Vec2) Vec2 {
	p := m.Apply([3]float32{v.X, v.Y, 0})
	return Vec2{p[0], p[1]}
}
