package rvg

import (
	rmath "github.com/Faultbox/rvg/pkg/math"
)

// Matrix composes the frame's transforms in list order: the first
// transform is applied to a point first.
func (f *Frame) Matrix() rmath.Mat4 {
	m := rmath.Identity()
	for _, t := range f.Transforms {
		var step rmath.Mat4
		switch v := t.(type) {
		case Translate:
			step = rmath.Translate(v.X, v.Y, v.Z)
		case Scale:
			step = rmath.Scale(v.X, v.Y, v.Z)
		case Rotate:
			step = rmath.Quat{X: v.X, Y: v.Y, Z: v.Z, W: v.W}.Matrix()
		default:
			continue
		}
		m = m.Then(step)
	}
	return m
}
