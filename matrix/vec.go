// Package matrix implements the 2D/3D linear algebra used by the localizer and robot geometry:
// rotation matrices, homogeneous transforms, and their algebraic laws.
//
// Grounded on original_source/matrix/{Vec2,Vec3,Mat2,Mat3}.py.
package matrix

import "math"

// Vec2 is a 2D vector, used for position and direction.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64       { return math.Sqrt(v.Dot(v)) }

// IsFinite reports whether both components are finite; used to detect solver failure per spec §3.
func (v Vec2) IsFinite() bool {
	return isFiniteF(v.X) && isFiniteF(v.Y)
}

// Vec3 is a 3D vector, used as the homogeneous extension of a Vec2 and for Mat3 rows/columns.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) IsFinite() bool {
	return isFiniteF(v.X) && isFiniteF(v.Y) && isFiniteF(v.Z)
}

func isFiniteF(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
