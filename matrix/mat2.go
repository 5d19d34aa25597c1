package matrix

import "math"

// Mat2 is a 2x2 matrix, row-major: [[M00, M01], [M10, M11]].
type Mat2 struct {
	M00, M01 float64
	M10, M11 float64
}

// Identity2 is the 2x2 identity matrix.
var Identity2 = Mat2{M00: 1, M01: 0, M10: 0, M11: 1}

// FromAngle builds the rotation matrix for angle theta (radians), per spec §4.H:
// [[cos θ, -sin θ], [sin θ, cos θ]].
func FromAngle(theta float64) Mat2 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Mat2{M00: c, M01: -s, M10: s, M11: c}
}

// MulMat2 returns the matrix product m * o.
func (m Mat2) MulMat2(o Mat2) Mat2 {
	return Mat2{
		M00: m.M00*o.M00 + m.M01*o.M10,
		M01: m.M00*o.M01 + m.M01*o.M11,
		M10: m.M10*o.M00 + m.M11*o.M10,
		M11: m.M10*o.M01 + m.M11*o.M11,
	}
}

// MulVec2 returns m * v.
func (m Mat2) MulVec2(v Vec2) Vec2 {
	return Vec2{
		X: m.M00*v.X + m.M01*v.Y,
		Y: m.M10*v.X + m.M11*v.Y,
	}
}

// MulScalar returns m scaled by s.
func (m Mat2) MulScalar(s float64) Mat2 {
	return Mat2{M00: m.M00 * s, M01: m.M01 * s, M10: m.M10 * s, M11: m.M11 * s}
}

// Det returns the determinant.
func (m Mat2) Det() float64 {
	return m.M00*m.M11 - m.M01*m.M10
}

// Inv returns the inverse. Callers must treat a singular (or near-singular, producing a
// non-finite result) input as failure; Inv does not itself error, per spec §4.H ("callers must
// treat singular inputs as failure").
func (m Mat2) Inv() Mat2 {
	d := m.Det()
	return Mat2{
		M00: m.M11 / d,
		M01: -m.M01 / d,
		M10: -m.M10 / d,
		M11: m.M00 / d,
	}
}

// IsFinite reports whether every element is finite.
func (m Mat2) IsFinite() bool {
	return isFiniteF(m.M00) && isFiniteF(m.M01) && isFiniteF(m.M10) && isFiniteF(m.M11)
}

// Col returns column num (0 or 1).
func (m Mat2) Col(num int) Vec2 {
	switch num {
	case 0:
		return Vec2{m.M00, m.M10}
	case 1:
		return Vec2{m.M01, m.M11}
	default:
		panic("matrix: bad column index")
	}
}

// Row returns row num (0 or 1).
func (m Mat2) Row(num int) Vec2 {
	switch num {
	case 0:
		return Vec2{m.M00, m.M01}
	case 1:
		return Vec2{m.M10, m.M11}
	default:
		panic("matrix: bad row index")
	}
}

// Elem returns the element at (x, y), x the column and y the row.
func (m Mat2) Elem(x, y int) float64 {
	return m.Row(y).elemAt(x)
}

func (v Vec2) elemAt(i int) float64 {
	if i == 0 {
		return v.X
	}
	return v.Y
}
