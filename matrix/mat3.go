package matrix

// Mat3 is a 3x3 homogeneous matrix, row-major, used as a 2D rigid-body Transform:
// [[R, t], [0, 0, 1]].
type Mat3 struct {
	M00, M01, M02 float64
	M10, M11, M12 float64
	M20, M21, M22 float64
}

// Identity3 is the identity transform.
var Identity3 = Mat3{
	M00: 1, M01: 0, M02: 0,
	M10: 0, M11: 1, M12: 0,
	M20: 0, M21: 0, M22: 1,
}

// FromTransform builds Mat3 = [[R, t], [0 0 1]], per spec §4.H.
func FromTransform(rot Mat2, pos Vec2) Mat3 {
	return Mat3{
		M00: rot.Elem(0, 0), M01: rot.Elem(1, 0), M02: pos.X,
		M10: rot.Elem(0, 1), M11: rot.Elem(1, 1), M12: pos.Y,
		M20: 0, M21: 0, M22: 1,
	}
}

// Row returns row num (0, 1, or 2) as a Vec3.
func (m Mat3) Row(num int) Vec3 {
	switch num {
	case 0:
		return Vec3{m.M00, m.M01, m.M02}
	case 1:
		return Vec3{m.M10, m.M11, m.M12}
	case 2:
		return Vec3{m.M20, m.M21, m.M22}
	default:
		panic("matrix: bad row index")
	}
}

// Col returns column num (0, 1, or 2) as a Vec3.
func (m Mat3) Col(num int) Vec3 {
	switch num {
	case 0:
		return Vec3{m.M00, m.M10, m.M20}
	case 1:
		return Vec3{m.M01, m.M11, m.M21}
	case 2:
		return Vec3{m.M02, m.M12, m.M22}
	default:
		panic("matrix: bad column index")
	}
}

// MulMat3 returns the matrix product m * o.
func (m Mat3) MulMat3(o Mat3) Mat3 {
	return Mat3{
		M00: m.Row(0).Dot(o.Col(0)), M01: m.Row(0).Dot(o.Col(1)), M02: m.Row(0).Dot(o.Col(2)),
		M10: m.Row(1).Dot(o.Col(0)), M11: m.Row(1).Dot(o.Col(1)), M12: m.Row(1).Dot(o.Col(2)),
		M20: m.Row(2).Dot(o.Col(0)), M21: m.Row(2).Dot(o.Col(1)), M22: m.Row(2).Dot(o.Col(2)),
	}
}

// MulVec3 returns m * v, the vector of matching dimension (spec §4.H).
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: m.Row(0).Dot(v),
		Y: m.Row(1).Dot(v),
		Z: m.Row(2).Dot(v),
	}
}

// MulScalar returns m scaled by s.
func (m Mat3) MulScalar(s float64) Mat3 {
	return Mat3{
		M00: m.M00 * s, M01: m.M01 * s, M02: m.M02 * s,
		M10: m.M10 * s, M11: m.M11 * s, M12: m.M12 * s,
		M20: m.M20 * s, M21: m.M21 * s, M22: m.M22 * s,
	}
}

// ApplyToPoint transforms the 2D point p by m, applying both rotation and translation
// (homogeneous z=1).
func (m Mat3) ApplyToPoint(p Vec2) Vec2 {
	r := m.MulVec3(Vec3{p.X, p.Y, 1})
	return Vec2{r.X, r.Y}
}

// ApplyToDirection rotates the 2D direction d by m's rotation part only (homogeneous z=0).
func (m Mat3) ApplyToDirection(d Vec2) Vec2 {
	r := m.MulVec3(Vec3{d.X, d.Y, 0})
	return Vec2{r.X, r.Y}
}

// GetTranslation returns the top-right 2-vector (the transform's position).
func (m Mat3) GetTranslation() Vec2 {
	return Vec2{m.M02, m.M12}
}

// GetRotation returns the top-left 2x2 rotation block.
func (m Mat3) GetRotation() Mat2 {
	return Mat2{M00: m.M00, M01: m.M01, M10: m.M10, M11: m.M11}
}

// GetDirection returns the rotation applied to (1, 0), per spec §4.H.
func (m Mat3) GetDirection() Vec2 {
	return m.GetRotation().MulVec2(Vec2{1, 0})
}

// Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		M00: m.M00, M01: m.M10, M02: m.M20,
		M10: m.M01, M11: m.M11, M12: m.M21,
		M20: m.M02, M21: m.M12, M22: m.M22,
	}
}

// Det returns the determinant, via cofactor expansion along the first row.
func (m Mat3) Det() float64 {
	return m.M00*m.M11*m.M22 + m.M01*m.M12*m.M20 + m.M02*m.M10*m.M21 -
		m.M02*m.M11*m.M20 - m.M00*m.M12*m.M21 - m.M01*m.M10*m.M22
}

// minor returns the 2x2 matrix formed by deleting row and column from m.
func (m Mat3) minor(col, row int) Mat2 {
	cols := [3][3]float64{
		{m.M00, m.M01, m.M02},
		{m.M10, m.M11, m.M12},
		{m.M20, m.M21, m.M22},
	}
	var vals [4]float64
	idx := 0
	for r := 0; r < 3; r++ {
		if r == row {
			continue
		}
		for c := 0; c < 3; c++ {
			if c == col {
				continue
			}
			vals[idx] = cols[r][c]
			idx++
		}
	}
	return Mat2{M00: vals[0], M01: vals[1], M10: vals[2], M11: vals[3]}
}

// Cofactor returns the cofactor matrix of m, per original_source/matrix/Mat3.py's cofactor().
func (m Mat3) Cofactor() Mat3 {
	return Mat3{
		M00: m.minor(0, 0).Det(), M01: -m.minor(1, 0).Det(), M02: m.minor(2, 0).Det(),
		M10: -m.minor(0, 1).Det(), M11: m.minor(1, 1).Det(), M12: -m.minor(2, 1).Det(),
		M20: m.minor(0, 2).Det(), M21: -m.minor(1, 2).Det(), M22: m.minor(2, 2).Det(),
	}
}

// Inv returns the inverse via cofactor/transpose/determinant. Callers must treat a singular
// input (det == 0, yielding a non-finite result) as failure; Inv does not itself error.
func (m Mat3) Inv() Mat3 {
	return m.Cofactor().Transpose().MulScalar(1 / m.Det())
}

// IsFinite reports whether every element is finite.
func (m Mat3) IsFinite() bool {
	return isFiniteF(m.M00) && isFiniteF(m.M01) && isFiniteF(m.M02) &&
		isFiniteF(m.M10) && isFiniteF(m.M11) && isFiniteF(m.M12) &&
		isFiniteF(m.M20) && isFiniteF(m.M21) && isFiniteF(m.M22)
}
