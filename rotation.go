package slrcore

import "math"

// Mat3 is a 3x3 matrix in row-major order: m[row*3+col], with plain
// value methods rather than a flat array plus a MatMul(tr string, ...)
// helper, the idiomatic Go shape for a fixed small matrix.
type Mat3 [9]float64

func (m Mat3) at(row, col int) float64 { return m[row*3+col] }

// MulVec3 returns m applied to v, i.e. m*v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	var r Vec3
	for row := 0; row < 3; row++ {
		r[row] = m.at(row, 0)*v[0] + m.at(row, 1)*v[1] + m.at(row, 2)*v[2]
	}
	return r
}

// MulVec3T returns m^T applied to v. The CPF interpolator uses this to
// rotate a geocentric vector into the station's local horizon frame
// (x north, y west, z up) with a
// matrix built to rotate the opposite way (l = t_tx . R with R
// applied on the right).
func (m Mat3) MulVec3T(v Vec3) Vec3 {
	var r Vec3
	for col := 0; col < 3; col++ {
		r[col] = m.at(0, col)*v[0] + m.at(1, col)*v[1] + m.at(2, col)*v[2]
	}
	return r
}

// Mul returns m * n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var r Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += m.at(row, k) * n.at(k, col)
			}
			r[row*3+col] = s
		}
	}
	return r
}

// RotationAxis selects a rotation generator: a small tagged variant
// rather than an inheritance hierarchy, so new generators stay
// additive and the dispatch inlineable.
type RotationAxis int

const (
	AxisX RotationAxis = 1
	AxisY RotationAxis = 2
	AxisZ RotationAxis = 3
)

// Rot returns the 3x3 right-handed rotation matrix about the given
// axis by angle radians, with the Rx/Ry/Rz generators collapsed
// behind one dispatch point.
func Rot(axis RotationAxis, angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	switch axis {
	case AxisX:
		return Mat3{
			1, 0, 0,
			0, c, -s,
			0, s, c,
		}
	case AxisY:
		return Mat3{
			c, 0, s,
			0, 1, 0,
			-s, 0, c,
		}
	case AxisZ:
		return Mat3{
			c, -s, 0,
			s, c, 0,
			0, 0, 1,
		}
	default:
		return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
	}
}
