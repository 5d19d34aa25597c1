package localization

import (
	"math"

	"corebot/matrix"
)

// SqFalloff is the default LocalizationData: a probability field that falls off with the square
// of distance from a mean pose, per spec §3:
//
//	P(pos) = A / (‖pos − μ‖² · Kp + 1)
//	P(θ)   = A / ((θ − θ0)² · Kr + 1)
//
// Derivatives are forward finite-differences at Epsilon; Hessian rows are forward
// finite-differences of the first derivatives, per spec §4.F.
type SqFalloff struct {
	Epsilon float64
	Mu      matrix.Vec2
	Theta0  float64
	A       float64 // accuracy: peak height
	Kp      float64 // position precision
	Kr      float64 // rotation precision
}

// FromTransform builds a SqFalloff centered on transform's position and heading.
func FromTransform(transform matrix.Mat3, epsilon, a, kp, kr float64) SqFalloff {
	dir := transform.GetDirection()
	return SqFalloff{
		Epsilon: epsilon,
		Mu:      transform.GetTranslation(),
		Theta0:  angleOf(dir),
		A:       a,
		Kp:      kp,
		Kr:      kr,
	}
}

func angleOf(d matrix.Vec2) float64 {
	return math.Atan2(d.Y, d.X)
}

func (s SqFalloff) PPos(pos matrix.Vec2) float64 {
	diff := pos.Sub(s.Mu)
	return s.A / (diff.Dot(diff)*s.Kp + 1)
}

func (s SqFalloff) PRot(theta float64) float64 {
	d := theta - s.Theta0
	return s.A / (d*d*s.Kr + 1)
}

func (s SqFalloff) DPPosDX(pos matrix.Vec2) float64 {
	stepped := matrix.Vec2{X: pos.X + s.Epsilon, Y: pos.Y}
	return (s.PPos(stepped) - s.PPos(pos)) / s.Epsilon
}

func (s SqFalloff) DPPosDY(pos matrix.Vec2) float64 {
	stepped := matrix.Vec2{X: pos.X, Y: pos.Y + s.Epsilon}
	return (s.PPos(stepped) - s.PPos(pos)) / s.Epsilon
}

func (s SqFalloff) GradDPPosDX(pos matrix.Vec2) matrix.Vec2 {
	stepX := matrix.Vec2{X: pos.X + s.Epsilon, Y: pos.Y}
	stepY := matrix.Vec2{X: pos.X, Y: pos.Y + s.Epsilon}
	base := s.DPPosDX(pos)
	return matrix.Vec2{
		X: (s.DPPosDX(stepX) - base) / s.Epsilon,
		Y: (s.DPPosDX(stepY) - base) / s.Epsilon,
	}
}

func (s SqFalloff) GradDPPosDY(pos matrix.Vec2) matrix.Vec2 {
	stepX := matrix.Vec2{X: pos.X + s.Epsilon, Y: pos.Y}
	stepY := matrix.Vec2{X: pos.X, Y: pos.Y + s.Epsilon}
	base := s.DPPosDY(pos)
	return matrix.Vec2{
		X: (s.DPPosDY(stepX) - base) / s.Epsilon,
		Y: (s.DPPosDY(stepY) - base) / s.Epsilon,
	}
}

func (s SqFalloff) DPRotDTheta(theta float64) float64 {
	return (s.PRot(theta+s.Epsilon) - s.PRot(theta)) / s.Epsilon
}

func (s SqFalloff) D2PRotDTheta2(theta float64) float64 {
	base := s.DPRotDTheta(theta)
	return (s.DPRotDTheta(theta+s.Epsilon) - base) / s.Epsilon
}
