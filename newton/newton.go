// Package newton implements the fused-maximum solver: independent gradient-ascent searches over
// summed position and rotation probability density, each restarted from multiple roots with
// nudge-on-revisit to avoid collapsing onto one basin, combined into a single Mat3 transform.
// Grounded on spec.md §4.G; original_source has no equivalent module (the reference
// implementation's Newton solver was not among the retrieved files), so the tunable defaults and
// step structure below follow spec.md's prose description directly.
package newton

import (
	"errors"
	"math"
	"math/rand"

	"corebot/localization"
	"corebot/matrix"
)

// ErrSolverFailure is returned by Solve when the resolved position or rotation is non-finite
// (NaN/Inf), per spec §3/§7: a gradient step escaped to infinity or a source field produced NaN.
var ErrSolverFailure = errors.New("newton: solver produced a non-finite result")

// ErrSingular is returned by Solve when every candidate maximum carries zero density: the summed
// field is flat everywhere sampled, so no position/rotation is distinguishable as a best fit.
var ErrSingular = errors.New("newton: probability field is singular (no distinguishable maximum)")

// Tunables parameterizes the solver. Only the basin-convergence property in spec §8 is
// normative; these defaults are the "typically" values spec §4.G names.
type Tunables struct {
	Roots int `yaml:"roots"` // restarts per axis, typically 4

	Steps           int     `yaml:"steps"` // iterations per root, typically 40-1280
	StepSize        float64 `yaml:"stepSize"`
	FlatThreshold   float64 `yaml:"flatThreshold"`
	MinImprovement  float64 `yaml:"minImprovement"`
	SpeedDamping    float64 `yaml:"speedDamping"`
	MinSpeed        float64 `yaml:"minSpeed"`
	RootEpsilon     float64 `yaml:"rootEpsilon"`
	DisturbanceSize float64 `yaml:"disturbanceSize"`

	RotSteps           int     `yaml:"rotSteps"`
	RotStepSize        float64 `yaml:"rotStepSize"`
	RotFlatThreshold   float64 `yaml:"rotFlatThreshold"`
	RotMinImprovement  float64 `yaml:"rotMinImprovement"`
	RotSpeedDamping    float64 `yaml:"rotSpeedDamping"`
	RotMinSpeed        float64 `yaml:"rotMinSpeed"`
	RotRootEpsilon     float64 `yaml:"rotRootEpsilon"`
	RotDisturbanceSize float64 `yaml:"rotDisturbanceSize"`
}

// DefaultTunables returns spec.md §4.G's named defaults.
func DefaultTunables() Tunables {
	return Tunables{
		Roots: 4,

		Steps:           1280,
		StepSize:        0.05,
		FlatThreshold:   1e-4,
		MinImprovement:  1e-6,
		SpeedDamping:    0.5,
		MinSpeed:        1e-3,
		RootEpsilon:     0.05,
		DisturbanceSize: 0.3,

		RotSteps:           320,
		RotStepSize:        0.05,
		RotFlatThreshold:   1e-4,
		RotMinImprovement:  1e-6,
		RotSpeedDamping:    0.5,
		RotMinSpeed:        1e-3,
		RotRootEpsilon:     0.02,
		RotDisturbanceSize: 0.2,
	}
}

// Solver is the localization.Solver implementation: a gradient-ascent multi-maxima search over
// the sources' summed probability fields.
type Solver struct {
	tunables Tunables
	rng      *rand.Rand
}

// New builds a Solver with a seeded RNG, per spec §4.G ("determinism requires a seeded RNG under
// test").
func New(seed int64, tunables Tunables) *Solver {
	return &Solver{tunables: tunables, rng: rand.New(rand.NewSource(seed))}
}

// Solve finds (x*, y*, θ*) independently and combines them into a transform. With no registered
// sources the result is implementation-defined; identity is returned, per spec §4.G. A non-finite
// result (a gradient step that escaped to infinity, or a source field producing NaN) is reported
// as ErrSolverFailure; a field carrying zero density at every sampled maximum is reported as
// ErrSingular. Both are recovered by the caller (localization.RobotLocalizer), which falls back to
// its last good transform.
func (s *Solver) Solve(sources []localization.LocalizationData) (matrix.Mat3, error) {
	if len(sources) == 0 {
		return matrix.Identity3, nil
	}
	pos, posDensity := s.solvePosition(sources)
	theta, rotDensity := s.solveRotation(sources)

	if !pos.IsFinite() || !isFiniteF(theta) {
		return matrix.Mat3{}, ErrSolverFailure
	}
	if posDensity <= 0 && rotDensity <= 0 {
		return matrix.Mat3{}, ErrSingular
	}

	t := matrix.FromTransform(matrix.FromAngle(theta), pos)
	return t, nil
}

func isFiniteF(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func sumPPos(sources []localization.LocalizationData, p matrix.Vec2) float64 {
	var total float64
	for _, src := range sources {
		total += src.PPos(p)
	}
	return total
}

func sumGradPos(sources []localization.LocalizationData, p matrix.Vec2) matrix.Vec2 {
	var g matrix.Vec2
	for _, src := range sources {
		g.X += src.DPPosDX(p)
		g.Y += src.DPPosDY(p)
	}
	return g
}

func sumPRot(sources []localization.LocalizationData, theta float64) float64 {
	var total float64
	for _, src := range sources {
		total += src.PRot(theta)
	}
	return total
}

func sumDPRot(sources []localization.LocalizationData, theta float64) float64 {
	var total float64
	for _, src := range sources {
		total += src.DPRotDTheta(theta)
	}
	return total
}

func (s *Solver) randomUnit2() matrix.Vec2 {
	theta := s.rng.Float64() * 2 * math.Pi
	return matrix.Vec2{X: math.Cos(theta), Y: math.Sin(theta)}
}

func (s *Solver) randomSign() float64 {
	if s.rng.Float64() < 0.5 {
		return -1
	}
	return 1
}

func (s *Solver) solvePosition(sources []localization.LocalizationData) (matrix.Vec2, float64) {
	t := s.tunables
	var maxima []matrix.Vec2
	var hits []int

	for root := 0; root < t.Roots; root++ {
		point := matrix.Vec2{}
		speed := 1.0
		p0 := sumPPos(sources, point)

		for step := 0; step < t.Steps; step++ {
			g := sumGradPos(sources, point)
			if g.Len() > t.FlatThreshold {
				delta := g.Mul(speed * t.StepSize)
				p1 := sumPPos(sources, point.Add(delta))
				if p1-p0 < t.MinImprovement {
					speed *= t.SpeedDamping
					if speed < t.MinSpeed {
						break
					}
					continue
				}
				p0 = p1
				point = point.Add(delta)
				continue
			}

			near := -1
			for i, m := range maxima {
				if point.Sub(m).Len() < t.RootEpsilon {
					near = i
					break
				}
			}
			if near < 0 {
				break
			}
			hits[near]++
			nudge := s.randomUnit2().Mul(float64(hits[near]) * t.DisturbanceSize)
			point = point.Add(nudge)
			p0 = sumPPos(sources, point)
		}

		maxima = append(maxima, point)
		hits = append(hits, 0)
	}

	best := maxima[0]
	bestP := sumPPos(sources, best)
	for _, m := range maxima[1:] {
		if p := sumPPos(sources, m); p > bestP {
			best, bestP = m, p
		}
	}
	return best, bestP
}

func (s *Solver) solveRotation(sources []localization.LocalizationData) (float64, float64) {
	t := s.tunables
	var maxima []float64
	var hits []int

	for root := 0; root < t.Roots; root++ {
		theta := 0.0
		speed := 1.0
		p0 := sumPRot(sources, theta)

		for step := 0; step < t.RotSteps; step++ {
			g := sumDPRot(sources, theta)
			if math.Abs(g) > t.RotFlatThreshold {
				delta := g * speed * t.RotStepSize
				p1 := sumPRot(sources, theta+delta)
				if p1-p0 < t.RotMinImprovement {
					speed *= t.RotSpeedDamping
					if speed < t.RotMinSpeed {
						break
					}
					continue
				}
				p0 = p1
				theta += delta
				continue
			}

			near := -1
			for i, m := range maxima {
				if math.Abs(theta-m) < t.RotRootEpsilon {
					near = i
					break
				}
			}
			if near < 0 {
				break
			}
			hits[near]++
			theta += s.randomSign() * float64(hits[near]) * t.RotDisturbanceSize
			p0 = sumPRot(sources, theta)
		}

		maxima = append(maxima, theta)
		hits = append(hits, 0)
	}

	best := maxima[0]
	bestP := sumPRot(sources, best)
	for _, m := range maxima[1:] {
		if p := sumPRot(sources, m); p > bestP {
			best, bestP = m, p
		}
	}
	return best, bestP
}
