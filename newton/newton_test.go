package newton

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"corebot/localization"
	"corebot/matrix"
)

func TestSolverConvergesOnSingleSource(t *testing.T) {
	Convey("Given a single SqFalloff source centered at a known transform", t, func() {
		rot := matrix.FromAngle(2.0)
		pos := matrix.Vec2{X: 2, Y: -2.047}
		centered := matrix.FromTransform(rot, pos)

		source := localization.FromTransform(centered, 1e-4, 1.0, 4.0, 4.0)
		solver := New(0, DefaultTunables())

		Convey("the solver resolves within the basin-convergence tolerance", func() {
			result, err := solver.Solve([]localization.LocalizationData{source})
			So(err, ShouldBeNil)

			dt := result.GetTranslation().Sub(pos).Len()
			dTheta := math.Abs(angleDiff(angleOfDirection(result.GetDirection()), 2.0))

			So(dt < 0.02, ShouldBeTrue)
			So(dTheta < 0.02, ShouldBeTrue)
		})
	})
}

func TestSolverWithNoSources(t *testing.T) {
	Convey("Given no sources", t, func() {
		solver := New(1, DefaultTunables())

		Convey("Solve returns identity", func() {
			result, err := solver.Solve(nil)
			So(err, ShouldBeNil)
			So(result, ShouldResemble, matrix.Identity3)
		})
	})
}

func angleOfDirection(d matrix.Vec2) float64 {
	return math.Atan2(d.Y, d.X)
}

func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b+math.Pi, 2*math.Pi) - math.Pi
	if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
