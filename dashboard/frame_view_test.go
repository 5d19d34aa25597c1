package dashboard

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"corebot/matrix"
	"corebot/telemetry"
)

func TestFrameToJSON(t *testing.T) {
	Convey("Given frames of every kind", t, func() {
		Convey("a PositionFrame becomes a position view", func() {
			v := frameToJSON(telemetry.PositionFrame{Name: "p", X: 1, Y: 2})
			So(v, ShouldResemble, frameView{Kind: "position", Name: "p", X: 1, Y: 2})
		})

		Convey("a VectorFrame becomes a vector view", func() {
			v := frameToJSON(telemetry.VectorFrame{Name: "v", X: 1, Y: 2, Z: 3})
			So(v, ShouldResemble, frameView{Kind: "vector", Name: "v", X: 1, Y: 2, Z: 3})
		})

		Convey("a TransformFrame becomes a transform view using the translation component", func() {
			transform := matrix.FromTransform(matrix.Identity2, matrix.Vec2{X: 5, Y: -1})
			v := frameToJSON(telemetry.TransformFrame{Name: "pose", Transform: transform})
			So(v, ShouldResemble, frameView{Kind: "transform", Name: "pose", X: 5, Y: -1})
		})

		Convey("an UpdatableObjectFrame becomes an object view carrying its fields", func() {
			fields := map[string]float64{"battery": 12.4}
			v := frameToJSON(telemetry.UpdatableObjectFrame{Name: "robot", Fields: fields})
			So(v, ShouldResemble, frameView{Kind: "object", Name: "robot", Fields: fields})
		})

		Convey("a LogFrame becomes a log view", func() {
			v := frameToJSON(telemetry.LogFrame{Level: "warn", Message: "low battery"})
			So(v, ShouldResemble, frameView{Kind: "log", Level: "warn", Message: "low battery"})
		})
	})
}
