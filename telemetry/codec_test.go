package telemetry

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"corebot/matrix"
)

func TestCodecRoundTrip(t *testing.T) {
	Convey("Given frames of every type", t, func() {
		frames := []Frame{
			PositionFrame{Name: "robot", X: 1.5, Y: -2.25},
			VectorFrame{Name: "gyro", X: 1, Y: 2, Z: 3},
			TransformFrame{Name: "pose", Transform: matrix.FromTransform(matrix.FromAngle(0.5), matrix.Vec2{X: 1, Y: 2})},
			UpdatableObjectFrame{Name: "lift", Fields: map[string]float64{"height": 0.4}},
			LogFrame{Level: "info", Message: "tick"},
		}

		Convey("encoding then decoding recovers each frame", func() {
			for _, f := range frames {
				var buf bytes.Buffer
				So(NewEncoder(&buf).Encode(f), ShouldBeNil)

				got, err := NewDecoder(&buf).Decode()
				So(err, ShouldBeNil)
				So(got, ShouldResemble, f)
			}
		})

		Convey("an oversized string is truncated with a trailing sentinel", func() {
			long := strings.Repeat("x", 400)
			var buf bytes.Buffer
			So(NewEncoder(&buf).Encode(LogFrame{Level: "info", Message: long}), ShouldBeNil)

			got, err := NewDecoder(&buf).Decode()
			So(err, ShouldBeNil)
			lf := got.(LogFrame)
			So(len(lf.Message), ShouldEqual, 255)
		})

		Convey("a null/empty name round-trips as empty", func() {
			var buf bytes.Buffer
			So(NewEncoder(&buf).Encode(PositionFrame{Name: "", X: 0, Y: 0}), ShouldBeNil)

			got, err := NewDecoder(&buf).Decode()
			So(err, ShouldBeNil)
			So(got.(PositionFrame).Name, ShouldEqual, "")
		})
	})
}
