package input

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGamepadSnapshot(t *testing.T) {
	Convey("Given a Gamepad wrapping a fixed snapshot", t, func() {
		want := GamepadSnapshot{LeftStickX: 0.5, ButtonsDown: map[string]bool{"a": true}}
		g := Gamepad{Read: func() GamepadSnapshot { return want }}

		Convey("Snapshot returns that reading, type-assertable back to GamepadSnapshot", func() {
			var d Device = g
			got, ok := d.Snapshot().(GamepadSnapshot)
			So(ok, ShouldBeTrue)
			So(got, ShouldResemble, want)
		})
	})
}

func TestKeyboardSnapshot(t *testing.T) {
	Convey("Given a Keyboard wrapping a fixed snapshot", t, func() {
		want := KeyboardSnapshot{Down: map[string]bool{"space": true}}
		k := Keyboard{Read: func() KeyboardSnapshot { return want }}

		Convey("Snapshot returns that reading, type-assertable back to KeyboardSnapshot", func() {
			var d Device = k
			got, ok := d.Snapshot().(KeyboardSnapshot)
			So(ok, ShouldBeTrue)
			So(got, ShouldResemble, want)
		})
	})
}
