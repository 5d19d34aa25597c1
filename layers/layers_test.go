package layers

import (
	"testing"

	"github.com/rs/zerolog"
	. "github.com/smartystreets/goconvey/convey"

	"corebot/hardware"
	"corebot/input"
	"corebot/layer"
	"corebot/matrix"
	"corebot/task"
)

type fakeProxy struct {
	devices map[hardware.DeviceKind]map[string]hardware.Device
}

func newFakeProxy() *fakeProxy {
	return &fakeProxy{devices: make(map[hardware.DeviceKind]map[string]hardware.Device)}
}

func (p *fakeProxy) add(kind hardware.DeviceKind, name string) {
	if p.devices[kind] == nil {
		p.devices[kind] = make(map[string]hardware.Device)
	}
	p.devices[kind][name] = fakeDevice{kind: kind, name: name}
}

func (p *fakeProxy) GetDevice(kind hardware.DeviceKind, name string) (hardware.Device, error) {
	if d, ok := p.devices[kind][name]; ok {
		return d, nil
	}
	return nil, &hardware.ErrDeviceNotFound{Kind: kind, Name: name}
}

type fakeDevice struct {
	kind hardware.DeviceKind
	name string
}

func (d fakeDevice) Name() string              { return d.name }
func (d fakeDevice) Kind() hardware.DeviceKind { return d.kind }

func setupCtx(proxy hardware.Proxy) *layer.SetupContext {
	return layer.NewSetupContext(proxy, nil, nil, zerolog.Nop(), func(func()) {}, func(func()) {})
}

func setupCtxWithGamepads(proxy hardware.Proxy, gamepad0, gamepad1 input.Device) *layer.SetupContext {
	return layer.NewSetupContext(proxy, gamepad0, gamepad1, zerolog.Nop(), func(func()) {}, func(func()) {})
}

func TestDriveLayerMecanumMixing(t *testing.T) {
	Convey("Given a DriveLayer set up with four motors", t, func() {
		proxy := newFakeProxy()
		proxy.add(hardware.KindMotor, "front_left")
		proxy.add(hardware.KindMotor, "front_right")
		proxy.add(hardware.KindMotor, "back_left")
		proxy.add(hardware.KindMotor, "back_right")

		powers := map[string]float64{}
		l := NewDriveLayer(func(d hardware.Device, power float64) { powers[d.Name()] = power })
		So(l.Setup(setupCtx(proxy)), ShouldBeNil)

		Convey("a pure forward HolonomicDrive drives all four wheels equally", func() {
			So(l.AcceptTask(&task.HolonomicDrive{X: 0, Y: 1, Rotation: 0}), ShouldBeNil)
			l.Process(layer.NewProcessContext())

			So(powers["front_left"], ShouldEqual, 1)
			So(powers["front_right"], ShouldEqual, 1)
			So(powers["back_left"], ShouldEqual, 1)
			So(powers["back_right"], ShouldEqual, 1)
		})

		Convey("a pure strafe HolonomicDrive drives diagonal pairs oppositely", func() {
			So(l.AcceptTask(&task.HolonomicDrive{X: 1, Y: 0, Rotation: 0}), ShouldBeNil)
			l.Process(layer.NewProcessContext())

			So(powers["front_left"], ShouldEqual, 1)
			So(powers["back_right"], ShouldEqual, 1)
			So(powers["front_right"], ShouldEqual, -1)
			So(powers["back_left"], ShouldEqual, -1)
		})

		Convey("a TankDrive command drives left/right wheel pairs directly", func() {
			So(l.AcceptTask(&task.TankDrive{Left: 0.5, Right: -0.5}), ShouldBeNil)
			l.Process(layer.NewProcessContext())

			So(powers["front_left"], ShouldEqual, 0.5)
			So(powers["back_left"], ShouldEqual, 0.5)
			So(powers["front_right"], ShouldEqual, -0.5)
			So(powers["back_right"], ShouldEqual, -0.5)
		})

		Convey("processing completes and re-requests immediately (a drive command is instantaneous)", func() {
			So(l.AcceptTask(&task.TankDrive{}), ShouldBeNil)
			ctx := layer.NewProcessContext()
			l.Process(ctx)
			So(ctx.Completed(), ShouldHaveLength, 1)
			So(ctx.Escalated(), ShouldBeTrue)
		})

		Convey("InputTasks accepts AxialMovement and Turn via LinearMovement widening", func() {
			So(l.InputTasks().Accepts(task.KindAxialMovement), ShouldBeTrue)
			So(l.InputTasks().Accepts(task.KindTurn), ShouldBeTrue)
			So(l.InputTasks().Accepts(task.KindLinearMovement), ShouldBeTrue)
		})

		Convey("an AxialMovement drives straight, clamped to drive power range", func() {
			So(l.AcceptTask(&task.AxialMovement{Distance: 5}), ShouldBeNil)
			l.Process(layer.NewProcessContext())

			So(powers["front_left"], ShouldEqual, 1)
			So(powers["front_right"], ShouldEqual, 1)
			So(powers["back_left"], ShouldEqual, 1)
			So(powers["back_right"], ShouldEqual, 1)
		})

		Convey("a Turn rotates in place", func() {
			So(l.AcceptTask(&task.Turn{Angle: -0.5}), ShouldBeNil)
			l.Process(layer.NewProcessContext())

			So(powers["front_left"], ShouldEqual, -0.5)
			So(powers["back_left"], ShouldEqual, -0.5)
			So(powers["front_right"], ShouldEqual, 0.5)
			So(powers["back_right"], ShouldEqual, 0.5)
		})

		Convey("a LinearMovement combines distance and angle", func() {
			So(l.AcceptTask(&task.LinearMovement{Distance: 0.5, Angle: 0.25}), ShouldBeNil)
			l.Process(layer.NewProcessContext())

			So(powers["front_left"], ShouldEqual, 0.75)
			So(powers["back_left"], ShouldEqual, 0.75)
			So(powers["front_right"], ShouldEqual, 0.25)
			So(powers["back_right"], ShouldEqual, 0.25)
		})
	})
}

func TestPeripheralLayer(t *testing.T) {
	Convey("Given a PeripheralLayer set up with a lift motor and a tower servo", t, func() {
		proxy := newFakeProxy()
		proxy.add(hardware.KindMotor, "lift")
		proxy.add(hardware.KindServo, "tower")

		motorPower, servoAngle := 0.0, 0.0
		l := NewPeripheralLayer(
			func(d hardware.Device, v float64) { motorPower = v },
			func(d hardware.Device, v float64) { servoAngle = v },
		)
		So(l.Setup(setupCtx(proxy)), ShouldBeNil)

		Convey("a Lift task drives the lift motor to the target height", func() {
			So(l.AcceptTask(&task.Lift{TargetHeight: 0.75}), ShouldBeNil)
			l.Process(layer.NewProcessContext())
			So(motorPower, ShouldEqual, 0.75)
		})

		Convey("a Tower task drives the tower servo to the target angle", func() {
			So(l.AcceptTask(&task.Tower{TargetAngle: 1.2}), ShouldBeNil)
			l.Process(layer.NewProcessContext())
			So(servoAngle, ShouldEqual, 1.2)
		})
	})
}

func TestInputMappingLayer(t *testing.T) {
	Convey("Given an input mapping layer", t, func() {
		l := NewInputMappingLayer()

		Convey("a GamepadInput maps to a HolonomicDrive from the sticks", func() {
			So(l.AcceptTask(&task.GamepadInput{LeftStickX: 0.2, LeftStickY: -0.3, RightStickX: 0.4}), ShouldBeNil)

			ctx := layer.NewProcessContext()
			l.Process(ctx)
			out := ctx.Subtasks()[0].(*task.HolonomicDrive)
			So(out.X, ShouldEqual, 0.2)
			So(out.Y, ShouldEqual, -0.3)
			So(out.Rotation, ShouldEqual, 0.4)
		})
	})
}

func TestGamepadSourceLayer(t *testing.T) {
	Convey("Given a GamepadSourceLayer reading gamepad 0", t, func() {
		snap := input.GamepadSnapshot{LeftStickX: 0.1, LeftStickY: 0.2, RightStickX: 0.3}
		gamepad0 := input.Gamepad{Read: func() input.GamepadSnapshot { return snap }}
		l := NewGamepadSourceLayer(0)
		So(l.Setup(setupCtxWithGamepads(newFakeProxy(), gamepad0, nil)), ShouldBeNil)

		Convey("InputTasks is empty; it has no parents", func() {
			So(l.InputTasks(), ShouldResemble, task.NewSet())
		})

		Convey("it rejects any accepted task", func() {
			So(l.AcceptTask(&task.Win{}), ShouldEqual, layer.ErrUnsupportedTask)
		})

		Convey("the first process emits the current gamepad snapshot", func() {
			ctx := layer.NewProcessContext()
			l.Process(ctx)
			So(ctx.Subtasks(), ShouldHaveLength, 1)
			out := ctx.Subtasks()[0].(*task.GamepadInput)
			So(out.LeftStickX, ShouldEqual, 0.1)
			So(out.LeftStickY, ShouldEqual, 0.2)
			So(out.RightStickX, ShouldEqual, 0.3)

			Convey("a second process without acknowledgment is silent", func() {
				ctx2 := layer.NewProcessContext()
				l.Process(ctx2)
				So(ctx2.Subtasks(), ShouldHaveLength, 0)
			})

			Convey("once acknowledged, the next process samples a fresh snapshot", func() {
				So(l.SubtaskCompleted(ctx.Subtasks()[0]), ShouldBeNil)
				snap.LeftStickX = 0.9

				ctx2 := layer.NewProcessContext()
				l.Process(ctx2)
				So(ctx2.Subtasks(), ShouldHaveLength, 1)
				So(ctx2.Subtasks()[0].(*task.GamepadInput).LeftStickX, ShouldEqual, 0.9)
			})
		})
	})
}

func TestStrategySequence(t *testing.T) {
	Convey("Given a strategy with two waypoints", t, func() {
		waypoints := []Waypoint{
			{Goal: matrix.FromTransform(matrix.Identity2, matrix.Vec2{X: 1, Y: 0}), LiftHeight: 0.1},
			{Goal: matrix.FromTransform(matrix.Identity2, matrix.Vec2{X: 2, Y: 0}), LiftHeight: 0.2},
		}
		l := NewStrategySequence(waypoints)

		Convey("accepting a Win expands to four subtasks in waypoint order", func() {
			So(l.AcceptTask(&task.Win{}), ShouldBeNil)

			var kinds []task.Kind
			for i := 0; i < 4; i++ {
				ctx := layer.NewProcessContext()
				l.Process(ctx)
				kinds = append(kinds, ctx.Subtasks()[0].Kind())
				So(l.SubtaskCompleted(ctx.Subtasks()[0]), ShouldBeNil)
			}
			So(kinds, ShouldResemble, []task.Kind{
				task.KindMoveToField, task.KindLift, task.KindMoveToField, task.KindLift,
			})
		})
	})
}

func TestPathfindLayer(t *testing.T) {
	Convey("Given a pathfind layer reporting the robot at the origin", t, func() {
		l := NewPathfindLayer(func() (float64, float64) { return 0, 0 })

		Convey("a goal far to the northeast clamps to a unit diagonal drive", func() {
			goal := matrix.FromTransform(matrix.Identity2, matrix.Vec2{X: 50, Y: 50})
			So(l.AcceptTask(&task.MoveToField{GoalTransform: goal}), ShouldBeNil)

			ctx := layer.NewProcessContext()
			l.Process(ctx)
			out := ctx.Subtasks()[0].(*task.HolonomicDrive)
			So(out.X, ShouldEqual, 1)
			So(out.Y, ShouldEqual, 1)
		})
	})
}
