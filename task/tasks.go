package task

import "corebot/matrix"

// Task is an opaque tagged value exchanged between layers. Concrete kinds carry immutable
// domain payload. Tasks are compared by identity (pointer equality), never payload, for
// completion tracking — see original_source/task/__init__.py and controller.py's isinstance
// checks on emitted/completed tasks.
type Task interface {
	Kind() Kind
}

// AxialMovement commands forward/backward travel of the given distance (meters; sign is
// direction). Widens to LinearMovement.
type AxialMovement struct {
	Distance float64
}

func (*AxialMovement) Kind() Kind { return KindAxialMovement }

// LinearMovement is the generalized "move along a line" task that AxialMovement and Turn widen
// to, per the widening table in kind.go.
type LinearMovement struct {
	Distance float64
	Angle    float64
}

func (*LinearMovement) Kind() Kind { return KindLinearMovement }

// Turn commands an in-place rotation by angle (radians). Widens to LinearMovement.
type Turn struct {
	Angle float64
}

func (*Turn) Kind() Kind { return KindTurn }

// TankDrive carries raw left/right drive power, typically sourced from teleop input.
type TankDrive struct {
	Left, Right float64
}

func (*TankDrive) Kind() Kind { return KindTankDrive }

// HolonomicDrive carries a field- or robot-relative drive vector plus independent rotation
// power, for mecanum/omni chassis.
type HolonomicDrive struct {
	X, Y, Rotation float64
}

func (*HolonomicDrive) Kind() Kind { return KindHolonomicDrive }

// MoveToField commands travel to an absolute field pose.
type MoveToField struct {
	GoalTransform matrix.Mat3
}

func (*MoveToField) Kind() Kind { return KindMoveToField }

// GamepadInput is a snapshot of a gamepad's analog and digital state for one tick.
type GamepadInput struct {
	LeftStickX, LeftStickY   float64
	RightStickX, RightStickY float64
	LeftTrigger, RightTrigger float64
	ButtonsDown              map[string]bool
}

func (*GamepadInput) Kind() Kind { return KindGamepadInput }

// KeyboardInput maps key name to held-down state for one tick.
type KeyboardInput struct {
	Down map[string]bool
}

func (*KeyboardInput) Kind() Kind { return KindKeyboardInput }

// Localization carries a fused pose estimate, emitted once per tick by a RobotLocalizer.
type Localization struct {
	Transform matrix.Mat3
}

func (*Localization) Kind() Kind { return KindLocalization }

// DistanceSensor carries a single range reading and the sensor's pose on the robot at the time
// of the reading.
type DistanceSensor struct {
	Distance   float64
	SensorPose matrix.Mat3
}

func (*DistanceSensor) Kind() Kind { return KindDistanceSensor }

// Lift commands a lift mechanism to a target height (meters, mechanism-relative).
type Lift struct {
	TargetHeight float64
}

func (*Lift) Kind() Kind { return KindLift }

// LiftTeleop carries raw teleop power for manual lift control. Widens to Lift.
type LiftTeleop struct {
	Power float64
}

func (*LiftTeleop) Kind() Kind { return KindLiftTeleop }

// Tower commands a tower/turret mechanism to a target angle (radians).
type Tower struct {
	TargetAngle float64
}

func (*Tower) Kind() Kind { return KindTower }

// TowerTeleop carries raw teleop power for manual tower control. Widens to Tower.
type TowerTeleop struct {
	Power float64
}

func (*TowerTeleop) Kind() Kind { return KindTowerTeleop }

// Win is the terminal task that seeds autonomous programs: a WinLayer source emits one and
// waits for acknowledgment.
type Win struct{}

func (*Win) Kind() Kind { return KindWin }
