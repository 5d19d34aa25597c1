// Package layers holds illustrative domain layers: concrete Layer implementations for chassis
// drive, peripheral actuation, input mapping, and autonomous strategy sequencing. Per spec.md
// §1, their internal mechanics are illustrative, not normative — only the Layer contract they
// implement is. Grounded on original_source/layer/{drive,peripheral,mapping,strategy}.py.
package layers

import (
	"corebot/hardware"
	"corebot/layer"
	"corebot/task"
)

// DriveLayer is a sink layer that drives a holonomic chassis from HolonomicDrive tasks, applying
// each one to the configured drive motors and completing it immediately (the chassis has no
// notion of a multi-tick drive command). Grounded on original_source/layer/drive.py.
type DriveLayer struct {
	motorFL, motorFR, motorBL, motorBR hardware.Device
	setMotor                           func(hardware.Device, float64)

	pending task.Task
}

// NewDriveLayer builds a DriveLayer; setMotor applies a -1..1 power to a motor device (the
// hardware.Proxy's Set_value("velocity") channel in spec §6 terms).
func NewDriveLayer(setMotor func(hardware.Device, float64)) *DriveLayer {
	return &DriveLayer{setMotor: setMotor}
}

func (l *DriveLayer) InputTasks() task.Set {
	return task.NewSet(task.KindHolonomicDrive, task.KindTankDrive, task.KindLinearMovement)
}
func (l *DriveLayer) OutputTasks() task.Set { return task.NewSet() }

func (l *DriveLayer) Setup(ctx *layer.SetupContext) error {
	fl, err := ctx.GetDevice(hardware.KindMotor, "front_left")
	if err != nil {
		return err
	}
	fr, err := ctx.GetDevice(hardware.KindMotor, "front_right")
	if err != nil {
		return err
	}
	bl, err := ctx.GetDevice(hardware.KindMotor, "back_left")
	if err != nil {
		return err
	}
	br, err := ctx.GetDevice(hardware.KindMotor, "back_right")
	if err != nil {
		return err
	}
	l.motorFL, l.motorFR, l.motorBL, l.motorBR = fl, fr, bl, br
	return nil
}

func (l *DriveLayer) AcceptTask(t task.Task) error {
	l.pending = t
	return nil
}

func (l *DriveLayer) Process(ctx *layer.ProcessContext) {
	if l.pending == nil {
		ctx.RequestTask()
		return
	}
	switch t := l.pending.(type) {
	case *task.HolonomicDrive:
		l.applyHolonomic(t.X, t.Y, t.Rotation)
	case *task.TankDrive:
		l.setMotor(l.motorFL, t.Left)
		l.setMotor(l.motorBL, t.Left)
		l.setMotor(l.motorFR, t.Right)
		l.setMotor(l.motorBR, t.Right)
	case *task.AxialMovement:
		l.applyHolonomic(0, clampPower(t.Distance), 0)
	case *task.Turn:
		l.applyHolonomic(0, 0, clampPower(t.Angle))
	case *task.LinearMovement:
		l.applyHolonomic(0, clampPower(t.Distance), clampPower(t.Angle))
	}
	ctx.CompleteTask(l.pending)
	l.pending = nil
	ctx.RequestTask()
}

// applyHolonomic mixes field-relative x/y/rotation into four mecanum wheel powers.
func (l *DriveLayer) applyHolonomic(x, y, rot float64) {
	l.setMotor(l.motorFL, y+x+rot)
	l.setMotor(l.motorBL, y-x+rot)
	l.setMotor(l.motorFR, y-x-rot)
	l.setMotor(l.motorBR, y+x-rot)
}

func (l *DriveLayer) SubtaskCompleted(t task.Task) error {
	return layer.ErrMisuse
}

// clampPower restricts a raw distance/angle magnitude to the -1..1 drive power range, since
// AxialMovement/Turn/LinearMovement carry physical units but DriveLayer has no multi-tick notion
// of distance traveled: it treats them as a single tick's worth of commanded power.
func clampPower(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
