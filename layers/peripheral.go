package layers

import (
	"corebot/hardware"
	"corebot/layer"
	"corebot/task"
)

// PeripheralLayer is a sink layer that drives a lift and a tower mechanism from Lift/LiftTeleop
// and Tower/TowerTeleop tasks, each applied to its servo/motor channel and completed
// immediately. Grounded on original_source/layer/peripheral.py.
type PeripheralLayer struct {
	liftMotor  hardware.Device
	towerServo hardware.Device
	setMotor   func(hardware.Device, float64)
	setServo   func(hardware.Device, float64)

	pending task.Task
}

// NewPeripheralLayer builds a PeripheralLayer.
func NewPeripheralLayer(setMotor, setServo func(hardware.Device, float64)) *PeripheralLayer {
	return &PeripheralLayer{setMotor: setMotor, setServo: setServo}
}

func (l *PeripheralLayer) InputTasks() task.Set {
	return task.NewSet(task.KindLift, task.KindTower)
}
func (l *PeripheralLayer) OutputTasks() task.Set { return task.NewSet() }

func (l *PeripheralLayer) Setup(ctx *layer.SetupContext) error {
	lift, err := ctx.GetDevice(hardware.KindMotor, "lift")
	if err != nil {
		return err
	}
	tower, err := ctx.GetDevice(hardware.KindServo, "tower")
	if err != nil {
		return err
	}
	l.liftMotor, l.towerServo = lift, tower
	return nil
}

func (l *PeripheralLayer) AcceptTask(t task.Task) error {
	l.pending = t
	return nil
}

func (l *PeripheralLayer) Process(ctx *layer.ProcessContext) {
	if l.pending == nil {
		ctx.RequestTask()
		return
	}
	switch t := l.pending.(type) {
	case *task.Lift:
		l.setMotor(l.liftMotor, t.TargetHeight)
	case *task.LiftTeleop:
		l.setMotor(l.liftMotor, t.Power)
	case *task.Tower:
		l.setServo(l.towerServo, t.TargetAngle)
	case *task.TowerTeleop:
		l.setServo(l.towerServo, t.Power)
	}
	ctx.CompleteTask(l.pending)
	l.pending = nil
	ctx.RequestTask()
}

func (l *PeripheralLayer) SubtaskCompleted(t task.Task) error {
	return layer.ErrMisuse
}
