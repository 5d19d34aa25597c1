package layers

import (
	"corebot/input"
	"corebot/layer"
	"corebot/task"
)

// GamepadSourceLayer is the teleop source: a parentless layer that samples an input.Device each
// tick and emits a fresh GamepadInput subtask once the previous one has been acknowledged, the
// same emit-then-wait-for-ack shape as localization.RobotLocalizer. It feeds an
// InputMappingLayer (GamepadInput -> HolonomicDrive) as its graph child. Grounded on
// original_source/layer/mapping.py, which samples its gamepad directly rather than through
// accept_task.
type GamepadSourceLayer struct {
	index int

	gamepad input.Device

	lastEmitted  *task.GamepadInput
	acknowledged bool
}

// NewGamepadSourceLayer builds a GamepadSourceLayer reading gamepad index (0 or 1, per
// layer.SetupContext.GetGamepad).
func NewGamepadSourceLayer(index int) *GamepadSourceLayer {
	return &GamepadSourceLayer{index: index, acknowledged: true}
}

func (l *GamepadSourceLayer) InputTasks() task.Set  { return task.NewSet() }
func (l *GamepadSourceLayer) OutputTasks() task.Set { return task.NewSet(task.KindGamepadInput) }

func (l *GamepadSourceLayer) Setup(ctx *layer.SetupContext) error {
	l.gamepad = ctx.GetGamepad(l.index)
	return nil
}

func (l *GamepadSourceLayer) AcceptTask(t task.Task) error {
	return layer.ErrUnsupportedTask
}

func (l *GamepadSourceLayer) Process(ctx *layer.ProcessContext) {
	if !l.acknowledged {
		return
	}
	snap := l.gamepad.Snapshot().(input.GamepadSnapshot)
	t := &task.GamepadInput{
		LeftStickX:   snap.LeftStickX,
		LeftStickY:   snap.LeftStickY,
		RightStickX:  snap.RightStickX,
		RightStickY:  snap.RightStickY,
		LeftTrigger:  snap.LeftTrigger,
		RightTrigger: snap.RightTrigger,
		ButtonsDown:  snap.ButtonsDown,
	}
	ctx.EmitSubtask(t)
	l.lastEmitted = t
	l.acknowledged = false
}

func (l *GamepadSourceLayer) SubtaskCompleted(t task.Task) error {
	if t != task.Task(l.lastEmitted) {
		return layer.ErrMisuse
	}
	l.acknowledged = true
	return nil
}
