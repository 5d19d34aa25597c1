package layers

import (
	"corebot/layer"
	"corebot/task"
)

// NewInputMappingLayer maps a GamepadInput snapshot each tick into a HolonomicDrive command,
// left stick for translation, right stick x for rotation. Built on layer.FunctionMapLayer since
// input mapping is a pure 1:1 transform with no multi-step subtask sequence. Grounded on
// original_source/layer/mapping.py.
func NewInputMappingLayer() *layer.FunctionMapLayer {
	return layer.NewFunctionMapLayer(
		task.NewSet(task.KindGamepadInput),
		task.NewSet(task.KindHolonomicDrive),
		func(t task.Task) task.Task {
			in := t.(*task.GamepadInput)
			return &task.HolonomicDrive{
				X:        in.LeftStickX,
				Y:        in.LeftStickY,
				Rotation: in.RightStickX,
			}
		},
	)
}
