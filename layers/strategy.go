package layers

import (
	"corebot/layer"
	"corebot/matrix"
	"corebot/task"
)

// Waypoint is one stage of an autonomous strategy: a field pose to reach, followed by a lift
// height to raise to once there.
type Waypoint struct {
	Goal       matrix.Mat3
	LiftHeight float64
}

// NewStrategySequence expands a single Win task into a fixed ordered sequence of
// MoveToField/Lift subtasks, one pair per waypoint — an autonomous "go here, then do this"
// script. Built on layer.QueuedLayer, since a strategy is a finite ordered plan rather than a
// per-accept 1:1 map. Grounded on original_source/layer/strategy.py.
func NewStrategySequence(waypoints []Waypoint) *layer.QueuedLayer {
	return layer.NewQueuedLayer(
		task.NewSet(task.KindWin),
		task.NewSet(task.KindMoveToField, task.KindLift),
		func(t task.Task) []task.Task {
			subtasks := make([]task.Task, 0, len(waypoints)*2)
			for _, wp := range waypoints {
				subtasks = append(subtasks,
					&task.MoveToField{GoalTransform: wp.Goal},
					&task.Lift{TargetHeight: wp.LiftHeight},
				)
			}
			return subtasks
		},
	)
}
