package layers

import (
	"corebot/layer"
	"corebot/task"
)

// NewPathfindLayer maps a MoveToField task into a single HolonomicDrive command steering toward
// the goal's translation, reading the most recently resolved pose via currentPose. It is a
// deliberately simple placeholder for the real path planner the original program implements in
// layer/pathfinding.py — illustrative per spec.md §1, not a normative algorithm.
func NewPathfindLayer(currentPose func() (x, y float64)) *layer.FunctionMapLayer {
	return layer.NewFunctionMapLayer(
		task.NewSet(task.KindMoveToField),
		task.NewSet(task.KindHolonomicDrive),
		func(t task.Task) task.Task {
			goal := t.(*task.MoveToField).GoalTransform.GetTranslation()
			cx, cy := currentPose()
			dx, dy := goal.X-cx, goal.Y-cy
			return &task.HolonomicDrive{X: clamp(dx), Y: clamp(dy)}
		},
	)
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
