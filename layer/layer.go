// Package layer defines the Layer contract every scheduler node implements, plus the
// dependency-injection bundle (SetupContext) and per-tick accumulator (ProcessContext) the
// controller hands to layers. Grounded on original_source/layer/__init__.py and
// original_source/controller.py's use of LayerSetupInfo, generalized to the richer
// process/emit_subtask/complete_task/request_task contract spec.md §4.B describes.
package layer

import (
	"errors"

	"github.com/rs/zerolog"

	"corebot/hardware"
	"corebot/input"
	"corebot/task"
)

// ErrUnsupportedTask signals a task reached accept_task with a kind the layer never declared in
// input_tasks, despite graph-level compatibility — a routing bug, fatal to the tick per spec §4.B.
var ErrUnsupportedTask = errors.New("layer: unsupported task kind")

// ErrMisuse signals complete_task (or subtask_completed) was invoked for a task the layer never
// emitted (or never accepted), per spec §4.B.
var ErrMisuse = errors.New("layer: task not owned by this layer")

// Layer is a stateful scheduler node. Implementations are constructed before graph assembly;
// Setup is called exactly once after the graph is frozen; Process/AcceptTask/SubtaskCompleted are
// called while ticking; the layer is released on teardown.
type Layer interface {
	// InputTasks and OutputTasks are pure and idempotent.
	InputTasks() task.Set
	OutputTasks() task.Set

	Setup(ctx *SetupContext) error

	// AcceptTask is called when a parent has emitted a task whose kind is in InputTasks(). A
	// layer may receive multiple tasks before its next Process.
	AcceptTask(t task.Task) error

	// Process is the tick hook: the layer inspects its state and uses ctx to emit subtasks,
	// complete accepted tasks, and request a new task (escalate). Multiple calls of each ctx
	// method are allowed per invocation.
	Process(ctx *ProcessContext)

	// SubtaskCompleted is called when a child acknowledges completion of a task this layer
	// previously emitted; identity selects which emission completed.
	SubtaskCompleted(t task.Task) error
}

// SetupContext is the dependency-injection bundle handed to each layer at setup: robot handle,
// logger factory, and listener registration (spec §2 row I).
type SetupContext struct {
	Robot    hardware.Proxy
	Gamepad0 input.Device
	Gamepad1 input.Device

	logger              zerolog.Logger
	addUpdateListener   func(func())
	addTeardownListener func(func())
}

// NewSetupContext builds a SetupContext; used by the controller during Setup.
func NewSetupContext(robot hardware.Proxy, gamepad0, gamepad1 input.Device, logger zerolog.Logger,
	addUpdate, addTeardown func(func())) *SetupContext {
	return &SetupContext{
		Robot:               robot,
		Gamepad0:            gamepad0,
		Gamepad1:            gamepad1,
		logger:              logger,
		addUpdateListener:   addUpdate,
		addTeardownListener: addTeardown,
	}
}

// GetDevice looks up a device by kind and name via the robot proxy.
func (c *SetupContext) GetDevice(kind hardware.DeviceKind, name string) (hardware.Device, error) {
	return c.Robot.GetDevice(kind, name)
}

// GetGamepad returns gamepad 0 or 1; any other index panics, matching the reference
// implementation's ValueError on an invalid index.
func (c *SetupContext) GetGamepad(index int) input.Device {
	switch index {
	case 0:
		return c.Gamepad0
	case 1:
		return c.Gamepad1
	default:
		panic("layer: invalid gamepad index")
	}
}

// GetLogger returns a logger labeled for the calling layer.
func (c *SetupContext) GetLogger(label string) zerolog.Logger {
	return c.logger.With().Str("layer", label).Logger()
}

// CloneLoggerFactory returns a SetupContext-scoped logger clone, for layers that hand a labeled
// logger down to sublayers.
func (c *SetupContext) CloneLoggerFactory() zerolog.Logger {
	return c.logger.With().Logger()
}

// AddUpdateListener registers fn to run once per tick, before any layer's Process.
func (c *SetupContext) AddUpdateListener(fn func()) { c.addUpdateListener(fn) }

// AddTeardownListener registers fn to run once, after the controller's final tick.
func (c *SetupContext) AddTeardownListener(fn func()) { c.addTeardownListener(fn) }

// ProcessContext accumulates the effects of one Process invocation: emitted subtasks, completed
// tasks, and an escalation flag.
type ProcessContext struct {
	subtasks  []task.Task
	completed []task.Task
	escalated bool
}

// NewProcessContext returns an empty ProcessContext; used by the controller before each Process
// call.
func NewProcessContext() *ProcessContext {
	return &ProcessContext{}
}

// EmitSubtask pushes t downward to type-compatible children.
func (c *ProcessContext) EmitSubtask(t task.Task) { c.subtasks = append(c.subtasks, t) }

// CompleteTask tells parents that a previously accepted task is fully handled.
func (c *ProcessContext) CompleteTask(t task.Task) { c.completed = append(c.completed, t) }

// RequestTask declares the layer has nothing more to do until its parent advances (escalation).
func (c *ProcessContext) RequestTask() { c.escalated = true }

// Subtasks returns the tasks emitted during this Process call.
func (c *ProcessContext) Subtasks() []task.Task { return c.subtasks }

// Completed returns the tasks completed during this Process call.
func (c *ProcessContext) Completed() []task.Task { return c.completed }

// Escalated reports whether RequestTask was called during this Process call.
func (c *ProcessContext) Escalated() bool { return c.escalated }
