// Package controller implements RobotController, the single-threaded cooperative tick engine
// that drives a graph.LayerGraph sinks-to-sources each update: routing emitted subtasks down,
// completions up, and handling escalation and teardown. Grounded on
// original_source/controller.py's RobotController.update.
package controller

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"corebot/graph"
	"corebot/hardware"
	"corebot/input"
	"corebot/layer"
)

// State is the controller's lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Finished
)

// ErrAlreadySetup is returned by Setup when the controller is not Idle.
var ErrAlreadySetup = errors.New("controller: already set up")

// ErrNotRunning is returned by Update when the controller is Idle (Setup has not run). Once
// Finished, Update returns true with no error.
var ErrNotRunning = errors.New("controller: not running")

// ErrUnsupportedTask wraps layer.ErrUnsupportedTask when a routed task reaches accept_task with
// a kind the layer never declared, despite graph-level compatibility — a routing bug, fatal to
// the tick.
var ErrUnsupportedTask = layer.ErrUnsupportedTask

// ErrMisuse wraps layer.ErrMisuse: completion of a task never emitted (or accepted).
var ErrMisuse = layer.ErrMisuse

// RobotController owns a graph.LayerGraph after Setup, plus two ordered listener lists (update,
// teardown). It holds no per-layer state beyond the graph.
type RobotController struct {
	logger zerolog.Logger

	state           State
	graph           *graph.LayerGraph
	debug           bool
	debugMultiplier int

	updateListeners   []func()
	teardownListeners []func()
}

// New builds an idle RobotController that logs through logger.
func New(logger zerolog.Logger) *RobotController {
	return &RobotController{logger: logger.With().Str("component", "RobotController").Logger()}
}

// Setup transitions Idle -> Running: every layer's Setup is called exactly once, listener lists
// start empty. debugMultiplier is the total number of Process calls (throwaway replays plus the
// real call) runProcess makes per hot layer per tick while debug is set; callers should pass
// config.OpmodeConfig.DebugMultiplier. It is ignored when debug is false.
func (c *RobotController) Setup(robot hardware.Proxy, g *graph.LayerGraph, gamepad0, gamepad1 input.Device, debug bool, debugMultiplier int) error {
	if c.state != Idle {
		return ErrAlreadySetup
	}
	ctx := layer.NewSetupContext(robot, gamepad0, gamepad1, c.logger, c.addUpdateListener, c.addTeardownListener)
	for _, l := range g.GetVerts() {
		if err := l.Setup(ctx); err != nil {
			return fmt.Errorf("controller: layer setup: %w", err)
		}
	}
	c.graph = g
	c.debug = debug
	c.debugMultiplier = debugMultiplier
	c.state = Running
	return nil
}

func (c *RobotController) addUpdateListener(fn func())   { c.updateListeners = append(c.updateListeners, fn) }
func (c *RobotController) addTeardownListener(fn func())  { c.teardownListeners = append(c.teardownListeners, fn) }

// State reports the controller's current lifecycle state.
func (c *RobotController) State() State { return c.state }

// Update runs one tick: fires update listeners, then drives the frontier from the graph's sinks
// toward its sources until it drains, returning true iff the opmode has terminated (at which
// point the controller transitions to Finished and no further ticks may be taken).
func (c *RobotController) Update() (bool, error) {
	c.logger.Trace().Msg("begin update")
	if c.state == Idle {
		return false, ErrNotRunning
	}
	for _, l := range c.updateListeners {
		l()
	}
	if c.graph == nil {
		return true, nil
	}

	hot := make(map[layer.Layer]struct{})
	for _, s := range c.graph.GetSinks() {
		hot[s] = struct{}{}
	}
	allEscalated := true

	for len(hot) > 0 {
		var l layer.Layer
		for v := range hot {
			l = v
			break
		}
		delete(hot, l)

		parents := c.graph.GetParents(l)
		children := c.graph.GetChildren(l)

		ctx := c.runProcess(l)

		for _, t := range ctx.Completed() {
			for _, p := range parents {
				if p.OutputTasks().Accepts(t.Kind()) {
					if err := p.SubtaskCompleted(t); err != nil {
						return false, fmt.Errorf("controller: %w", err)
					}
				}
			}
		}
		for _, t := range ctx.Subtasks() {
			for _, ch := range children {
				if ch.InputTasks().Accepts(t.Kind()) {
					if err := ch.AcceptTask(t); err != nil {
						return false, fmt.Errorf("controller: %w", err)
					}
				}
			}
		}

		if ctx.Escalated() {
			for _, p := range parents {
				hot[p] = struct{}{}
			}
		} else {
			allEscalated = false
		}
	}

	if allEscalated {
		for _, t := range c.teardownListeners {
			t()
		}
		c.updateListeners = nil
		c.teardownListeners = nil
		c.graph = nil
		c.state = Finished
	}
	return allEscalated, nil
}

// runProcess invokes l.Process once (or, in debug mode, debugMultiplier-1 throwaway replays
// followed by the real call) and returns the ProcessContext whose accumulated effects are
// actually routed. Replaying Process against discarded contexts is a diagnostic only: it must
// provoke a crash or divergence in a layer that mutates state it shouldn't on a call that isn't
// supposed to change anything externally observable, without itself changing the tick's outcome.
func (c *RobotController) runProcess(l layer.Layer) *layer.ProcessContext {
	if c.debug {
		for i := 0; i < c.debugMultiplier-1; i++ {
			l.Process(layer.NewProcessContext())
		}
	}
	ctx := layer.NewProcessContext()
	l.Process(ctx)
	return ctx
}
