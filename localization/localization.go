// Package localization implements the probabilistic localizer framework: the LocalizationData
// and LocalizationSource abstractions, the square-falloff default data model, and RobotLocalizer,
// the Layer that fuses registered sources into a single pose each tick. Grounded on
// original_source/localization/{Localization,RobotLocalizer}.py, generalized from that scratch
// code into the contract spec.md §3/§4.F describes.
package localization

import (
	"github.com/rs/zerolog"

	"corebot/layer"
	"corebot/matrix"
	"corebot/task"
)

// LocalizationData is a probability field over position (2D) and rotation (1D): pointwise
// density, first partials, the gradient of each partial (Hessian rows), and the second
// derivative of the rotation density.
type LocalizationData interface {
	PPos(pos matrix.Vec2) float64
	PRot(theta float64) float64

	DPPosDX(pos matrix.Vec2) float64
	DPPosDY(pos matrix.Vec2) float64

	// GradDPPosDX and GradDPPosDY are Hessian rows: the gradient of DPPosDX and DPPosDY
	// respectively.
	GradDPPosDX(pos matrix.Vec2) matrix.Vec2
	GradDPPosDY(pos matrix.Vec2) matrix.Vec2

	DPRotDTheta(theta float64) float64
	D2PRotDTheta2(theta float64) float64
}

// LocalizationSource is a data producer registered with a RobotLocalizer.
type LocalizationSource interface {
	// OnStart is invoked once, on the localizer's first process call.
	OnStart(initialTransform matrix.Mat3)
	// OnUpdate is invoked once per controller tick, before localization.
	OnUpdate()
	// HasData reports whether the source currently has data to contribute.
	HasData() bool
	// CollectData returns a fresh LocalizationData snapshot.
	CollectData() LocalizationData
}

// Solver resolves a fused pose from the probability fields of every source that currently has
// data; implemented by the newton package's gradient-ascent solver.
type Solver interface {
	Solve(sources []LocalizationData) (matrix.Mat3, error)
}

// RobotLocalizer is the Layer that fuses registered sources into a single pose each tick: it
// emits one Localization(transform) subtask per tick whenever the previous one has been
// acknowledged, computed lazily and cached until invalidation, and is otherwise silent. It has no
// parents and rejects any accept_task.
type RobotLocalizer struct {
	initialTransform matrix.Mat3
	solver           Solver
	sources          []LocalizationSource
	logger           zerolog.Logger

	started bool

	cacheValid bool
	cached     matrix.Mat3
	cacheErr   error

	// lastGood is the most recently resolved transform that did not fail; it starts out equal to
	// initialTransform and is the fallback Process emits whenever resolve fails.
	lastGood matrix.Mat3

	lastEmitted  *task.Localization
	acknowledged bool
}

// New builds a RobotLocalizer that resolves poses with solver, starting sources at
// initialTransform.
func New(initialTransform matrix.Mat3, solver Solver) *RobotLocalizer {
	return &RobotLocalizer{
		initialTransform: initialTransform,
		solver:           solver,
		lastGood:         initialTransform,
		acknowledged:     true,
	}
}

// RegisterSource adds a LocalizationSource to fuse over.
func (l *RobotLocalizer) RegisterSource(s LocalizationSource) {
	l.sources = append(l.sources, s)
}

func (l *RobotLocalizer) InputTasks() task.Set  { return task.NewSet() }
func (l *RobotLocalizer) OutputTasks() task.Set { return task.NewSet(task.KindLocalization) }

func (l *RobotLocalizer) Setup(ctx *layer.SetupContext) error {
	l.logger = ctx.GetLogger("RobotLocalizer")
	ctx.AddUpdateListener(func() {
		l.InvalidateCache()
		for _, s := range l.sources {
			s.OnUpdate()
		}
	})
	return nil
}

func (l *RobotLocalizer) AcceptTask(t task.Task) error {
	return layer.ErrUnsupportedTask
}

// InvalidateCache discards the cached resolved transform, forcing the next Process to recompute
// it lazily.
func (l *RobotLocalizer) InvalidateCache() {
	l.cacheValid = false
}

func (l *RobotLocalizer) Process(ctx *layer.ProcessContext) {
	if !l.started {
		for _, s := range l.sources {
			s.OnStart(l.initialTransform)
		}
		l.started = true
	}
	if !l.acknowledged {
		return
	}
	if !l.cacheValid {
		l.cached, l.cacheErr = l.resolve()
		l.cacheValid = true
		if l.cacheErr == nil {
			l.lastGood = l.cached
		}
	}

	transform := l.cached
	if l.cacheErr != nil {
		l.logger.Warn().Err(l.cacheErr).Msg("solver failed, falling back to last good transform")
		transform = l.lastGood
	}

	t := &task.Localization{Transform: transform}
	ctx.EmitSubtask(t)
	l.lastEmitted = t
	l.acknowledged = false
}

func (l *RobotLocalizer) resolve() (matrix.Mat3, error) {
	var data []LocalizationData
	for _, s := range l.sources {
		if s.HasData() {
			data = append(data, s.CollectData())
		}
	}
	return l.solver.Solve(data)
}

func (l *RobotLocalizer) SubtaskCompleted(t task.Task) error {
	if t != task.Task(l.lastEmitted) {
		return layer.ErrMisuse
	}
	l.acknowledged = true
	return nil
}
