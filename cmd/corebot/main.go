/*
Gist: this wires up one illustrative opmode: a teleop drive branch (gamepad -> chassis), an
autonomous strategy branch (Win -> waypoints -> chassis/lift), and a localizer feeding a pose sink
that publishes to a debug dashboard and a telemetry writer. The wiring itself — which layers exist
and how they connect — is illustrative scaffolding; RobotController and the
layer/graph/localization/newton packages are the parts under test. See DESIGN.md.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	"github.com/rs/zerolog"

	"corebot/atomicfloat"
	"corebot/config"
	"corebot/controller"
	"corebot/dashboard"
	"corebot/graph"
	"corebot/hardware"
	"corebot/input"
	"corebot/layer"
	"corebot/layers"
	"corebot/localization"
	"corebot/matrix"
	"corebot/newton"
	"corebot/task"
	"corebot/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to an opmode YAML config; if empty, defaults are used")
	debug := flag.Bool("debug", false, "run the controller in debug mode (replays Process before routing)")
	flag.Parse()

	logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.FromYaml(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("loading config")
		}
		cfg = loaded
	}
	if *debug {
		cfg.DebugMode = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pose := atomicfloat.NewSharedPose(matrix.Identity3)

	var dash *dashboard.Server
	if cfg.Dashboard.Enabled {
		dash = dashboard.New(cfg.Dashboard.Addr, logger)
		go func() {
			if err := dash.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("dashboard server exited")
			}
		}()
	}

	var tWriter *telemetry.Writer
	if cfg.Telemetry.Enabled {
		tWriter = telemetry.NewWriter(
			cfg.Telemetry.Addr,
			cfg.Telemetry.QueueDepth,
			time.Duration(cfg.Telemetry.BackoffInitialMS)*time.Millisecond,
			time.Duration(cfg.Telemetry.BackoffMaxMS)*time.Millisecond,
			logger,
		)
		go tWriter.Run(ctx)
		defer tWriter.Close()
	}

	robot := newStubProxy(logger)
	gamepad0 := input.Gamepad{Read: func() input.GamepadSnapshot { return input.GamepadSnapshot{} }}
	gamepad1 := input.Gamepad{Read: func() input.GamepadSnapshot { return input.GamepadSnapshot{} }}

	g := graph.New()

	teleop := layers.NewGamepadSourceLayer(0)
	mapping := layers.NewInputMappingLayer()
	drive := layers.NewDriveLayer(func(d hardware.Device, power float64) {
		logger.Debug().Str("motor", d.Name()).Float64("power", power).Msg("set motor")
	})
	peripheral := layers.NewPeripheralLayer(
		func(d hardware.Device, power float64) { logger.Debug().Str("motor", d.Name()).Float64("power", power).Msg("set motor") },
		func(d hardware.Device, angle float64) { logger.Debug().Str("servo", d.Name()).Float64("angle", angle).Msg("set servo") },
	)

	win := layer.NewWinLayer()
	strategy := layers.NewStrategySequence([]layers.Waypoint{
		{Goal: matrix.FromTransform(matrix.FromAngle(0), matrix.Vec2{X: 1, Y: 0}), LiftHeight: 0.2},
		{Goal: matrix.FromTransform(matrix.FromAngle(1.57), matrix.Vec2{X: 1, Y: 1}), LiftHeight: 0.5},
	})
	pathfind := layers.NewPathfindLayer(func() (x, y float64) {
		p := pose.Load().GetTranslation()
		return p.X, p.Y
	})

	loc := localization.New(matrix.Identity3, newton.New(cfg.RandomSeed, cfg.Newton))
	poseSink := newPoseSinkLayer(pose)

	if err := g.AddConnections([]graph.Connection{
		{Parent: teleop, Child: mapping},
		{Parent: mapping, Child: drive},
		{Parent: win, Child: strategy},
		{Parent: strategy, Child: pathfind},
		{Parent: strategy, Child: peripheral},
		{Parent: pathfind, Child: drive},
		{Parent: loc, Child: poseSink},
	}); err != nil {
		logger.Fatal().Err(err).Msg("assembling layer graph")
	}

	c := controller.New(logger)
	if err := c.Setup(robot, g, gamepad0, gamepad1, cfg.DebugMode, cfg.DebugMultiplier); err != nil {
		logger.Fatal().Err(err).Msg("controller setup")
	}

	done := ctx.Done()
	for range channerics.NewTicker(done, 20*time.Millisecond) {
		finished, err := c.Update()
		if err != nil {
			logger.Error().Err(err).Msg("controller update")
			break
		}

		current := pose.Load()
		if dash != nil {
			dash.Publish(telemetry.TransformFrame{Name: "pose", Transform: current})
		}
		if tWriter != nil {
			tWriter.Enqueue(telemetry.TransformFrame{Name: "pose", Transform: current})
		}

		if finished {
			logger.Info().Msg("opmode finished")
			break
		}
	}
}

// poseSinkLayer is the terminal consumer of the localizer's output: it stores each resolved pose
// into a SharedPose (lock-free, cross-goroutine) and acknowledges immediately, so the localizer
// can resolve its next pose on the following tick.
type poseSinkLayer struct {
	pose    *atomicfloat.SharedPose
	pending task.Task
}

func newPoseSinkLayer(pose *atomicfloat.SharedPose) *poseSinkLayer {
	return &poseSinkLayer{pose: pose}
}

func (l *poseSinkLayer) InputTasks() task.Set  { return task.NewSet(task.KindLocalization) }
func (l *poseSinkLayer) OutputTasks() task.Set { return task.NewSet() }
func (l *poseSinkLayer) Setup(ctx *layer.SetupContext) error { return nil }

func (l *poseSinkLayer) AcceptTask(t task.Task) error {
	l.pending = t
	return nil
}

func (l *poseSinkLayer) Process(ctx *layer.ProcessContext) {
	if l.pending == nil {
		ctx.RequestTask()
		return
	}
	l.pose.Store(l.pending.(*task.Localization).Transform)
	ctx.CompleteTask(l.pending)
	l.pending = nil
	ctx.RequestTask()
}

func (l *poseSinkLayer) SubtaskCompleted(t task.Task) error {
	return layer.ErrMisuse
}

// stubProxy is a placeholder hardware.Proxy: hardware access is explicitly out of scope
// (spec.md §1), so this just hands back a named, kind-tagged no-op device for every request a
// layer makes during Setup.
type stubProxy struct {
	logger zerolog.Logger
}

func newStubProxy(logger zerolog.Logger) *stubProxy {
	return &stubProxy{logger: logger}
}

func (s *stubProxy) GetDevice(kind hardware.DeviceKind, name string) (hardware.Device, error) {
	s.logger.Debug().Str("kind", string(kind)).Str("name", name).Msg("acquiring stub device")
	return stubDevice{kind: kind, name: name}, nil
}

type stubDevice struct {
	kind hardware.DeviceKind
	name string
}

func (d stubDevice) Name() string              { return d.name }
func (d stubDevice) Kind() hardware.DeviceKind { return d.kind }
