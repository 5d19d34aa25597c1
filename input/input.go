// Package input defines the external contract for human input devices (gamepad, keyboard).
// It is out of scope as an implementation (spec.md §1): layers read a snapshot each tick through
// this contract and translate it into task.GamepadInput / task.KeyboardInput payloads. Grounded
// on original_source/task/input.py, which wraps the FTC SDK's Gamepad class; this package
// generalizes that into a device-agnostic snapshot interface.
package input

// Device is a human input source that can be sampled once per controller tick.
type Device interface {
	// Snapshot returns the device's current state. Implementations must not block.
	Snapshot() Snapshot
}

// Snapshot is an opaque per-tick reading; concrete devices type-assert to their own snapshot
// type (GamepadSnapshot, KeyboardSnapshot).
type Snapshot interface {
	isSnapshot()
}

// GamepadSnapshot mirrors the analog/digital state an FTC-style gamepad exposes in one tick.
type GamepadSnapshot struct {
	LeftStickX, LeftStickY    float64
	RightStickX, RightStickY  float64
	LeftTrigger, RightTrigger float64
	ButtonsDown               map[string]bool
}

func (GamepadSnapshot) isSnapshot() {}

// KeyboardSnapshot maps key name to held-down state for one tick.
type KeyboardSnapshot struct {
	Down map[string]bool
}

func (KeyboardSnapshot) isSnapshot() {}

// Gamepad adapts a two-stick/two-trigger/button controller to Device.
type Gamepad struct {
	Read func() GamepadSnapshot
}

func (g Gamepad) Snapshot() Snapshot { return g.Read() }

// Keyboard adapts a keyboard to Device.
type Keyboard struct {
	Read func() KeyboardSnapshot
}

func (k Keyboard) Snapshot() Snapshot { return k.Read() }
