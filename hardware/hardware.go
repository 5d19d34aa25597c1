// Package hardware defines the external contract layers use to reach actuators and sensors.
// It is out of scope as an implementation (spec.md §1): a real build supplies a Proxy backed by
// whatever motor/servo/sensor SDK the robot controller exposes. Grounded on
// original_source/hwconf.py and original_source/actuators.py, which this package generalizes
// from their concrete FTC SDK bindings into a device-kind/name lookup contract.
package hardware

import "fmt"

// DeviceKind names a class of hardware device a layer may request.
type DeviceKind string

const (
	KindMotor          DeviceKind = "motor"
	KindServo          DeviceKind = "servo"
	KindDistanceSensor DeviceKind = "distance_sensor"
	KindIMU            DeviceKind = "imu"
)

// Device is the minimal handle a layer holds once it has acquired a piece of hardware; concrete
// device kinds (motor, servo, sensor) extend this with kind-specific methods in their own
// driver packages, which are themselves out of scope here.
type Device interface {
	Name() string
	Kind() DeviceKind
}

// Proxy is the robot-wide device directory handed to every layer at setup, per spec §4.B
// ("acquires devices via ctx.get_device(kind, name)").
type Proxy interface {
	GetDevice(kind DeviceKind, name string) (Device, error)
}

// DeviceConfig describes one configured device: its kind, logical name, and physical wiring
// (port/channel), as loaded from a ConfigSource.
type DeviceConfig struct {
	Kind    DeviceKind
	Name    string
	Channel string
}

// ConfigSource loads the device configuration for a robot, decoupling the proxy from any one
// configuration format.
type ConfigSource interface {
	LoadDevices() ([]DeviceConfig, error)
}

// StaticConfigSource is a ConfigSource whose device list is fixed at construction; used in tests
// and for opmodes whose hardware map does not vary at runtime.
type StaticConfigSource struct {
	Devices []DeviceConfig
}

func (s StaticConfigSource) LoadDevices() ([]DeviceConfig, error) {
	return s.Devices, nil
}

// ErrDeviceNotFound is returned by a Proxy when no device matches the requested kind and name.
type ErrDeviceNotFound struct {
	Kind DeviceKind
	Name string
}

func (e *ErrDeviceNotFound) Error() string {
	return fmt.Sprintf("hardware: no %s device named %q", e.Kind, e.Name)
}
