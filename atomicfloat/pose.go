package atomicfloat

import "corebot/matrix"

// SharedPose holds the latest resolved robot transform for lock-free cross-goroutine reads: the
// controller's tick goroutine calls Store after each localization resolve, and external
// goroutines (the dashboard, a telemetry publisher) call Load whenever they need a snapshot,
// without blocking the tick loop or each other.
type SharedPose struct {
	m00, m01, m02 float64
	m10, m11, m12 float64
	m20, m21, m22 float64
}

// NewSharedPose builds a SharedPose initialized to t.
func NewSharedPose(t matrix.Mat3) *SharedPose {
	p := &SharedPose{}
	p.Store(t)
	return p
}

// Store publishes t, storing each of its nine elements atomically but not all nine as one unit.
// A concurrent Load may observe a torn transform (a mix of old and new elements) for the instant
// between individual element stores; the nine elements are not a consistent snapshot.
func (p *SharedPose) Store(t matrix.Mat3) {
	Store(&p.m00, t.M00)
	Store(&p.m01, t.M01)
	Store(&p.m02, t.M02)
	Store(&p.m10, t.M10)
	Store(&p.m11, t.M11)
	Store(&p.m12, t.M12)
	Store(&p.m20, t.M20)
	Store(&p.m21, t.M21)
	Store(&p.m22, t.M22)
}

// Load reads the current transform, each element atomically; see Store for torn reads.
func (p *SharedPose) Load() matrix.Mat3 {
	return matrix.Mat3{
		M00: Load(&p.m00), M01: Load(&p.m01), M02: Load(&p.m02),
		M10: Load(&p.m10), M11: Load(&p.m11), M12: Load(&p.m12),
		M20: Load(&p.m20), M21: Load(&p.m21), M22: Load(&p.m22),
	}
}
