// Package atomicfloat provides lock-free float64 load/store/add over a *float64, for sharing
// state between goroutines without a mutex. Adapted from the teacher's atomic_helpers package
// (CAS loops over the float's bit pattern via sync/atomic + unsafe) into the names and shape this
// module actually needs: sharing the controller's resolved pose with an external, separately
// goroutined consumer (the dashboard), since the core tick loop itself stays single-threaded.
package atomicfloat

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// Load atomically reads *val.
func Load(val *float64) float64 {
	return math.Float64frombits(atomic.LoadUint64((*uint64)(unsafe.Pointer(val))))
}

// Store atomically writes newVal to *val.
func Store(val *float64, newVal float64) {
	atomic.StoreUint64((*uint64)(unsafe.Pointer(val)), math.Float64bits(newVal))
}

// Add atomically adds addend to *val and returns the new value.
func Add(val *float64, addend float64) float64 {
	for {
		old := Load(val)
		next := old + addend
		if atomic.CompareAndSwapUint64(
			(*uint64)(unsafe.Pointer(val)),
			math.Float64bits(old),
			math.Float64bits(next),
		) {
			return next
		}
	}
}
