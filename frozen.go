// SPDX-License-Identifier: GPL-3.0-or-later

package refcell

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/bassosimone/runtimex"
)

// NewFrozen creates an immutable shared value and returns its first
// handle.
//
// The value starts with an owner count of one and can never be mutated,
// which is what makes sharing it across goroutines safe without a lock:
// concurrent readers observe the same frozen bits forever. Ownership
// bookkeeping uses atomic counters, so [*Frozen.Clone], [*Frozen.Value]
// and [*Frozen.Drop] are safe to call from multiple goroutines.
//
// The cfg argument contains the common configuration for refcell
// constructors.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewFrozen[T any](cfg *Config, logger SLogger, value T) *Frozen[T] {
	shared := &frozenShared[T]{
		finalizer: nil,
		frozenID:  NewCellID(),
		logger:    logger,
		metrics:   cfg.Metrics,
		timeNow:   cfg.TimeNow,
		value:     value,
	}
	shared.owners.Store(1)
	shared.log("frozenCreate", 1)
	return &Frozen[T]{shared: shared}
}

// Frozen is a handle to an immutable value shared across goroutines.
//
// It is the read-only counterpart of [*Cell]: there is no borrow state
// because there is nothing an exclusive borrow could protect. Each
// handle may be dropped exactly once; the value is destroyed when the
// owner count reaches zero.
type Frozen[T any] struct {
	// dropped records that this handle gave up its ownership share.
	dropped atomic.Bool

	// shared is the co-owned allocation.
	shared *frozenShared[T]
}

// frozenShared is the allocation co-owned by [*Frozen] handles.
type frozenShared[T any] struct {
	// finalizer, when non-nil, observes the value exactly once at the
	// owner-count zero transition.
	finalizer func(value T)

	// frozenID correlates log entries emitted for this value.
	frozenID string

	// logger is the configured [SLogger].
	logger SLogger

	// metrics receives lifecycle counters.
	metrics *Metrics

	// owners is the number of live handles.
	owners atomic.Int64

	// timeNow is the configured clock.
	timeNow func() time.Time

	// value is the immutable shared value.
	value T
}

// SetFinalizer registers fn to observe the value exactly once, right
// after the owner count reaches zero.
//
// Call this before handing out clones: registration itself is not
// synchronized with concurrent Clone or Drop calls.
func (f *Frozen[T]) SetFinalizer(fn func(value T)) {
	runtimex.Assert(!f.dropped.Load())
	f.shared.finalizer = fn
}

// ID returns the UUIDv7 identifying this value in log entries.
func (f *Frozen[T]) ID() string {
	return f.shared.frozenID
}

// Owners returns the current owner count.
func (f *Frozen[T]) Owners() int64 {
	return f.shared.owners.Load()
}

// Value returns the shared value. The value is immutable, so the
// returned copy is always current.
func (f *Frozen[T]) Value() T {
	runtimex.Assert(!f.dropped.Load())
	return f.shared.value
}

// Clone adds an owner and returns a new handle for the same value.
//
// Clone always succeeds and is safe to call concurrently with other
// handles' operations. The new handle may move to another goroutine.
func (f *Frozen[T]) Clone() *Frozen[T] {
	runtimex.Assert(!f.dropped.Load())
	owners := f.shared.owners.Add(1)
	// Cloning from a live handle means the count was at least one.
	runtimex.Assert(owners >= 2)
	f.shared.metrics.FrozenClones.Add(1)
	f.shared.log("frozenClone", owners)
	return &Frozen[T]{shared: f.shared}
}

// Drop gives up this handle's ownership share.
//
// Exactly one Drop call observes the owner-count zero transition; that
// call destroys the value, running the finalizer if one is registered.
// Dropping the same handle twice is an invariant violation and panics.
func (f *Frozen[T]) Drop() {
	runtimex.Assert(!f.dropped.Swap(true))
	owners := f.shared.owners.Add(-1)
	runtimex.Assert(owners >= 0)
	f.shared.metrics.FrozenDrops.Add(1)
	f.shared.log("frozenDrop", owners)
	if owners > 0 {
		return
	}
	f.shared.log("frozenDestroy", owners)
	if f.shared.finalizer != nil {
		f.shared.finalizer(f.shared.value)
	}
}

func (s *frozenShared[T]) log(event string, owners int64) {
	s.logger.Info(
		event,
		slog.String("frozenID", s.frozenID),
		slog.Int64("owners", owners),
		slog.Time("t", s.timeNow()),
	)
}
