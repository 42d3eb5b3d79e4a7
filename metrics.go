// SPDX-License-Identifier: GPL-3.0-or-later

package refcell

import "sync/atomic"

// Metrics counts cell and handle lifecycle events.
//
// A [*Metrics] is explicitly owned by its creator and reaches the cells
// that update it only through [Config.Metrics]. There is deliberately no
// package-level instance: counters travel by reference through the call
// chain, never as ambient process state.
//
// The counters are atomic so that a single [*Metrics] may be shared
// between single-goroutine cells and [*Frozen] values read from multiple
// goroutines.
type Metrics struct {
	// SharedBorrows counts successful shared borrows.
	SharedBorrows atomic.Int64

	// ExclusiveBorrows counts successful exclusive borrows.
	ExclusiveBorrows atomic.Int64

	// BorrowConflicts counts borrow requests rejected
	// with [ErrBorrowConflict].
	BorrowConflicts atomic.Int64

	// HandleClones counts [*Handle.Clone] calls.
	HandleClones atomic.Int64

	// HandleDrops counts [*Handle.Drop] calls.
	HandleDrops atomic.Int64

	// CellsDestroyed counts cells whose owner count reached zero.
	CellsDestroyed atomic.Int64

	// FrozenClones counts [*Frozen.Clone] calls.
	FrozenClones atomic.Int64

	// FrozenDrops counts [*Frozen.Drop] calls.
	FrozenDrops atomic.Int64
}

// NewMetrics creates a [*Metrics] with all counters at zero.
func NewMetrics() *Metrics {
	return &Metrics{}
}
