// SPDX-License-Identifier: GPL-3.0-or-later

// Package refcell provides shared ownership of a single value with
// interior mutation gated by a runtime borrow check.
//
// # Core Abstraction
//
// The package is built around one state machine:
//
//	unborrowed <-> shared(n) | exclusive
//
// A [*Cell] pairs a value with this borrow tag. Access to the value is
// only possible through a live guard, and requesting a guard checks the
// tag at operation time: any number of shared (read) borrows may
// coexist, an exclusive (write) borrow excludes everything else. An
// incompatible request fails with [ErrBorrowConflict] rather than
// silently aliasing the value.
//
// # Ownership Lifecycle
//
// Cells are co-owned. [NewCell] returns the first [*Handle]; cloning a
// handle adds an owner and dropping one removes an owner. The cell and
// its value are destroyed exactly once, at the owner-count zero
// transition, optionally observed by a finalizer. Dropping the last
// handle while a guard is live is an invariant violation: the package
// detects it and panics instead of destroying a value that someone can
// still reach.
//
// Guards follow a strict acquire/release discipline:
//
//   - [*Handle.Borrow] issues a [*Ref] (shared)
//   - [*Handle.BorrowMut] issues a [*RefMut] (exclusive)
//   - each guard is released exactly once via its Release method
//
// For the common case where an access fits a single function, [View]
// and [Update] acquire a guard, run a callback, and guarantee release
// on every exit path, including error returns and panics.
//
// # Failure Semantics
//
// The only operation-time failure is [ErrBorrowConflict], detected
// synchronously at borrow-request time and surfaced as an error return.
// It marks a violated aliasing invariant, so there is no retry policy:
// the fix is narrower borrow scopes in the caller. Everything else that
// can go wrong (double release, double drop, use after release) is a
// programming error and panics via runtimex assertions.
//
// # Concurrency Model
//
// A [*Cell] and its handles belong to a single goroutine; borrow
// transitions happen inside plain function calls and are never
// interleaved with other transitions on the same goroutine. For
// cross-goroutine sharing the package provides [*Frozen], an immutable
// shared value with an atomic owner count and no borrow machinery at
// all, since concurrent readers of frozen bits need no exclusion.
// Concurrent mutation is intentionally unsupported: a variant with a
// write lock would have different failure semantics and belongs in a
// higher-level package.
//
// # Observability
//
// All operations support structured logging via [SLogger] (compatible
// with [log/slog]).
//
// By default, logging is disabled. Set the Logger field to a custom
// [*slog.Logger] to enable logging. Error classification is
// configurable via [ErrClassifier]; the default classifier labels
// borrow conflicts as [EBORROWCONFLICT] and delegates other errors to
// the errclass package.
//
// Lifecycle events (cellCreate, handleClone, handleDrop, cellDestroy,
// frozenCreate, frozenClone, frozenDrop, frozenDestroy) are emitted at
// [slog.LevelInfo]; per-borrow events (borrowShared, borrowExclusive,
// guardRelease) are emitted at [slog.LevelDebug]. All events share a
// common set of fields: cellID (or frozenID), state or owners, and t
// (timestamp); failed borrows additionally include err and errClass.
//
// Each cell carries a UUIDv7 generated by [NewCellID]. Attach the same
// ID to an application logger with [*slog.Logger.With] to correlate
// surrounding entries with the cell's own entries.
//
// Lifecycle counters are available through [*Metrics], which travels by
// reference via [Config.Metrics] and is never package-level state.
package refcell
