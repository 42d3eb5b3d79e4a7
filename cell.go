// SPDX-License-Identifier: GPL-3.0-or-later

package refcell

import (
	"log/slog"
	"time"

	"github.com/bassosimone/runtimex"
)

// NewCell creates a cell owning the given value and returns the cell
// along with its first [*Handle].
//
// The returned cell starts unborrowed with an owner count of one. All
// access to the value flows through handles and the guards they issue;
// the cell pointer itself only exposes observers ([*Cell.ID],
// [*Cell.Owners], [*Cell.State]) useful for logging and tests.
//
// The cfg argument contains the common configuration for refcell
// constructors.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewCell[T any](cfg *Config, logger SLogger, value T) (*Cell[T], *Handle[T]) {
	cell := &Cell[T]{
		ErrClassifier: cfg.ErrClassifier,
		Finalizer:     nil,
		Logger:        logger,
		Metrics:       cfg.Metrics,
		TimeNow:       cfg.TimeNow,
		cellID:        NewCellID(),
		destroyed:     false,
		owners:        1,
		state:         borrowState{},
		value:         value,
	}
	cell.logCellCreate()
	return cell, &Handle[T]{cell: cell, dropped: false}
}

// Cell holds one shared value plus the runtime borrow tag that gates
// access to it.
//
// A cell is co-owned by one or more [*Handle] values and is destroyed
// exactly once, when its last handle is dropped. Borrowing follows the
// usual aliasing rule checked at operation time rather than compile
// time: any number of shared borrows, or one exclusive borrow, never
// both.
//
// A cell and its handles belong to a single goroutine: state transitions
// are not synchronized. Use [*Frozen] to share a value across
// goroutines.
//
// All exported fields are safe to modify after construction but before
// first use.
type Cell[T any] struct {
	// ErrClassifier classifies borrow failures for structured logging.
	//
	// Set by [NewCell] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Finalizer, when non-nil, observes the value exactly once, right
	// after the owner count reaches zero. After it returns the value is
	// dead and the cell unusable.
	//
	// Set by [NewCell] to nil.
	Finalizer func(value T)

	// Logger is the [SLogger] to use (configurable for testing or
	// custom logging).
	//
	// Set by [NewCell] to the user-provided logger.
	Logger SLogger

	// Metrics receives lifecycle and borrow counters.
	//
	// Set by [NewCell] from [Config.Metrics].
	Metrics *Metrics

	// TimeNow is the function to get the current time (configurable
	// for testing).
	//
	// Set by [NewCell] from [Config.TimeNow].
	TimeNow func() time.Time

	// cellID correlates log entries emitted for this cell.
	cellID string

	// destroyed records the owner-count zero transition.
	destroyed bool

	// owners is the number of live handles co-owning this cell.
	owners int

	// state is the runtime borrow tag.
	state borrowState

	// value is the shared value. Access requires a live guard.
	value T
}

// ID returns the UUIDv7 identifying this cell in log entries.
func (c *Cell[T]) ID() string {
	return c.cellID
}

// Owners returns the current owner count.
func (c *Cell[T]) Owners() int {
	return c.owners
}

// State renders the current borrow state: "unborrowed", "shared(n)",
// or "exclusive".
func (c *Cell[T]) State() string {
	return c.state.String()
}

// borrowShared attempts the shared-borrow transition and returns a
// live [*Ref] on success.
func (c *Cell[T]) borrowShared() (*Ref[T], error) {
	if !c.state.tryBorrowShared() {
		err := &BorrowConflictError{Requested: "shared", State: c.state.String()}
		c.Metrics.BorrowConflicts.Add(1)
		c.logBorrow("borrowShared", err)
		return nil, err
	}
	c.Metrics.SharedBorrows.Add(1)
	c.logBorrow("borrowShared", nil)
	return &Ref[T]{cell: c, released: false}, nil
}

// borrowExclusive attempts the exclusive-borrow transition and returns
// a live [*RefMut] on success.
func (c *Cell[T]) borrowExclusive() (*RefMut[T], error) {
	if !c.state.tryBorrowExclusive() {
		err := &BorrowConflictError{Requested: "exclusive", State: c.state.String()}
		c.Metrics.BorrowConflicts.Add(1)
		c.logBorrow("borrowExclusive", err)
		return nil, err
	}
	c.Metrics.ExclusiveBorrows.Add(1)
	c.logBorrow("borrowExclusive", nil)
	return &RefMut[T]{cell: c, released: false}, nil
}

// releaseShared undoes one shared borrow.
func (c *Cell[T]) releaseShared() {
	c.state.releaseShared()
	c.logGuardRelease("shared")
}

// releaseExclusive undoes the exclusive borrow.
func (c *Cell[T]) releaseExclusive() {
	c.state.releaseExclusive()
	c.logGuardRelease("exclusive")
}

// cloneHandle increments the owner count and mints a new handle.
func (c *Cell[T]) cloneHandle() *Handle[T] {
	runtimex.Assert(!c.destroyed)
	c.owners++
	c.Metrics.HandleClones.Add(1)
	c.logOwners("handleClone")
	return &Handle[T]{cell: c, dropped: false}
}

// dropHandle decrements the owner count, destroying the cell at the
// zero transition. Reaching zero with a live guard is an invariant
// violation and panics: a guard proves access to a value that the drop
// would destroy.
func (c *Cell[T]) dropHandle() {
	runtimex.Assert(!c.destroyed)
	runtimex.Assert(c.owners >= 1)
	c.owners--
	c.Metrics.HandleDrops.Add(1)
	c.logOwners("handleDrop")
	if c.owners > 0 {
		return
	}
	runtimex.Assert(c.state.idle())
	c.destroyed = true
	c.Metrics.CellsDestroyed.Add(1)
	c.logOwners("cellDestroy")
	if c.Finalizer != nil {
		c.Finalizer(c.value)
	}
}

func (c *Cell[T]) logCellCreate() {
	c.Logger.Info(
		"cellCreate",
		slog.String("cellID", c.cellID),
		slog.Int("owners", c.owners),
		slog.String("state", c.state.String()),
		slog.Time("t", c.TimeNow()),
	)
}

func (c *Cell[T]) logBorrow(event string, err error) {
	c.Logger.Debug(
		event,
		slog.String("cellID", c.cellID),
		slog.Any("err", err),
		slog.String("errClass", c.ErrClassifier.Classify(err)),
		slog.String("state", c.state.String()),
		slog.Time("t", c.TimeNow()),
	)
}

func (c *Cell[T]) logGuardRelease(kind string) {
	c.Logger.Debug(
		"guardRelease",
		slog.String("cellID", c.cellID),
		slog.String("kind", kind),
		slog.String("state", c.state.String()),
		slog.Time("t", c.TimeNow()),
	)
}

func (c *Cell[T]) logOwners(event string) {
	c.Logger.Info(
		event,
		slog.String("cellID", c.cellID),
		slog.Int("owners", c.owners),
		slog.String("state", c.state.String()),
		slog.Time("t", c.TimeNow()),
	)
}
