// SPDX-License-Identifier: GPL-3.0-or-later

package refcell

import "github.com/bassosimone/runtimex"

// Handle co-owns a [*Cell].
//
// Handles are how callers reach a cell: cloning a handle adds an owner,
// dropping one removes an owner, and the cell is destroyed exactly once,
// when the last handle is dropped.
//
// Each handle may be dropped exactly once. Using a handle after dropping
// it is an invariant violation and panics. Handles share the cell's
// single-goroutine discipline.
type Handle[T any] struct {
	// cell is the co-owned cell.
	cell *Cell[T]

	// dropped records that this handle gave up its ownership share.
	dropped bool
}

// Clone adds an owner and returns a new handle for the same cell.
//
// Clone always succeeds. The clone is independent of the receiver:
// dropping one does not affect the other beyond the owner count.
func (h *Handle[T]) Clone() *Handle[T] {
	runtimex.Assert(!h.dropped)
	return h.cell.cloneHandle()
}

// Borrow requests shared (read) access to the cell's value.
//
// Borrow succeeds whenever no exclusive borrow is live, including when
// other shared borrows are live, and returns a guard proving the access
// right. It fails with an error matching [ErrBorrowConflict] while an
// exclusive borrow is live, leaving the cell's state unchanged.
//
// The caller must release the returned guard exactly once, on every
// exit path; prefer [View] when the access fits a single function.
func (h *Handle[T]) Borrow() (*Ref[T], error) {
	runtimex.Assert(!h.dropped)
	return h.cell.borrowShared()
}

// BorrowMut requests exclusive (write) access to the cell's value.
//
// BorrowMut succeeds only when the cell is unborrowed and returns a
// guard proving the access right. It fails with an error matching
// [ErrBorrowConflict] while any borrow is live, leaving the cell's
// state unchanged.
//
// The caller must release the returned guard exactly once, on every
// exit path; prefer [Update] when the access fits a single function.
func (h *Handle[T]) BorrowMut() (*RefMut[T], error) {
	runtimex.Assert(!h.dropped)
	return h.cell.borrowExclusive()
}

// Drop gives up this handle's ownership share.
//
// When the owner count reaches zero the cell is destroyed: the
// finalizer, if any, observes the value, and no further access is
// possible. Dropping the last handle while a guard is live is an
// invariant violation and panics, as is dropping the same handle twice.
func (h *Handle[T]) Drop() {
	runtimex.Assert(!h.dropped)
	h.dropped = true
	h.cell.dropHandle()
}

// Cell returns the co-owned cell, for observing its ID, owner count,
// and borrow state.
func (h *Handle[T]) Cell() *Cell[T] {
	return h.cell
}
