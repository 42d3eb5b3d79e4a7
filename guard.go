// SPDX-License-Identifier: GPL-3.0-or-later

package refcell

import "github.com/bassosimone/runtimex"

// Ref is a live shared borrow of a cell's value.
//
// A Ref proves read access: while it is live, no exclusive borrow can
// be created. The holder must call [*Ref.Release] exactly once when the
// access ends; releasing twice, or reading through a released guard, is
// an invariant violation and panics.
type Ref[T any] struct {
	// cell is the borrowed cell.
	cell *Cell[T]

	// released records that the borrow ended.
	released bool
}

// Value returns the borrowed value.
func (g *Ref[T]) Value() T {
	runtimex.Assert(!g.released)
	return g.cell.value
}

// Release ends the shared borrow, reverting the cell to unborrowed
// once the last shared guard is released.
func (g *Ref[T]) Release() {
	runtimex.Assert(!g.released)
	g.released = true
	g.cell.releaseShared()
}

// RefMut is a live exclusive borrow of a cell's value.
//
// A RefMut proves write access: while it is live, no other borrow of
// any kind can be created. The holder must call [*RefMut.Release]
// exactly once when the access ends; releasing twice, or accessing the
// value through a released guard, is an invariant violation and panics.
type RefMut[T any] struct {
	// cell is the borrowed cell.
	cell *Cell[T]

	// released records that the borrow ended.
	released bool
}

// Value returns the borrowed value.
func (g *RefMut[T]) Value() T {
	runtimex.Assert(!g.released)
	return g.cell.value
}

// Set replaces the borrowed value.
func (g *RefMut[T]) Set(value T) {
	runtimex.Assert(!g.released)
	g.cell.value = value
}

// Release ends the exclusive borrow, reverting the cell to unborrowed.
func (g *RefMut[T]) Release() {
	runtimex.Assert(!g.released)
	g.released = true
	g.cell.releaseExclusive()
}
