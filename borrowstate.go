// SPDX-License-Identifier: GPL-3.0-or-later

package refcell

import (
	"fmt"

	"github.com/bassosimone/runtimex"
)

// borrowState is the runtime borrow tag of a cell.
//
// The zero value is the unborrowed state. The three possible states are
// mutually exclusive:
//
//   - unborrowed: shared == 0 && !exclusive
//   - shared(n):  shared == n >= 1 && !exclusive
//   - exclusive:  shared == 0 && exclusive
//
// Transitions happen inside single function calls with no suspension
// points, so, within one goroutine, a transition can never be observed
// half-applied by a re-entrant borrow.
type borrowState struct {
	// shared is the number of live shared borrows.
	shared int

	// exclusive records whether an exclusive borrow is live.
	exclusive bool
}

// idle returns true when no borrow is live.
func (s *borrowState) idle() bool {
	return s.shared == 0 && !s.exclusive
}

// tryBorrowShared attempts the unborrowed-or-shared(n) -> shared(n+1)
// transition. It returns false when an exclusive borrow is live.
func (s *borrowState) tryBorrowShared() bool {
	if s.exclusive {
		return false
	}
	s.shared++
	return true
}

// tryBorrowExclusive attempts the unborrowed -> exclusive transition. It
// returns false when any borrow, shared or exclusive, is live.
func (s *borrowState) tryBorrowExclusive() bool {
	if s.exclusive || s.shared > 0 {
		return false
	}
	s.exclusive = true
	return true
}

// releaseShared undoes one shared borrow. Calling it without a live
// shared borrow is an invariant violation and panics.
func (s *borrowState) releaseShared() {
	runtimex.Assert(s.shared >= 1 && !s.exclusive)
	s.shared--
}

// releaseExclusive undoes the exclusive borrow. Calling it without a
// live exclusive borrow is an invariant violation and panics.
func (s *borrowState) releaseExclusive() {
	runtimex.Assert(s.exclusive && s.shared == 0)
	s.exclusive = false
}

// String renders the state for structured logging and error messages.
func (s *borrowState) String() string {
	switch {
	case s.exclusive:
		return "exclusive"
	case s.shared > 0:
		return fmt.Sprintf("shared(%d)", s.shared)
	default:
		return "unborrowed"
	}
}
