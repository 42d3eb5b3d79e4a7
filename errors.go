// SPDX-License-Identifier: GPL-3.0-or-later

package refcell

import (
	"errors"
	"fmt"
)

// ErrBorrowConflict indicates that a requested borrow is incompatible
// with the borrows currently live on the same cell.
//
// This error signals a violated aliasing invariant: the caller requested
// exclusive access while other borrows were live, or any access while an
// exclusive borrow was live. It is not transient and retrying without
// first releasing the conflicting guard cannot succeed.
//
// Use [errors.Is] to test for this error. The concrete error returned by
// borrow operations is a [*BorrowConflictError] wrapping this sentinel.
var ErrBorrowConflict = errors.New("refcell: borrow conflict")

// BorrowConflictError describes a rejected borrow request.
//
// It wraps [ErrBorrowConflict] so that callers can match the failure
// class without inspecting the details.
type BorrowConflictError struct {
	// Requested is the kind of borrow that was requested,
	// either "shared" or "exclusive".
	Requested string

	// State is the borrow state of the cell at request time,
	// rendered like "shared(2)" or "exclusive".
	State string
}

var _ error = &BorrowConflictError{}

// Error implements error.
func (e *BorrowConflictError) Error() string {
	return fmt.Sprintf("refcell: cannot borrow %s while %s", e.Requested, e.State)
}

// Unwrap allows [errors.Is] to match [ErrBorrowConflict].
func (e *BorrowConflictError) Unwrap() error {
	return ErrBorrowConflict
}
