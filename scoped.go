// SPDX-License-Identifier: GPL-3.0-or-later

package refcell

// View runs fn under a shared borrow of h's cell.
//
// The borrow is acquired before fn runs and released on every exit
// path, including when fn returns an error or panics. View fails with
// an error matching [ErrBorrowConflict], without calling fn, when the
// borrow itself is rejected; otherwise it returns fn's result verbatim.
//
// fn must not retain the value beyond its own return when T contains
// pointers or slices: the access right ends with the borrow.
func View[T, R any](h *Handle[T], fn func(value T) (R, error)) (R, error) {
	guard, err := h.Borrow()
	if err != nil {
		var zero R
		return zero, err
	}
	defer guard.Release()
	return fn(guard.Value())
}

// Update runs fn under an exclusive borrow of h's cell.
//
// The borrow is acquired before fn runs and released on every exit
// path, including when fn returns an error or panics. Update fails with
// an error matching [ErrBorrowConflict], without calling fn, when the
// borrow itself is rejected; otherwise it returns fn's result verbatim.
//
// fn receives a pointer to the cell's value and may mutate it in place.
// fn must not retain the pointer beyond its own return: the access
// right ends with the borrow.
func Update[T, R any](h *Handle[T], fn func(value *T) (R, error)) (R, error) {
	guard, err := h.BorrowMut()
	if err != nil {
		var zero R
		return zero, err
	}
	defer guard.Release()
	return fn(&guard.cell.value)
}
