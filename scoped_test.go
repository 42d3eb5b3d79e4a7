// SPDX-License-Identifier: GPL-3.0-or-later

package refcell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// View runs fn under a shared borrow and returns its result.
func TestView(t *testing.T) {
	cfg := NewConfig()
	cell, handle := NewCell(cfg, DefaultSLogger(), []string{"a", "b"})

	length, err := View(handle, func(value []string) (int, error) {
		// While fn runs the borrow is live.
		assert.Equal(t, "shared(1)", cell.State())
		return len(value), nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, length)
	assert.Equal(t, "unborrowed", cell.State())
	handle.Drop()
}

// Update runs fn under an exclusive borrow and mutates in place.
func TestUpdate(t *testing.T) {
	cfg := NewConfig()
	cell, handle := NewCell(cfg, DefaultSLogger(), 5)

	doubled, err := Update(handle, func(value *int) (int, error) {
		assert.Equal(t, "exclusive", cell.State())
		*value *= 2
		return *value, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 10, doubled)
	assert.Equal(t, "unborrowed", cell.State())

	got, err := View(handle, func(value int) (int, error) {
		return value, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 10, got)
	handle.Drop()
}

// A rejected borrow is surfaced without calling fn.
func TestScopedBorrowConflict(t *testing.T) {
	cfg := NewConfig()
	_, handle := NewCell(cfg, DefaultSLogger(), 5)

	mut, err := handle.BorrowMut()
	require.NoError(t, err)

	_, err = View(handle, func(value int) (int, error) {
		t.Fatal("fn should not run")
		return 0, nil
	})
	require.ErrorIs(t, err, ErrBorrowConflict)

	_, err = Update(handle, func(value *int) (int, error) {
		t.Fatal("fn should not run")
		return 0, nil
	})
	require.ErrorIs(t, err, ErrBorrowConflict)

	mut.Release()
	handle.Drop()
}

// The borrow is released when fn returns an error.
func TestScopedReleaseOnError(t *testing.T) {
	cfg := NewConfig()
	cell, handle := NewCell(cfg, DefaultSLogger(), 5)
	expected := errors.New("mocked error")

	_, err := Update(handle, func(value *int) (int, error) {
		return 0, expected
	})
	require.ErrorIs(t, err, expected)

	// The error exit path released the guard.
	assert.Equal(t, "unborrowed", cell.State())
	mut, err := handle.BorrowMut()
	require.NoError(t, err)
	mut.Release()
	handle.Drop()
}

// The borrow is released even when fn panics.
func TestScopedReleaseOnPanic(t *testing.T) {
	cfg := NewConfig()
	cell, handle := NewCell(cfg, DefaultSLogger(), 5)

	assert.Panics(t, func() {
		_, _ = Update(handle, func(value *int) (int, error) {
			panic("mocked panic")
		})
	})

	assert.Equal(t, "unborrowed", cell.State())
	mut, err := handle.BorrowMut()
	require.NoError(t, err)
	mut.Release()
	handle.Drop()
}
