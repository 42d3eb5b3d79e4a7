// SPDX-License-Identifier: GPL-3.0-or-later

package refcell

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewCellID returns a UUIDv7 identifying a cell.
//
// Each cell and frozen value created by this package carries such an ID
// and includes it in every log entry it emits, enabling correlation of
// lifecycle and borrow events across a log stream that interleaves
// several cells.
//
// Callers composing their own loggers can attach the same ID with
// [*slog.Logger.With] so that surrounding application entries correlate
// with the cell's own entries.
//
// This function panics if the system random number generator fails,
// which should only happen under extraordinary circumstances.
func NewCellID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
