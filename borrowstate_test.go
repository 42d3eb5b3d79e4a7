// SPDX-License-Identifier: GPL-3.0-or-later

package refcell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The zero value is the unborrowed state.
func TestBorrowStateZeroValue(t *testing.T) {
	var state borrowState
	assert.True(t, state.idle())
	assert.Equal(t, "unborrowed", state.String())
}

// Transitions follow the shared-XOR-exclusive state machine.
func TestBorrowStateTransitions(t *testing.T) {
	tests := []struct {
		// name describes what this test case verifies.
		name string

		// setup drives the state into the configuration under test.
		setup func(s *borrowState)

		// tryShared is the expected tryBorrowShared outcome.
		tryShared bool

		// tryExclusive is the expected tryBorrowExclusive outcome.
		tryExclusive bool

		// wantState is the expected rendering before the attempts.
		wantState string
	}{
		{
			name:         "unborrowed admits both",
			setup:        func(s *borrowState) {},
			tryShared:    true,
			tryExclusive: true,
			wantState:    "unborrowed",
		},

		{
			name: "shared admits shared only",
			setup: func(s *borrowState) {
				require.True(t, s.tryBorrowShared())
			},
			tryShared:    true,
			tryExclusive: false,
			wantState:    "shared(1)",
		},

		{
			name: "multiple shared admits shared only",
			setup: func(s *borrowState) {
				require.True(t, s.tryBorrowShared())
				require.True(t, s.tryBorrowShared())
				require.True(t, s.tryBorrowShared())
			},
			tryShared:    true,
			tryExclusive: false,
			wantState:    "shared(3)",
		},

		{
			name: "exclusive admits nothing",
			setup: func(s *borrowState) {
				require.True(t, s.tryBorrowExclusive())
			},
			tryShared:    false,
			tryExclusive: false,
			wantState:    "exclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var state borrowState
			tt.setup(&state)
			assert.Equal(t, tt.wantState, state.String())

			// Attempt each transition on an independent copy so that a
			// successful shared attempt does not disturb the exclusive one.
			shared := state
			assert.Equal(t, tt.tryShared, shared.tryBorrowShared())

			exclusive := state
			assert.Equal(t, tt.tryExclusive, exclusive.tryBorrowExclusive())
		})
	}
}

// Releasing reverts the transition that created the borrow.
func TestBorrowStateRelease(t *testing.T) {
	var state borrowState

	require.True(t, state.tryBorrowShared())
	require.True(t, state.tryBorrowShared())
	state.releaseShared()
	assert.Equal(t, "shared(1)", state.String())
	state.releaseShared()
	assert.True(t, state.idle())

	require.True(t, state.tryBorrowExclusive())
	state.releaseExclusive()
	assert.True(t, state.idle())
}

// Releasing a borrow that is not live is an invariant violation.
func TestBorrowStateReleaseWithoutBorrow(t *testing.T) {
	assert.Panics(t, func() {
		var state borrowState
		state.releaseShared()
	})

	assert.Panics(t, func() {
		var state borrowState
		state.releaseExclusive()
	})

	assert.Panics(t, func() {
		var state borrowState
		require.True(t, state.tryBorrowExclusive())
		state.releaseShared()
	})
}
