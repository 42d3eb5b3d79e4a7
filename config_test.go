// SPDX-License-Identifier: GPL-3.0-or-later

package refcell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	require.NotNil(t, cfg)

	// ErrClassifier should be DefaultErrClassifier
	assert.Equal(t, "", cfg.ErrClassifier.Classify(nil))
	assert.Equal(t, EBORROWCONFLICT, cfg.ErrClassifier.Classify(ErrBorrowConflict))

	// Metrics should be a fresh instance with zeroed counters
	require.NotNil(t, cfg.Metrics)
	assert.Equal(t, int64(0), cfg.Metrics.SharedBorrows.Load())

	// TimeNow should be set and return a valid time
	now := cfg.TimeNow()
	assert.False(t, now.IsZero())
}

// Distinct configs get distinct metrics instances.
func TestNewConfigMetricsIsolation(t *testing.T) {
	cfg1 := NewConfig()
	cfg2 := NewConfig()

	cfg1.Metrics.SharedBorrows.Add(1)
	assert.Equal(t, int64(0), cfg2.Metrics.SharedBorrows.Load())
}
