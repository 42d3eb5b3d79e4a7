// SPDX-License-Identifier: GPL-3.0-or-later

package refcell

import "time"

// Config holds common configuration for refcell constructors.
//
// Pass this to constructor functions to pre-wire dependencies.
// All fields have sensible defaults set by [NewConfig].
type Config struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewConfig] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// Metrics receives lifecycle and borrow counters.
	//
	// Set by [NewConfig] to a fresh [*Metrics]. Callers that want a
	// shared view across several cells assign their own instance.
	Metrics *Metrics

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time
}

// NewConfig creates a [*Config] with sensible defaults.
func NewConfig() *Config {
	return &Config{
		ErrClassifier: DefaultErrClassifier,
		Metrics:       NewMetrics(),
		TimeNow:       time.Now,
	}
}
