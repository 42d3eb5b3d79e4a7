// SPDX-License-Identifier: GPL-3.0-or-later

package refcell

import (
	"errors"

	"github.com/bassosimone/errclass"
)

// EBORROWCONFLICT is the classifier label for [ErrBorrowConflict].
const EBORROWCONFLICT = "EBORROWCONFLICT"

// ErrClassifier classifies errors into categorical strings for analysis.
//
// Implementations map errors to short, descriptive labels (e.g.,
// "EBORROWCONFLICT") that facilitate systematic analysis of structured logs.
type ErrClassifier interface {
	Classify(err error) string
}

// ErrClassifierFunc adapts a function to the [ErrClassifier] interface.
//
// This allows using simple functions as classifiers:
//
//	cfg.ErrClassifier = ErrClassifierFunc(errclass.New)
type ErrClassifierFunc func(error) string

var _ ErrClassifier = ErrClassifierFunc(nil)

// Classify implements [ErrClassifier].
func (f ErrClassifierFunc) Classify(err error) string {
	return f(err)
}

// DefaultErrClassifier labels [ErrBorrowConflict] as [EBORROWCONFLICT]
// and delegates every other error to [errclass.New].
var DefaultErrClassifier = ErrClassifierFunc(func(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBorrowConflict):
		return EBORROWCONFLICT
	default:
		return errclass.New(err)
	}
})
