// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package recommend

import "errors"

var (
	// ErrEmptyInput matches *EmptyInputError with errors.Is.
	ErrEmptyInput = errors.New("no interactions to build a matrix from")

	// ErrInvalidInteraction is wrapped by errors for records with a
	// negative or non-finite signal.
	ErrInvalidInteraction = errors.New("invalid interaction")

	// ErrNotReady is returned by the Engine before the first model is built.
	ErrNotReady = errors.New("recommendation model not built yet")

	// ErrBuildInProgress is returned when Rebuild is called while another
	// rebuild is running.
	ErrBuildInProgress = errors.New("model rebuild already in progress")

	// ErrNoDataProvider is returned by Rebuild when no DataProvider is set.
	ErrNoDataProvider = errors.New("data provider not set")
)

// EmptyInputError is returned when a matrix is requested over zero
// interactions.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return ErrEmptyInput.Error()
}

// Is lets errors.Is(err, ErrEmptyInput) match.
func (e *EmptyInputError) Is(target error) bool {
	return target == ErrEmptyInput
}
