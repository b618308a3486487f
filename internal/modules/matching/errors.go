package matching

import "errors"

var (
	// ErrInvalidInput rejects empty opinions and out-of-range ratings before
	// any computation happens.
	ErrInvalidInput = errors.New("matching: invalid input")

	// ErrInferenceUnavailable means a model backend could not be reached or
	// timed out. The stance classifier degrades to neutral on it; the
	// dimension scorer propagates it, since there is no safe default for a
	// seven-axis vector.
	ErrInferenceUnavailable = errors.New("matching: inference unavailable")

	// ErrAggregationUndefined means a party aggregate was requested over zero
	// statement matches. Callers must report "insufficient data", never a
	// numeric score.
	ErrAggregationUndefined = errors.New("matching: insufficient data")
)
