package generator

import "errors"

var (
	// ErrInvalidInput is returned when a builder is called with arguments it
	// cannot work with (too few orders, empty date range, bad quantity...).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvariantViolation is returned when generated data breaks one of the
	// guarantees the seed promises. It always means a generator bug.
	ErrInvariantViolation = errors.New("invariant violation")
)
