package filter

import "errors"

var (
	// ErrInvalidCriteria is an error that occurs when given selection
	// criteria cannot be compiled into a usable form. All more specific
	// criteria errors are reported alongside this error.
	ErrInvalidCriteria = errors.New("invalid criteria")

	// ErrInvalidPattern is an error that occurs when a given name pattern is
	// not a well-formed glob expression.
	ErrInvalidPattern = errors.New("invalid name pattern")

	// ErrInvalidSize is an error that occurs when a given size expression
	// cannot be parsed into a byte count.
	ErrInvalidSize = errors.New("invalid size expression")

	// ErrInvalidTime is an error that occurs when a given time expression
	// does not match any of the accepted layouts.
	ErrInvalidTime = errors.New("invalid time expression")
)
