package search

import "errors"

// ErrInvalidCriteria is an error that occurs when the search criteria can
// not be compiled, e.g. because of a malformed content regular expression or
// filter pattern.
var ErrInvalidCriteria = errors.New("invalid search criteria")
