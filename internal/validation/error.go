package validation

import "errors"

var (
	// ErrCheckFailed is an error that occurs when a permission probe fails
	// for a reason that is neither a missing path nor a refused access.
	ErrCheckFailed = errors.New("check failed")

	// ErrNotDirectory is an error that occurs when a probe requiring a
	// directory is pointed at a non-directory element.
	ErrNotDirectory = errors.New("not a directory")

	// ErrNotFound is an error that occurs when the probed path does not
	// exist.
	ErrNotFound = errors.New("path not found")

	// ErrPermissionDenied is an error that occurs when the operating system
	// refuses the probed access.
	ErrPermissionDenied = errors.New("permission denied")
)
