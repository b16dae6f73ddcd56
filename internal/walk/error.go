package walk

import "errors"

var (
	// ErrRootUnavailable is an error that occurs when the traversal root
	// does not exist, is not a directory or cannot be opened for reading.
	// It is fatal to the whole traversal.
	ErrRootUnavailable = errors.New("root unavailable")

	// ErrRootNotDirectory is an error that occurs when the traversal root
	// exists but is not a directory.
	ErrRootNotDirectory = errors.New("root is not a directory")

	// ErrEntryUnreadable is an error that occurs when a single element or a
	// directory listing cannot be read mid-traversal. It is recoverable;
	// traversal continues with the remaining elements.
	ErrEntryUnreadable = errors.New("entry unreadable")
)
