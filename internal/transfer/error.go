package transfer

import "errors"

var (
	// ErrContextError is an error that occurs when the context is canceled
	// while a batch is still executing.
	ErrContextError = errors.New("context was canceled")

	// ErrDestBusy is an error that occurs when another process already holds
	// the batch lock of the destination root.
	ErrDestBusy = errors.New("destination is locked by another operation")

	// ErrDestinationExists is an error that occurs when the final
	// destination already exists and the overwrite policy rejects replacing
	// it.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrDestinationIsDir is an error that occurs when the final destination
	// resolves to an existing directory, which a file transfer can never
	// replace.
	ErrDestinationIsDir = errors.New("destination is a directory")

	// ErrHashMismatch is an error that occurs when there is a source and
	// destination hash mismatch, which usually means that there are
	// underlying transfer or hardware issues.
	ErrHashMismatch = errors.New("hash mismatch")

	// ErrPartialMove is an error that occurs when a cross-device move has
	// produced a verified destination copy, but the source could not be
	// removed afterwards. Both elements remain on disk.
	ErrPartialMove = errors.New("source copied but not removed")

	// ErrSourceIsDirectory is an error that occurs when a single-element
	// transfer is pointed at a directory; directory trees are transferred
	// through batch requests.
	ErrSourceIsDirectory = errors.New("source is a directory")

	// ErrUnsupportedType is an error that occurs when the source element is
	// neither a regular file nor a symbolic link and the transfer functions
	// do not know how to process it.
	ErrUnsupportedType = errors.New("unsupported element type")
)
