package schema

// TransferMode describes whether a transfer duplicates or relocates its
// source.
type TransferMode int

const (
	// TransferCopy duplicates the source at the destination.
	TransferCopy TransferMode = iota

	// TransferMove relocates the source to the destination.
	TransferMove
)

// String implements [fmt.Stringer] for a [TransferMode].
func (m TransferMode) String() string {
	switch m {
	case TransferCopy:
		return "copy"
	case TransferMove:
		return "move"
	default:
		return "unknown"
	}
}

// OverwritePolicy describes how a transfer treats an already existing
// destination element.
type OverwritePolicy int

const (
	// OverwriteReject fails the transfer when the destination exists.
	OverwriteReject OverwritePolicy = iota

	// OverwriteAlways replaces an existing destination.
	OverwriteAlways

	// OverwritePrompt defers the decision to a [ConfirmFunc].
	OverwritePrompt
)

// String implements [fmt.Stringer] for an [OverwritePolicy].
func (p OverwritePolicy) String() string {
	switch p {
	case OverwriteReject:
		return "reject"
	case OverwriteAlways:
		return "overwrite"
	case OverwritePrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// ConfirmFunc resolves an interactive yes/no decision. It is called from the
// requesting goroutine and may block on user input; a nil ConfirmFunc is
// treated as declining.
type ConfirmFunc func(prompt string) bool

// TransferRequest describes a single-element transfer.
//
// TransferRequests are meant to be passed by value; they carry no state beyond
// their description of the requested operation.
type TransferRequest struct {
	// SourcePath is the absolute or relative path of the element to
	// transfer. It must refer to an existing non-directory element.
	SourcePath string

	// DestPath is the path to transfer the element to. When it refers to an
	// existing directory, the element is placed inside it under its source
	// base name.
	DestPath string

	// Mode selects between copying and moving.
	Mode TransferMode

	// Overwrite selects the conflict behavior for existing destinations.
	Overwrite OverwritePolicy

	// PreservePermissions replicates the source permission bits and
	// modification time onto the destination, rather than leaving creation
	// defaults in place.
	PreservePermissions bool
}

// BatchRequest describes a filtered tree transfer from a source root into a
// destination root, preserving the relative directory structure.
type BatchRequest struct {
	// SourceRoot is the directory tree to transfer from.
	SourceRoot string

	// DestRoot is the directory tree to transfer into; it is created when
	// missing.
	DestRoot string

	// Filter selects the elements to transfer.
	Filter FilterSpec

	// Mode selects between copying and moving.
	Mode TransferMode

	// Overwrite selects the conflict behavior for existing destinations.
	Overwrite OverwritePolicy

	// PreservePermissions replicates source permission bits and modification
	// times onto the created destinations.
	PreservePermissions bool
}
