package schema

import "time"

// FilterSpec describes a compound set of selection predicates for filesystem
// elements. Predicates combine with AND semantics: an [Entry] is selected only
// when it satisfies every predicate that is present. Zero values leave the
// respective predicate unconstrained, so the zero FilterSpec selects every
// element.
//
// FilterSpecs are meant to be passed by value and are safe for concurrent
// reads.
type FilterSpec struct {
	// Extension restricts selection to files carrying the given extension,
	// matched case-insensitively and without the leading dot. Directories
	// never satisfy a set Extension.
	Extension string

	// NamePattern is a glob pattern matched against the base name of an
	// element.
	NamePattern string

	// IncludeHidden also selects dotfile elements. When false, a hidden
	// directory excludes its entire subtree from traversal.
	IncludeHidden bool

	// Recursive descends into subdirectories during traversal.
	Recursive bool

	// MinSize and MaxSize bound the file size in bytes (inclusive). Values
	// of zero or below leave the respective bound open. Directories are not
	// size-constrained.
	MinSize int64
	MaxSize int64

	// ModifiedAfter and ModifiedBefore bound the modification time
	// (inclusive). Zero times leave the respective bound open. Directories
	// are not time-constrained.
	ModifiedAfter  time.Time
	ModifiedBefore time.Time
}
