package schema

// CheckOp describes the access operation probed for a [CheckResult].
type CheckOp int

const (
	// CheckOpRead probes for reading an element's contents.
	CheckOpRead CheckOp = iota

	// CheckOpWrite probes for creating elements inside a directory.
	CheckOpWrite

	// CheckOpTraverse probes for descending through a directory.
	CheckOpTraverse
)

// String implements [fmt.Stringer] for a [CheckOp].
func (op CheckOp) String() string {
	switch op {
	case CheckOpRead:
		return "read"
	case CheckOpWrite:
		return "write"
	case CheckOpTraverse:
		return "traverse"
	default:
		return "unknown"
	}
}

// CheckResult is the outcome of a single permission probe against the live
// filesystem.
type CheckResult struct {
	// Path is the probed path.
	Path string

	// Op is the probed operation.
	Op CheckOp

	// Granted reports whether the probe succeeded.
	Granted bool

	// Cause carries the classified probe failure; nil when granted.
	Cause error

	// Remediation is an advisory hint on resolving the failure; empty when
	// granted. It never influences control flow.
	Remediation string
}
