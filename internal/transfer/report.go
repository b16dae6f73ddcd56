package transfer

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/nightveil/fops/internal/schema"
)

// Status describes the terminal state of one processed transfer.
type Status int

const (
	// StatusCompleted marks a transfer that has fully succeeded.
	StatusCompleted Status = iota

	// StatusCancelled marks a transfer declined at an interactive
	// confirmation prompt; it is not a failure.
	StatusCancelled

	// StatusFailed marks a transfer that has failed outright, with the
	// destination element never surfacing under its final name.
	StatusFailed

	// StatusPartial marks a cross-filesystem move whose verified copy has
	// succeeded, but whose source element could not be removed afterwards.
	StatusPartial
)

// String implements the [fmt.Stringer] interface for a [Status].
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	case StatusPartial:
		return "partial"
	default:
		return "unknown"
	}
}

// Result is the recorded outcome of one processed transfer request.
type Result struct {
	// Request is the transfer request the result belongs to.
	Request schema.TransferRequest

	// Status is the terminal state the transfer has reached.
	Status Status

	// Err is the failure cause for failed and partial transfers.
	Err error

	// Remediation is an actionable hint for permission-related failures.
	Remediation string

	// BytesMoved is the payload size written for completed and partial
	// transfers; renames report the source size instead.
	BytesMoved int64
}

// Report aggregates the recorded outcomes of one batch execution.
type Report struct {
	// Mode is the transfer mode the batch was executed under.
	Mode schema.TransferMode

	// Results holds one [Result] per processed batch element.
	Results []Result

	// Walked is the total amount of elements produced by the batch walk,
	// before any filtering was applied.
	Walked int

	// BytesMoved is the total payload size written across the batch.
	BytesMoved int64
}

// add records a [Result] into the report, keeping the byte total current.
func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	r.BytesMoved += res.BytesMoved
}

// count returns the amount of recorded results carrying the given status.
func (r *Report) count(status Status) int {
	total := 0

	for _, res := range r.Results {
		if res.Status == status {
			total++
		}
	}

	return total
}

// Completed returns the amount of fully succeeded transfers.
func (r *Report) Completed() int {
	return r.count(StatusCompleted)
}

// Cancelled returns the amount of transfers declined at a prompt.
func (r *Report) Cancelled() int {
	return r.count(StatusCancelled)
}

// Failed returns the amount of outright failed transfers.
func (r *Report) Failed() int {
	return r.count(StatusFailed)
}

// Partial returns the amount of partially moved elements.
func (r *Report) Partial() int {
	return r.count(StatusPartial)
}

// Success reports whether the batch has finished without failures and
// without partially moved elements.
func (r *Report) Success() bool {
	return r.Failed() == 0 && r.Partial() == 0
}

// Summary renders a single-line human-readable account of the report.
func (r *Report) Summary() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s: %d completed (%s)", r.Mode, r.Completed(), humanize.Bytes(uint64(r.BytesMoved)))

	if c := r.Cancelled(); c > 0 {
		fmt.Fprintf(&sb, ", %d cancelled", c)
	}

	fmt.Fprintf(&sb, ", %d failed", r.Failed())

	if p := r.Partial(); p > 0 {
		fmt.Fprintf(&sb, ", %d partially moved (source retained)", p)
	}

	return sb.String()
}
