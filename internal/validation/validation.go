// Package validation provides non-destructive permission probes against the
// live filesystem. Each probe performs the smallest real operation proving an
// access right, classifies any refusal and attaches an advisory remediation
// hint. Probes never modify existing elements; the write probe creates and
// removes a uniquely named scratch file of its own.
package validation

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/nightveil/fops/internal/schema"
	"golang.org/x/sys/unix"
)

// probePrefix names the scratch files of the write probe; a UUID suffix keeps
// concurrent probes against the same directory from colliding.
const probePrefix = ".fops-probe-"

type osProvider interface {
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Remove(name string) error
	Stat(name string) (os.FileInfo, error)
}

type unixProvider interface {
	Access(path string, mode uint32) error
}

// Handler is the principal implementation structure of the package.
type Handler struct {
	OSOps   osProvider
	UnixOps unixProvider
}

// NewHandler returns a pointer to a new validation [Handler].
func NewHandler(osOps osProvider, unixOps unixProvider) *Handler {
	return &Handler{
		OSOps:   osOps,
		UnixOps: unixOps,
	}
}

// CheckRead probes whether the given element can be opened and read. For
// directories the probe reads a single directory entry, with an empty listing
// counting as readable; for regular files it reads a single byte.
func (v *Handler) CheckRead(path string) schema.CheckResult {
	res := schema.CheckResult{Path: path, Op: schema.CheckOpRead}

	info, err := v.OSOps.Stat(path)
	if err != nil {
		return refuse(res, err)
	}

	f, err := v.OSOps.Open(path)
	if err != nil {
		return refuse(res, err)
	}
	defer f.Close()

	if info.IsDir() {
		if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
			return refuse(res, err)
		}
	} else if info.Mode().IsRegular() {
		buf := make([]byte, 1)
		if _, err := f.Read(buf); err != nil && !errors.Is(err, io.EOF) {
			return refuse(res, err)
		}
	}

	res.Granted = true

	return res
}

// CheckWrite probes whether elements can be created inside the given
// directory, by creating and again removing a uniquely named probe file.
func (v *Handler) CheckWrite(dir string) schema.CheckResult {
	res := schema.CheckResult{Path: dir, Op: schema.CheckOpWrite}

	info, err := v.OSOps.Stat(dir)
	if err != nil {
		return refuse(res, err)
	}

	if !info.IsDir() {
		return refuse(res, ErrNotDirectory)
	}

	probe := filepath.Join(dir, probePrefix+uuid.NewString())

	f, err := v.OSOps.OpenFile(probe, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return refuse(res, err)
	}
	f.Close()

	if err := v.OSOps.Remove(probe); err != nil {
		slog.Warn("Failed to remove write probe file", "path", probe, "err", err)
	}

	res.Granted = true

	return res
}

// CheckTraverse probes whether the given directory can be descended through.
func (v *Handler) CheckTraverse(dir string) schema.CheckResult {
	res := schema.CheckResult{Path: dir, Op: schema.CheckOpTraverse}

	info, err := v.OSOps.Stat(dir)
	if err != nil {
		return refuse(res, err)
	}

	if !info.IsDir() {
		return refuse(res, ErrNotDirectory)
	}

	if err := v.UnixOps.Access(dir, unix.X_OK); err != nil {
		return refuse(res, err)
	}

	res.Granted = true

	return res
}

// refuse finalizes a [schema.CheckResult] for a failed probe, classifying the
// cause and attaching the advisory remediation hint.
func refuse(res schema.CheckResult, cause error) schema.CheckResult {
	res.Granted = false
	res.Cause = classify(cause)
	res.Remediation = remediation(res.Op, res.Cause)

	return res
}

// classify maps a raw probe failure onto the package's sentinel errors.
func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("(validation) %w: %w", ErrPermissionDenied, err)

	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("(validation) %w: %w", ErrNotFound, err)

	default:
		return fmt.Errorf("(validation) %w: %w", ErrCheckFailed, err)
	}
}

// remediation picks an advisory hint for a refused probe. Hints are
// platform-aware free text and never influence control flow.
func remediation(op schema.CheckOp, cause error) string {
	switch {
	case errors.Is(cause, ErrNotFound):
		return "verify the path exists and is spelled correctly"

	case errors.Is(cause, ErrPermissionDenied):
		if runtime.GOOS == "windows" {
			return "adjust the access control list of the element or re-run from an elevated shell"
		}

		switch op {
		case schema.CheckOpRead:
			return "grant read access (e.g. chmod u+r) or re-run as the owning user"
		case schema.CheckOpWrite:
			return "grant write access on the directory (e.g. chmod u+w) or re-run as the owning user"
		case schema.CheckOpTraverse:
			return "grant execute access on the directory chain (e.g. chmod u+x)"
		default:
			return "grant the required access or re-run as the owning user"
		}

	default:
		return "inspect the underlying cause; the element may be in use or the filesystem degraded"
	}
}
