// Package transfer implements the copy and move engine for single elements
// and for filtered directory trees. File payloads stage through temporary
// files with end-to-end checksum verification before an atomic rename,
// conflicts with existing destinations are resolved against an overwrite
// policy, and cross-device moves fall back to a copy-and-delete strategy that
// reports partially moved elements instead of silently losing them.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/nightveil/fops/internal/queue"
	"github.com/nightveil/fops/internal/schema"
	"golang.org/x/sys/unix"
)

const (
	// tmpSuffix is appended to in-flight destination files, so that aborted
	// transfers never leave a partial element under the final name.
	tmpSuffix = ".fops"

	// defaultDirPerm is the creation mode for destination directories that
	// do not mirror an existing source directory.
	defaultDirPerm = 0o755
)

// osProvider is an interface for abstracting OS-related methods, so that
// implementing structures can be mocked in testing.
type osProvider interface {
	Chmod(name string, mode os.FileMode) error
	Lstat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Readlink(name string) (string, error)
	Remove(name string) error
	Rename(oldpath string, newpath string) error
	Stat(name string) (os.FileInfo, error)
}

// unixProvider is an interface for abstracting Unix-related methods, so that
// implementing structures can be mocked in testing.
type unixProvider interface {
	Symlink(oldpath string, newpath string) error
	UtimesNano(path string, times []unix.Timespec) error
}

// checkProvider is an interface for abstracting permission pre-flights, so
// that implementing structures can be mocked in testing.
type checkProvider interface {
	CheckRead(path string) schema.CheckResult
	CheckWrite(path string) schema.CheckResult
}

// Handler is the principal implementation structure of the package.
type Handler struct {
	// OSOps contains an implementation of [osProvider].
	OSOps osProvider

	// UnixOps contains an implementation of [unixProvider].
	UnixOps unixProvider

	// Checks contains an implementation of [checkProvider].
	Checks checkProvider

	// Confirm resolves interactive overwrite prompts; a nil function
	// declines every prompt.
	Confirm schema.ConfirmFunc

	// Verbose receives one line per transferred element; it is never nil.
	Verbose io.Writer

	mu    sync.RWMutex
	queue *queue.Queue[*batchItem]
}

// NewHandler returns a pointer to a new [Handler].
func NewHandler(osOps osProvider, unixOps unixProvider, checks checkProvider, confirm schema.ConfirmFunc, verbose io.Writer) *Handler {
	if verbose == nil {
		verbose = io.Discard
	}

	return &Handler{
		OSOps:   osOps,
		UnixOps: unixOps,
		Checks:  checks,
		Confirm: confirm,
		Verbose: verbose,
		queue:   queue.NewQueue[*batchItem](),
	}
}

// Progress returns the point-in-time progress of the most recent batch
// queue, for consumption by an observing user interface.
func (t *Handler) Progress() queue.Progress {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.queue.Progress()
}

// newBatchQueue installs a fresh queue for a starting batch execution, as
// progress accounting never spans more than one batch.
func (t *Handler) newBatchQueue() *queue.Queue[*batchItem] {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.queue = queue.NewQueue[*batchItem]()

	return t.queue
}

// Execute processes a single transfer request through its full lifecycle:
// source validation, destination resolution, conflict handling and the
// actual payload transfer. The outcome is returned as a [Result]; operational
// failures are recorded inside it and never panic or abort.
//
// A destination path that names an existing directory is resolved to a
// like-named element inside that directory first.
func (t *Handler) Execute(ctx context.Context, req schema.TransferRequest) Result {
	return t.run(ctx, req, t.resolveDest(req.SourcePath, req.DestPath))
}

// run processes a transfer request against an already resolved destination
// path; batch execution enters here to bypass the into-directory resolution
// of [Handler.Execute].
func (t *Handler) run(ctx context.Context, req schema.TransferRequest, destPath string) Result {
	res := Result{Request: req, Status: StatusFailed}

	src, err := t.OSOps.Lstat(req.SourcePath)
	if err != nil {
		res.Err = fmt.Errorf("(transfer) failed to access source: %w", err)

		return res
	}

	if src.IsDir() {
		res.Err = fmt.Errorf("(transfer) %w: %s", ErrSourceIsDirectory, req.SourcePath)

		return res
	}

	isLink := src.Mode()&fs.ModeSymlink != 0

	if !isLink && !src.Mode().IsRegular() {
		res.Err = fmt.Errorf("(transfer) %w: %s", ErrUnsupportedType, src.Mode().Type())

		return res
	}

	if !isLink {
		if read := t.Checks.CheckRead(req.SourcePath); !read.Granted {
			res.Err = fmt.Errorf("(transfer) source not readable: %w", read.Cause)
			res.Remediation = read.Remediation

			return res
		}
	}

	destDir := filepath.Dir(destPath)

	if err := t.OSOps.MkdirAll(destDir, defaultDirPerm); err != nil {
		res.Err = fmt.Errorf("(transfer) failed to create destination directory: %w", err)

		return res
	}

	if write := t.Checks.CheckWrite(destDir); !write.Granted {
		res.Err = fmt.Errorf("(transfer) destination not writable: %w", write.Cause)
		res.Remediation = write.Remediation

		return res
	}

	overwrite, cancelled, err := t.resolveConflict(destPath, req.Overwrite)
	if err != nil {
		res.Err = err

		return res
	}

	if cancelled {
		res.Status = StatusCancelled

		return res
	}

	switch req.Mode {
	case schema.TransferMove:
		res.BytesMoved, res.Status, res.Err = t.transferMove(ctx, src, req.SourcePath, destPath, overwrite)
	case schema.TransferCopy:
		res.BytesMoved, res.Status, res.Err = t.transferCopy(ctx, src, req.SourcePath, destPath, overwrite, req.PreservePermissions)
	default:
		res.Err = fmt.Errorf("(transfer) unknown transfer mode: %v", req.Mode)

		return res
	}

	if res.Status == StatusCompleted || res.Status == StatusPartial {
		fmt.Fprintf(t.Verbose, "%s: %s -> %s\n", req.Mode, req.SourcePath, destPath)
	}

	return res
}

// resolveDest establishes the final destination path of a transfer request;
// an existing directory destination receives the source element inside of it
// under its original base name.
func (t *Handler) resolveDest(srcPath string, destPath string) string {
	if info, err := t.OSOps.Stat(destPath); err == nil && info.IsDir() {
		return filepath.Join(destPath, filepath.Base(srcPath))
	}

	return destPath
}

// resolveConflict checks the final destination path for an existing element
// and resolves any conflict against the overwrite policy of the request. It
// reports whether an existing destination may be replaced and whether the
// user has declined the transfer at an interactive prompt.
func (t *Handler) resolveConflict(destPath string, policy schema.OverwritePolicy) (overwrite bool, cancelled bool, err error) {
	info, err := t.OSOps.Lstat(destPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, false, nil
		}

		return false, false, fmt.Errorf("(transfer) failed to check destination existence: %w", err)
	}

	if info.IsDir() {
		return false, false, fmt.Errorf("(transfer) %w: %s", ErrDestinationIsDir, destPath)
	}

	switch policy {
	case schema.OverwriteReject:
		return false, false, fmt.Errorf("(transfer) %w: %s", ErrDestinationExists, destPath)

	case schema.OverwritePrompt:
		if t.Confirm == nil || !t.Confirm(fmt.Sprintf("overwrite %s?", destPath)) {
			return false, true, nil
		}

		return true, false, nil

	case schema.OverwriteAlways:
		return true, false, nil

	default:
		return false, false, fmt.Errorf("(transfer) unknown overwrite policy: %v", policy)
	}
}
