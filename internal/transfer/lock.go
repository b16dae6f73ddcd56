package transfer

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockFileName is the advisory lock file placed into a destination root for
// the duration of a batch execution.
const lockFileName = ".fops.lock"

// runLock guards a destination root against concurrent batch mutation from
// multiple processes. The lock is advisory and file-based, so it only
// composes with other cooperating instances.
type runLock struct {
	flock *flock.Flock
}

// newRunLock returns a pointer to a new [runLock] for a destination root.
func newRunLock(destRoot string) *runLock {
	return &runLock{
		flock: flock.New(filepath.Join(destRoot, lockFileName)),
	}
}

// TryLock acquires the lock without blocking, failing with [ErrDestBusy]
// when another process already holds it.
func (l *runLock) TryLock() error {
	locked, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("(transfer) failed to acquire destination lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("(transfer) %w: %s", ErrDestBusy, l.flock.Path())
	}

	return nil
}

// Unlock releases the lock; release failures are logged and not propagated,
// as the batch outcome no longer depends on them.
func (l *runLock) Unlock() {
	if err := l.flock.Unlock(); err != nil {
		slog.Warn("Failed releasing destination lock", "path", l.flock.Path(), "err", err)
	}
}
