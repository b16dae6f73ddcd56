package transfer

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// ensurePermissions carries the permission bits of the source element over
// to the destination element.
func (t *Handler) ensurePermissions(path string, mode os.FileMode) error {
	if err := t.OSOps.Chmod(path, mode.Perm()); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	return nil
}

// ensureTimestamp carries the modification time of the source element over
// to the destination element; the access time is set alongside it.
func (t *Handler) ensureTimestamp(path string, modified time.Time) error {
	spec := unix.NsecToTimespec(modified.UnixNano())

	ts := []unix.Timespec{spec, spec}
	if err := t.UnixOps.UtimesNano(path, ts); err != nil {
		return fmt.Errorf("failed to set timestamp on %s: %w", path, err)
	}

	return nil
}
