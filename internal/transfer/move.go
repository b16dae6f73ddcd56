package transfer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// transferCopy copies a single regular file or symbolic link to the
// destination path, preserving permissions and modification time only when
// that was requested. Without preservation, a fresh file carries the source
// permission bits as filtered through the process umask.
func (t *Handler) transferCopy(ctx context.Context, src os.FileInfo, srcPath string, destPath string, overwrite bool, preserve bool) (int64, Status, error) {
	if src.Mode()&fs.ModeSymlink != 0 {
		if err := t.copySymlink(srcPath, destPath, overwrite); err != nil {
			return 0, StatusFailed, fmt.Errorf("(transfer) failed to copy symlink: %w", err)
		}

		return 0, StatusCompleted, nil
	}

	written, err := t.copyFile(ctx, srcPath, destPath, src.Mode().Perm(), overwrite)
	if err != nil {
		return 0, StatusFailed, fmt.Errorf("(transfer) %w", err)
	}

	if preserve {
		if err := t.ensurePermissions(destPath, src.Mode()); err != nil {
			return written, StatusFailed, fmt.Errorf("(transfer) %w", err)
		}

		if err := t.ensureTimestamp(destPath, src.ModTime()); err != nil {
			return written, StatusFailed, fmt.Errorf("(transfer) %w", err)
		}
	}

	return written, StatusCompleted, nil
}

// transferMove relocates a single regular file or symbolic link to the
// destination path. A plain rename covers the same-filesystem case; across
// filesystem boundaries the move degrades to a verified copy with a
// subsequent source removal. A copy that succeeds while the removal fails
// yields [StatusPartial], with both elements remaining on disk.
//
// Relocations keep their identity: permissions and modification times carry
// over even without explicit preservation.
func (t *Handler) transferMove(ctx context.Context, src os.FileInfo, srcPath string, destPath string, overwrite bool) (int64, Status, error) {
	err := t.OSOps.Rename(srcPath, destPath)
	if err == nil {
		if src.Mode().IsRegular() {
			return src.Size(), StatusCompleted, nil
		}

		return 0, StatusCompleted, nil
	}

	if !errors.Is(err, unix.EXDEV) {
		return 0, StatusFailed, fmt.Errorf("(transfer) failed to rename source to destination: %w", err)
	}

	var written int64

	if src.Mode()&fs.ModeSymlink != 0 {
		if err := t.copySymlink(srcPath, destPath, overwrite); err != nil {
			return 0, StatusFailed, fmt.Errorf("(transfer) failed to copy symlink across filesystems: %w", err)
		}
	} else {
		written, err = t.copyFile(ctx, srcPath, destPath, src.Mode().Perm(), overwrite)
		if err != nil {
			return 0, StatusFailed, fmt.Errorf("(transfer) %w", err)
		}

		if err := t.ensurePermissions(destPath, src.Mode()); err != nil {
			slog.Warn("Failed preserving permissions after cross-filesystem move", "path", destPath, "err", err)
		}

		if err := t.ensureTimestamp(destPath, src.ModTime()); err != nil {
			slog.Warn("Failed preserving timestamp after cross-filesystem move", "path", destPath, "err", err)
		}
	}

	if err := t.OSOps.Remove(srcPath); err != nil {
		return written, StatusPartial, fmt.Errorf("(transfer) %w: %s: %w", ErrPartialMove, srcPath, err)
	}

	return written, StatusCompleted, nil
}
