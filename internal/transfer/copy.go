package transfer

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/zeebo/blake3"
)

//nolint:containedctx
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, context.Canceled
	default:
		return cr.reader.Read(p)
	}
}

// copyFile copies the payload of a regular file to the destination path. The
// payload streams into a temporary file next to the destination, with
// rolling hashes established for both the read and the written stream. Only
// after a hash comparison and flush to disk is the temporary file renamed to
// the final destination, so that no partial or corrupt element can ever
// surface under the destination path.
//
// Unless overwriting was agreed beforehand, an element appearing under the
// destination path while the transfer was in flight fails the transfer with
// [ErrDestinationExists] as a last line of defense.
func (t *Handler) copyFile(ctx context.Context, srcPath string, destPath string, perm os.FileMode, overwrite bool) (int64, error) {
	var transferComplete bool

	srcFile, err := t.OSOps.Open(srcPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	tmpPath := destPath + tmpSuffix
	defer func() {
		if !transferComplete {
			t.OSOps.Remove(tmpPath) //nolint:errcheck
		}
	}()

	dstFile, err := t.OSOps.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, perm)
	if err != nil {
		return 0, fmt.Errorf("failed to open destination file %s: %w", tmpPath, err)
	}
	defer dstFile.Close()

	srcHasher := blake3.New()
	dstHasher := blake3.New()

	ctxReader := &contextReader{
		ctx:    ctx,
		reader: io.TeeReader(srcFile, srcHasher),
	}
	multiWriter := io.MultiWriter(dstFile, dstHasher)

	written, err := io.Copy(multiWriter, ctxReader)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, fmt.Errorf("transfer canceled: %w", err)
		}

		return 0, fmt.Errorf("failed to copy file: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		return 0, fmt.Errorf("failed to sync destination fs: %w", err)
	}

	srcChecksum := hex.EncodeToString(srcHasher.Sum(nil))
	dstChecksum := hex.EncodeToString(dstHasher.Sum(nil))

	if srcChecksum != dstChecksum {
		return 0, fmt.Errorf("%w: %s (src) != %s (dst)", ErrHashMismatch, srcChecksum, dstChecksum)
	}

	if !overwrite {
		if _, err := t.OSOps.Lstat(destPath); err == nil {
			return 0, fmt.Errorf("%w: %s", ErrDestinationExists, destPath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("failed to check rename destination existence: %w", err)
		}
	}

	if err := t.OSOps.Rename(tmpPath, destPath); err != nil {
		return 0, fmt.Errorf("failed to rename temporary file to destination file: %w", err)
	}

	transferComplete = true

	return written, nil
}

// copySymlink recreates a symbolic link under the destination path, carrying
// over the literal link target of the source. The link target is never
// resolved, so relative targets keep their meaning relative to the new
// location and broken links transfer as-is.
func (t *Handler) copySymlink(srcPath string, destPath string, overwrite bool) error {
	target, err := t.OSOps.Readlink(srcPath)
	if err != nil {
		return fmt.Errorf("failed to read link target: %w", err)
	}

	if overwrite {
		if err := t.OSOps.Remove(destPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove existing destination: %w", err)
		}
	}

	if err := t.UnixOps.Symlink(target, destPath); err != nil {
		return fmt.Errorf("failed to create symlink: %w", err)
	}

	return nil
}
