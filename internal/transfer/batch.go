package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nightveil/fops/internal/filter"
	"github.com/nightveil/fops/internal/queue"
	"github.com/nightveil/fops/internal/schema"
	"github.com/nightveil/fops/internal/walk"
)

// batchItem is one enumerated transfer candidate of a batch execution.
type batchItem struct {
	entry    schema.Entry
	destPath string
}

// ExecuteBatch transfers all elements of a source tree that pass the filter
// criteria into the destination root, with relative paths preserved. Regular
// files, symbolic links and empty directories transfer as elements of their
// own; non-empty directories materialize at the destination through the
// elements inside of them.
//
// The destination root is created when absent and held under an advisory
// lock for the duration of the batch, so that concurrent batch executions
// cannot interleave inside of it. Individual element failures are recorded
// into the returned [Report] and never abort the remaining elements; only
// structural failures (an unusable destination root, invalid filter criteria
// or an unwalkable source root) abort the batch as a whole.
//
// A move batch removes source directories left empty by the relocations,
// deepest-first, sparing the source root itself.
func (t *Handler) ExecuteBatch(ctx context.Context, req schema.BatchRequest) (*Report, error) {
	matcher, err := filter.Compile(req.Filter)
	if err != nil {
		return nil, fmt.Errorf("(transfer) %w", err)
	}

	if err := t.OSOps.MkdirAll(req.DestRoot, defaultDirPerm); err != nil {
		return nil, fmt.Errorf("(transfer) failed to create destination root: %w", err)
	}

	if write := t.Checks.CheckWrite(req.DestRoot); !write.Granted {
		return nil, fmt.Errorf("(transfer) destination root not writable: %w", write.Cause)
	}

	lock := newRunLock(req.DestRoot)
	if err := lock.TryLock(); err != nil {
		return nil, err
	}
	defer lock.Unlock()

	report := &Report{Mode: req.Mode}
	q := t.newBatchQueue()

	if err := t.enqueueBatch(ctx, q, req, matcher, report); err != nil {
		return nil, err
	}

	var movedSources []string

	for {
		if ctx.Err() != nil {
			break
		}

		item, ok := q.Dequeue()
		if !ok {
			break
		}

		q.SetProcessing(item)

		res := t.processItem(ctx, item, req)

		switch res.Status {
		case StatusCompleted:
			q.SetSuccess(item)

			if req.Mode == schema.TransferMove {
				movedSources = append(movedSources, item.entry.Path)
			}

			slog.Info("Processed:",
				"path", item.destPath,
				"job", item.entry.Path,
			)

		case StatusCancelled:
			q.SetSkipped(item)

			slog.Info("Skipped job: declined at prompt",
				"path", item.destPath,
				"job", item.entry.Path,
			)

		default:
			q.SetSkipped(item)

			slog.Warn("Skipped job: failure during processing",
				"path", item.destPath,
				"err", res.Err,
				"job", item.entry.Path,
			)
		}

		report.add(res)
	}

	if req.Mode == schema.TransferMove {
		t.cleanSourceDirectories(req.SourceRoot, movedSources)
	}

	if ctx.Err() != nil {
		return report, fmt.Errorf("(transfer) %w: %w", ErrContextError, ctx.Err())
	}

	return report, nil
}

// enqueueBatch walks the source tree and enqueues all elements passing the
// filter criteria as transfer candidates. Elements that could not be read
// during the walk are recorded into the report as failed results right away.
func (t *Handler) enqueueBatch(ctx context.Context, q *queue.Queue[*batchItem], req schema.BatchRequest, matcher *filter.Matcher, report *Report) error {
	w := walk.NewWalker(t.OSOps, req.SourceRoot, req.Filter.Recursive)

	for w.Next() {
		if ctx.Err() != nil {
			break
		}

		e := w.Entry()
		report.Walked++

		if err := w.EntryErr(); err != nil {
			report.add(Result{
				Request: schema.TransferRequest{SourcePath: e.Path, Mode: req.Mode},
				Status:  StatusFailed,
				Err:     err,
			})

			continue
		}

		if matcher.ExcludeSubtree(e) {
			w.SkipSubtree()
		}

		if !matcher.Matches(e) {
			continue
		}

		rel, err := filepath.Rel(req.SourceRoot, e.Path)
		if err != nil {
			report.add(Result{
				Request: schema.TransferRequest{SourcePath: e.Path, Mode: req.Mode},
				Status:  StatusFailed,
				Err:     fmt.Errorf("(transfer) failed to relativize path: %w", err),
			})

			continue
		}

		if e.IsDir {
			isEmpty, err := t.isEmptyDir(e.Path)
			if err != nil {
				slog.Warn("Skipped directory: failure establishing emptiness",
					"path", e.Path,
					"err", err,
				)

				continue
			}

			if !isEmpty {
				continue
			}
		}

		q.Enqueue(&batchItem{
			entry:    e,
			destPath: filepath.Join(req.DestRoot, rel),
		})
	}

	if err := w.Err(); err != nil {
		return fmt.Errorf("(transfer) %w", err)
	}

	return nil
}

// processItem transfers one enqueued batch candidate; directories resolve to
// a destination directory creation, everything else runs through the regular
// single-element lifecycle against the already re-rooted destination path.
func (t *Handler) processItem(ctx context.Context, item *batchItem, req schema.BatchRequest) Result {
	if item.entry.IsDir {
		return t.processDirectory(item, req)
	}

	return t.run(ctx, schema.TransferRequest{
		SourcePath:          item.entry.Path,
		DestPath:            item.destPath,
		Mode:                req.Mode,
		Overwrite:           req.Overwrite,
		PreservePermissions: req.PreservePermissions,
	}, item.destPath)
}

// processDirectory recreates an empty source directory under the destination
// root; a move removes the source directory after its destination
// counterpart exists.
func (t *Handler) processDirectory(item *batchItem, req schema.BatchRequest) Result {
	res := Result{
		Request: schema.TransferRequest{
			SourcePath:          item.entry.Path,
			DestPath:            item.destPath,
			Mode:                req.Mode,
			Overwrite:           req.Overwrite,
			PreservePermissions: req.PreservePermissions,
		},
		Status: StatusFailed,
	}

	if err := t.OSOps.MkdirAll(item.destPath, item.entry.Mode.Perm()); err != nil {
		res.Err = fmt.Errorf("(transfer) failed to create destination directory: %w", err)

		return res
	}

	if req.PreservePermissions {
		if err := t.ensurePermissions(item.destPath, item.entry.Mode); err != nil {
			res.Err = fmt.Errorf("(transfer) %w", err)

			return res
		}

		if err := t.ensureTimestamp(item.destPath, item.entry.ModifiedAt); err != nil {
			res.Err = fmt.Errorf("(transfer) %w", err)

			return res
		}
	}

	if req.Mode == schema.TransferMove {
		if err := t.OSOps.Remove(item.entry.Path); err != nil {
			res.Err = fmt.Errorf("(transfer) failed to remove source directory: %w", err)

			return res
		}
	}

	res.Status = StatusCompleted

	return res
}

// isEmptyDir reports whether a directory holds no entries at all.
func (t *Handler) isEmptyDir(path string) (bool, error) {
	entries, err := t.OSOps.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("failed to read directory: %w", err)
	}

	return len(entries) == 0, nil
}

// cleanSourceDirectories removes source directories that relocations have
// left behind empty, processing deepest paths first so that emptied chains
// collapse bottom-up. The source root itself is never removed. All removal
// failures are logged and skipped, as the transfers themselves have already
// concluded.
func (t *Handler) cleanSourceDirectories(sourceRoot string, movedSources []string) {
	root := filepath.Clean(sourceRoot)
	prefix := root + string(filepath.Separator)

	seen := make(map[string]struct{})

	var dirs []string

	for _, src := range movedSources {
		for dir := filepath.Dir(src); dir != root && strings.HasPrefix(dir, prefix); dir = filepath.Dir(dir) {
			if _, ok := seen[dir]; ok {
				break
			}

			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}

	sort.Slice(dirs, func(i, j int) bool {
		return calculateDirectoryDepth(dirs[i]) > calculateDirectoryDepth(dirs[j])
	})

	removed := make(map[string]struct{})

	for _, dir := range dirs {
		if _, alreadyRemoved := removed[dir]; alreadyRemoved {
			continue
		}

		isEmpty, err := t.isEmptyDir(dir)
		if err != nil {
			slog.Warn("Warning (cleanup): failure establishing source directory emptiness (skipped)",
				"path", dir,
				"err", err,
			)

			continue
		}

		if isEmpty {
			if err := t.OSOps.Remove(dir); err != nil {
				slog.Warn("Warning (cleanup): failure removing empty source directory (skipped)",
					"path", dir,
					"err", err,
				)

				continue
			}

			removed[dir] = struct{}{}
		}
	}
}

// calculateDirectoryDepth returns the nesting depth of a path, for ordering
// directory removals deepest-first.
func calculateDirectoryDepth(path string) int {
	return strings.Count(filepath.Clean(path), string(filepath.Separator))
}
