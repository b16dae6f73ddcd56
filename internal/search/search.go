// Package search implements name and content search over filesystem trees.
// Candidates are selected through the shared filter criteria; an optional
// content pattern is then matched line-by-line against all candidate files
// that do not probe as binary. Content scanning fans out over a bounded
// worker pool with a single collecting goroutine, so that results are only
// ever appended from one place.
package search

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/nightveil/fops/internal/filter"
	"github.com/nightveil/fops/internal/schema"
	"github.com/nightveil/fops/internal/walk"
)

// osProvider is an interface for abstracting OS-related methods, so that
// implementing structures can be mocked in testing.
type osProvider interface {
	Open(name string) (*os.File, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Stat(name string) (os.FileInfo, error)
}

// Handler is the principal implementation structure of the package.
type Handler struct {
	// OSOps contains an implementation of [osProvider].
	OSOps osProvider

	// Workers caps the amount of concurrent content scanners; zero or less
	// resolves to the amount of logical CPUs, one scans fully sequentially.
	Workers int

	// Verbose receives one line per produced match; it is never nil.
	Verbose io.Writer
}

// NewHandler returns a pointer to a new [Handler].
func NewHandler(osOps osProvider, workers int, verbose io.Writer) *Handler {
	if verbose == nil {
		verbose = io.Discard
	}

	return &Handler{
		OSOps:   osOps,
		Workers: workers,
		Verbose: verbose,
	}
}

// Failure records one element that could not be searched.
type Failure struct {
	// Path is the element's path.
	Path string

	// Err is the failure cause.
	Err error
}

// Result aggregates the outcome of one search operation.
type Result struct {
	// Matches holds all matched elements in ranked order: content matches
	// before name-only matches, more line hits first, path as tie-break.
	Matches []schema.SearchMatch

	// Failed holds all elements that could not be walked or scanned.
	Failed []Failure

	// FilesScanned is the amount of candidate files that were content
	// scanned to completion.
	FilesScanned int

	// BinarySkipped is the amount of candidate files skipped as binary.
	BinarySkipped int
}

// Search walks the tree under root and returns all elements that satisfy
// the criteria. Without a content pattern every passing element becomes a
// name-only match; with one, passing files are scanned line-by-line and
// only files with at least one matching line are produced. Binary files are
// skipped silently, unreadable elements are recorded as failures and never
// abort the remaining candidates.
func (h *Handler) Search(ctx context.Context, root string, criteria schema.SearchCriteria) (*Result, error) {
	matcher, err := filter.Compile(criteria.Filter)
	if err != nil {
		return nil, fmt.Errorf("(search) %w: %w", ErrInvalidCriteria, err)
	}

	content, err := compileContent(criteria)
	if err != nil {
		return nil, err
	}

	if content == nil {
		return h.searchNames(ctx, root, matcher)
	}

	return h.searchContents(ctx, root, matcher, content)
}

// searchNames produces a name-only match for every element passing the
// filter criteria; file contents are never opened.
func (h *Handler) searchNames(ctx context.Context, root string, matcher *filter.Matcher) (*Result, error) {
	res := &Result{}

	w := walk.NewWalker(h.OSOps, root, matcher.Spec().Recursive)

	for w.Next() {
		if ctx.Err() != nil {
			break
		}

		e := w.Entry()

		if err := w.EntryErr(); err != nil {
			res.Failed = append(res.Failed, Failure{Path: e.Path, Err: err})

			continue
		}

		if matcher.ExcludeSubtree(e) {
			w.SkipSubtree()
		}

		if !matcher.Matches(e) {
			continue
		}

		res.Matches = append(res.Matches, schema.SearchMatch{Entry: e})
	}

	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("(search) %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("(search) context error: %w", err)
	}

	rankMatches(res.Matches)
	h.reportMatches(res.Matches)

	return res, nil
}

// searchContents scans all candidate files for the content pattern on a
// bounded worker pool; a single collector goroutine owns the result.
func (h *Handler) searchContents(ctx context.Context, root string, matcher *filter.Matcher, content *contentMatcher) (*Result, error) {
	workers := h.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	res := &Result{}

	buffer := workers * 2 //nolint:mnd

	fileChan := make(chan schema.Entry, buffer)
	resultChan := make(chan scanOutcome, buffer)

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for e := range fileChan {
				select {
				case <-ctx.Done():
					return
				default:
					resultChan <- h.scanFile(e, content)
				}
			}
		}()
	}

	var collectWg sync.WaitGroup

	collectWg.Add(1)

	go func() {
		defer collectWg.Done()

		for out := range resultChan {
			switch {
			case out.err != nil:
				res.Failed = append(res.Failed, Failure{Path: out.entry.Path, Err: out.err})

			case out.binary:
				res.BinarySkipped++

			default:
				res.FilesScanned++

				if len(out.lines) > 0 {
					res.Matches = append(res.Matches, schema.SearchMatch{Entry: out.entry, Lines: out.lines})
				}
			}
		}
	}()

	var walkFailures []Failure

	w := walk.NewWalker(h.OSOps, root, matcher.Spec().Recursive)

	for w.Next() {
		if ctx.Err() != nil {
			break
		}

		e := w.Entry()

		if err := w.EntryErr(); err != nil {
			walkFailures = append(walkFailures, Failure{Path: e.Path, Err: err})

			continue
		}

		if matcher.ExcludeSubtree(e) {
			w.SkipSubtree()
		}

		if e.IsDir || !matcher.Matches(e) {
			continue
		}

		select {
		case <-ctx.Done():
		case fileChan <- e:
		}
	}

	close(fileChan)
	wg.Wait()
	close(resultChan)
	collectWg.Wait()

	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("(search) %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("(search) context error: %w", err)
	}

	res.Failed = append(res.Failed, walkFailures...)

	rankMatches(res.Matches)
	h.reportMatches(res.Matches)

	return res, nil
}

// reportMatches writes one line per match to the verbosity sink.
func (h *Handler) reportMatches(matches []schema.SearchMatch) {
	for _, m := range matches {
		if m.ByContent() {
			fmt.Fprintf(h.Verbose, "%s (%d lines)\n", m.Entry.Path, len(m.Lines))

			continue
		}

		fmt.Fprintf(h.Verbose, "%s\n", m.Entry.Path)
	}
}
