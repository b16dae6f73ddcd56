// Package walk provides lazy depth-first traversal over directory trees.
// Elements are pulled one at a time, parents strictly before their children,
// with unreadable elements surfacing as recoverable per-element errors rather
// than aborting the traversal.
package walk

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nightveil/fops/internal/schema"
)

type osProvider interface {
	ReadDir(name string) ([]os.DirEntry, error)
	Stat(name string) (os.FileInfo, error)
}

// level holds the not yet produced children of one read directory.
type level struct {
	parent  string
	entries []os.DirEntry
}

// Walker is a lazy depth-first iterator over a directory tree. Elements are
// produced one at a time through [Walker.Next]; the traversal root itself is
// never produced. Symbolic links below the root are reported but never
// followed.
//
// A Walker is single-use and not safe for concurrent use.
type Walker struct {
	osOps     osProvider
	root      string
	recursive bool

	started bool
	stack   []*level
	cur     schema.Entry
	curErr  error
	skip    bool
	err     error
}

// NewWalker returns a pointer to a new [Walker] rooted at the given
// directory. With recursive unset, only the immediate children of the root
// are produced and no directory is descended into.
func NewWalker(osOps osProvider, root string, recursive bool) *Walker {
	return &Walker{
		osOps:     osOps,
		root:      root,
		recursive: recursive,
	}
}

// Next advances the [Walker] to the next element, reporting whether one is
// available through [Walker.Entry]. Once Next returns false, [Walker.Err]
// holds the fatal traversal error, if any occurred.
func (w *Walker) Next() bool {
	if w.err != nil {
		return false
	}

	if !w.started {
		w.started = true

		if !w.enterRoot() {
			return false
		}
	} else if w.cur.IsDir && w.curErr == nil && !w.skip && w.recursive {
		dir := w.cur

		entries, err := w.osOps.ReadDir(dir.Path)
		if err != nil {
			// The directory was already produced once; it is produced a
			// second time carrying the listing error, then not descended.
			w.cur = dir
			w.curErr = fmt.Errorf("(walk) %w: %w", ErrEntryUnreadable, err)
			w.skip = false

			return true
		}

		if len(entries) > 0 {
			w.stack = append(w.stack, &level{parent: dir.Path, entries: entries})
		}
	}

	w.skip = false

	return w.pop()
}

// Entry returns the element the [Walker] is currently positioned on.
func (w *Walker) Entry() schema.Entry {
	return w.cur
}

// EntryErr returns the recoverable error attached to the current element;
// elements carrying an error wrap [ErrEntryUnreadable] and hold only the
// metadata that could be established.
func (w *Walker) EntryErr() error {
	return w.curErr
}

// SkipSubtree marks the current element's subtree as not to be descended
// into. It has effect only while positioned on a readable directory.
func (w *Walker) SkipSubtree() {
	if w.cur.IsDir && w.curErr == nil {
		w.skip = true
	}
}

// Err returns the fatal traversal error, wrapping [ErrRootUnavailable]; it is
// nil while elements remain and after an exhausted traversal.
func (w *Walker) Err() error {
	return w.err
}

// enterRoot validates the traversal root and seeds the stack with its
// children. The root is resolved through a final symbolic link; elements
// below it never are.
func (w *Walker) enterRoot() bool {
	info, err := w.osOps.Stat(w.root)
	if err != nil {
		w.err = fmt.Errorf("(walk) %w: %w", ErrRootUnavailable, err)

		return false
	}

	if !info.IsDir() {
		w.err = fmt.Errorf("(walk) %w: %w", ErrRootUnavailable, ErrRootNotDirectory)

		return false
	}

	entries, err := w.osOps.ReadDir(w.root)
	if err != nil {
		w.err = fmt.Errorf("(walk) %w: %w", ErrRootUnavailable, err)

		return false
	}

	if len(entries) > 0 {
		w.stack = append(w.stack, &level{parent: w.root, entries: entries})
	}

	return true
}

// pop produces the next element from the deepest non-exhausted level.
func (w *Walker) pop() bool {
	for len(w.stack) > 0 {
		top := w.stack[len(w.stack)-1]
		if len(top.entries) == 0 {
			w.stack = w.stack[:len(w.stack)-1]

			continue
		}

		d := top.entries[0]
		top.entries = top.entries[1:]

		path := filepath.Join(top.parent, d.Name())

		info, err := d.Info()
		if err != nil {
			w.cur = schema.Entry{Path: path, Name: d.Name(), IsDir: d.IsDir()}
			w.curErr = fmt.Errorf("(walk) %w: %w", ErrEntryUnreadable, err)

			return true
		}

		w.cur = schema.NewEntry(path, info)
		w.curErr = nil

		return true
	}

	w.cur = schema.Entry{}
	w.curErr = nil

	return false
}
