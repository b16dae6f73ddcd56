package schema

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// Entry is the principal structure for all filesystem elements discovered
// during traversal. It is an immutable snapshot of one element at the time its
// containing directory was read; symbolic links are never followed, so Mode
// carries the link type bits for link-type elements.
//
// Entries are meant to be passed by value and are safe for concurrent reads.
type Entry struct {
	// Path is the root-joined path the element was discovered at.
	Path string

	// Name is the base name of the element.
	Name string

	// Size is the element's size in bytes; always zero for directories.
	Size int64

	// Mode holds the type and permission bits as reported by lstat.
	Mode fs.FileMode

	// ModifiedAt is the element's last modification time.
	ModifiedAt time.Time

	// IsDir describes if the element is a directory.
	IsDir bool
}

// NewEntry builds an [Entry] from a path and its lstat-derived file
// information.
func NewEntry(path string, info fs.FileInfo) Entry {
	e := Entry{
		Path:       path,
		Name:       filepath.Base(path),
		Mode:       info.Mode(),
		ModifiedAt: info.ModTime(),
		IsDir:      info.IsDir(),
	}

	if !e.IsDir {
		e.Size = info.Size()
	}

	return e
}

// Hidden returns whether the element is hidden per the dotfile convention.
func (e Entry) Hidden() bool {
	return strings.HasPrefix(e.Name, ".")
}

// Ext returns the element's lower-cased extension, without the leading dot.
func (e Entry) Ext() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(e.Name), "."))
}

// IsSymlink returns whether the element is a symbolic link.
func (e Entry) IsSymlink() bool {
	return e.Mode&fs.ModeSymlink != 0
}

// IsRegular returns whether the element is a regular file.
func (e Entry) IsRegular() bool {
	return e.Mode.IsRegular()
}
