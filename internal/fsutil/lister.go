// Package fsutil provides the directory listing collaborator used by wildcard
// expansion. The wildcard walker only ever needs "list this directory with
// entry types", so that is the whole contract.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// ErrNotFound reports a listed path that does not exist.
var ErrNotFound = errors.New("fsutil: path not found")

// ErrNotDir reports a listed path that exists but is not a directory.
var ErrNotDir = errors.New("fsutil: path is not a directory")

// Entry is one directory entry with its resolved type.
type Entry struct {
	Name  string
	IsDir bool
}

// Lister lists the entries of a directory. Implementations must return
// ErrNotFound and ErrNotDir (possibly wrapped) for those failure modes so
// callers can preserve the distinction.
type Lister interface {
	List(path string) ([]Entry, error)
}

// OSLister is the default Lister over the real filesystem.
type OSLister struct{}

// List reads the directory at path in lexical order.
func (OSLister) List(path string) ([]Entry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		case errors.Is(err, syscall.ENOTDIR):
			return nil, fmt.Errorf("%w: %s", ErrNotDir, path)
		}
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		isDir := d.IsDir()
		if d.Type()&fs.ModeSymlink != 0 {
			// Resolve symlinks so linked module directories still match.
			if info, statErr := os.Stat(filepath.Join(path, d.Name())); statErr == nil {
				isDir = info.IsDir()
			}
		}
		entries = append(entries, Entry{Name: d.Name(), IsDir: isDir})
	}
	return entries, nil
}
