package fs

import (
	"io"
	"os"
)

// File is a file opened for writing by CreateTemp.
type File interface {
	io.WriteCloser
	Sync() error
	Name() string
	Chmod(mode os.FileMode) error
}

// FileSystem is the set of operations needed to replace an output file
// atomically: write a temporary sibling, sync it, rename it over the target
// and sync the directory.
type FileSystem interface {
	// CreateTemp creates a new file in dir as os.CreateTemp does.
	CreateTemp(dir, pattern string) (File, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	// SyncDir flushes the directory entry table of dir.
	SyncDir(dir string) error
}

// LocalFS implements FileSystem on the os package.
type LocalFS struct{}

// CreateTemp implements FileSystem.
func (LocalFS) CreateTemp(dir, pattern string) (File, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Rename implements FileSystem.
func (LocalFS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

// Remove implements FileSystem.
func (LocalFS) Remove(name string) error { return os.Remove(name) }

// SyncDir implements FileSystem.
func (LocalFS) SyncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}

// Default is the local file system.
var Default FileSystem = LocalFS{}
