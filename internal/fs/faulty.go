package fs

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
)

// ErrInjected is returned by faults that do not carry their own error.
var ErrInjected = errors.New("injected fault")

// Op is a set of file operations a Fault applies to.
type Op uint8

const (
	OpWrite Op = 1 << iota
	OpSync
	OpClose
	OpRename
)

// Fault fails the operations in Ops on files whose base name contains Match.
type Fault struct {
	Match string
	Ops   Op
	// AfterBytes is the number of bytes an OpWrite fault lets through
	// before failing, like a device running out of space.
	AfterBytes int64
	Err        error
}

func (f Fault) has(op Op) bool { return f.Ops&op != 0 }

func (f Fault) cause() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

// FaultyFS wraps a FileSystem and injects failures into matching files.
// The first matching fault applies.
type FaultyFS struct {
	base FileSystem

	mu     sync.Mutex
	faults []Fault
}

// NewFaultyFS wraps base (Default when nil) with the given faults.
func NewFaultyFS(base FileSystem, faults ...Fault) *FaultyFS {
	if base == nil {
		base = Default
	}
	return &FaultyFS{base: base, faults: faults}
}

// Inject adds a fault.
func (f *FaultyFS) Inject(fault Fault) {
	f.mu.Lock()
	f.faults = append(f.faults, fault)
	f.mu.Unlock()
}

func (f *FaultyFS) lookup(name string) (Fault, bool) {
	base := filepath.Base(name)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fault := range f.faults {
		if strings.Contains(base, fault.Match) {
			return fault, true
		}
	}
	return Fault{}, false
}

// CreateTemp implements FileSystem.
func (f *FaultyFS) CreateTemp(dir, pattern string) (File, error) {
	file, err := f.base.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	if fault, ok := f.lookup(file.Name()); ok {
		return &faultyFile{File: file, fault: fault}, nil
	}
	return file, nil
}

// Rename implements FileSystem.
func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if fault, ok := f.lookup(oldpath); ok && fault.has(OpRename) {
		return fault.cause()
	}
	return f.base.Rename(oldpath, newpath)
}

// Remove implements FileSystem.
func (f *FaultyFS) Remove(name string) error { return f.base.Remove(name) }

// SyncDir implements FileSystem.
func (f *FaultyFS) SyncDir(dir string) error { return f.base.SyncDir(dir) }

type faultyFile struct {
	File
	fault   Fault
	written int64
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if !ff.fault.has(OpWrite) || ff.written+int64(len(p)) <= ff.fault.AfterBytes {
		n, err := ff.File.Write(p)
		ff.written += int64(n)
		return n, err
	}
	room := max(ff.fault.AfterBytes-ff.written, 0)
	n, _ := ff.File.Write(p[:room])
	ff.written += int64(n)
	return n, ff.fault.cause()
}

func (ff *faultyFile) Sync() error {
	if ff.fault.has(OpSync) {
		return ff.fault.cause()
	}
	return ff.File.Sync()
}

func (ff *faultyFile) Close() error {
	err := ff.File.Close()
	if ff.fault.has(OpClose) {
		return ff.fault.cause()
	}
	return err
}
