package mmap

import (
	"errors"
	"fmt"
	"math"
	"os"
)

// Advice is a hint about how the mapping will be read.
type Advice int

const (
	AccessDefault Advice = iota
	AccessSequential
	AccessRandom
)

// ErrTooLarge is returned for files that do not fit in the address space.
var ErrTooLarge = errors.New("mmap: file too large")

// File is a read-only mapping of a whole file.
type File struct {
	f    *os.File
	data []byte
}

// Open maps path read-only. Empty files yield an empty mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	m, err := mapFile(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return m, nil
}

func mapFile(f *os.File) (*File, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	switch {
	case size == 0:
		return &File{f: f}, nil
	case size > math.MaxInt:
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, f.Name(), size)
	}
	data, err := mmap(f, int(size))
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", f.Name(), err)
	}
	return &File{f: f, data: data}, nil
}

// Bytes returns the mapped contents, valid until Close.
func (m *File) Bytes() []byte { return m.data }

// Len returns the mapped size in bytes.
func (m *File) Len() int { return len(m.data) }

// Advise hints the expected access pattern to the kernel.
func (m *File) Advise(a Advice) error {
	if m.data == nil {
		return nil
	}
	return madvise(m.data, a)
}

// Close releases the mapping and the file. It is safe to call twice.
func (m *File) Close() error {
	if m == nil {
		return nil
	}
	var errs []error
	if m.data != nil {
		errs = append(errs, munmap(m.data))
		m.data = nil
	}
	if m.f != nil {
		errs = append(errs, m.f.Close())
		m.f = nil
	}
	return errors.Join(errs...)
}
