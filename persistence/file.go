package persistence

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/unsupseg/internal/fs"
)

// FileMode is the permission set of files written by SaveToFile.
const FileMode os.FileMode = 0o644

// SaveToFile atomically replaces filename with the output of writeFunc.
//
// The data is written to a temporary sibling "<name>.tmp-*", synced and
// renamed over filename with FileMode, subject to umask. On any error the temporary file is removed and the
// previous content of filename is left untouched.
func SaveToFile(fsys fs.FileSystem, filename string, writeFunc func(io.Writer) error) (err error) {
	if fsys == nil {
		fsys = fs.Default
	}
	dir := filepath.Dir(filename)

	tmp, err := fsys.CreateTemp(dir, filepath.Base(filename)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	open := true
	defer func() {
		if err == nil {
			return
		}
		if open {
			_ = tmp.Close()
		}
		_ = fsys.Remove(tmpName)
	}()

	// Best effort; CreateTemp opens with 0600.
	_ = tmp.Chmod(FileMode)

	buf := bufio.NewWriterSize(tmp, 64*1024)
	if err = writeFunc(buf); err != nil {
		return err
	}
	if err = buf.Flush(); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	open = false
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = fsys.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best effort.
	_ = fsys.SyncDir(dir)
	return nil
}

// LoadFromFile opens filename and passes a buffered reader to readFunc.
func LoadFromFile(filename string, readFunc func(io.Reader) error) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return readFunc(bufio.NewReaderSize(f, 64*1024))
}
