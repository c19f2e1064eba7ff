package framebatch

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the container of a frame batch file.
type Compression int

const (
	// None is a plain-text file.
	None Compression = iota
	// Zstd is a zstd stream (.zst).
	Zstd
	// Gzip is a gzip stream (.gz).
	Gzip
	// LZ4 is an lz4 frame stream (.lz4).
	LZ4
)

// DetectCompression infers the compression from the file extension.
func DetectCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return Zstd
	case ".gz":
		return Gzip
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// closers run in order; a compressor is listed before its file so the
// trailer is written before the file is closed.
type closers []func() error

func (cs closers) Close() error {
	var errs []error
	for _, c := range cs {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

type readCloser struct {
	io.Reader
	closers
}

type writeCloser struct {
	io.Writer
	closers
}

// Open opens the file at path for reading, decompressing it when the
// extension names a supported compression.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	rc, err := decompress(f, DetectCompression(path))
	if err != nil {
		f.Close()
		return nil, err
	}
	return rc, nil
}

func decompress(f *os.File, c Compression) (io.ReadCloser, error) {
	switch c {
	case Zstd:
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: dec, closers: closers{
			func() error { dec.Close(); return nil },
			f.Close,
		}}, nil
	case Gzip:
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: zr, closers: closers{zr.Close, f.Close}}, nil
	case LZ4:
		return &readCloser{Reader: lz4.NewReader(f), closers: closers{f.Close}}, nil
	default:
		return f, nil
	}
}

// Create creates the file at path for writing, compressing it when the
// extension names a supported compression.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	switch DetectCompression(path) {
	case Zstd:
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			f.Close()
			return nil, err
		}
		return &writeCloser{Writer: enc, closers: closers{enc.Close, f.Close}}, nil
	case Gzip:
		zw := gzip.NewWriter(f)
		return &writeCloser{Writer: zw, closers: closers{zw.Close, f.Close}}, nil
	case LZ4:
		zw := lz4.NewWriter(f)
		return &writeCloser{Writer: zw, closers: closers{zw.Close, f.Close}}, nil
	default:
		return f, nil
	}
}
