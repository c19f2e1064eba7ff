package persistence

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	ifs "github.com/hupe1980/unsupseg/internal/fs"
	"github.com/hupe1980/unsupseg/tensor"
)

// WriteParam writes a parameter file holding the single filter bank.
func WriteParam(w io.Writer, filters *tensor.Tensor3D) error {
	s := filters.Shape()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "1\n3 %d %d %d\n", s.Time, s.Feature, s.Channel)
	buf := appendRow(nil, filters.Data())
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadParam parses a parameter file and returns its filter bank.
func ReadParam(r io.Reader) (*tensor.Tensor3D, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 256<<20)
	line := 0
	next := func() ([]string, bool) {
		for sc.Scan() {
			line++
			if fields := strings.Fields(sc.Text()); len(fields) > 0 {
				return fields, true
			}
		}
		return nil, false
	}
	ints := func(fields []string) ([]int, error) {
		out := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, malformed(line, "integer %d: %v", i, err)
			}
			out[i] = v
		}
		return out, nil
	}

	fields, ok := next()
	if !ok {
		return nil, scanErr(sc, malformed(line, "missing tensor count"))
	}
	count, err := ints(fields)
	if err != nil {
		return nil, err
	}
	if len(count) != 1 || count[0] != 1 {
		return nil, malformed(line, "tensor count %v, want 1", fields)
	}

	fields, ok = next()
	if !ok {
		return nil, scanErr(sc, malformed(line, "missing shape line"))
	}
	shape, err := ints(fields)
	if err != nil {
		return nil, err
	}
	if len(shape) != 4 || shape[0] != 3 {
		return nil, malformed(line, "shape %v is not a rank-3 tensor", fields)
	}

	t, err := tensor.New(tensor.Shape{Time: shape[1], Feature: shape[2], Channel: shape[3]})
	if err != nil {
		return nil, malformed(line, "%v", err)
	}

	fields, ok = next()
	if !ok {
		return nil, scanErr(sc, malformed(line, "missing values"))
	}
	values, err := parseRow(fields, line)
	if err != nil {
		return nil, err
	}
	if len(values) != len(t.Data()) {
		return nil, malformed(line, "got %d values, shape %s needs %d", len(values), t.Shape(), len(t.Data()))
	}
	copy(t.Data(), values)
	return t, nil
}

func scanErr(sc *bufio.Scanner, fallback error) error {
	if err := sc.Err(); err != nil {
		return err
	}
	return fallback
}

// LoadParam reads the parameter file at path.
func LoadParam(path string) (*tensor.Tensor3D, error) {
	var t *tensor.Tensor3D
	err := LoadFromFile(path, func(r io.Reader) error {
		var err error
		t, err = ReadParam(r)
		return err
	})
	if err != nil {
		return nil, withPath(err, path)
	}
	return t, nil
}

// SaveParam atomically writes filters to path.
func SaveParam(fsys ifs.FileSystem, path string, filters *tensor.Tensor3D) error {
	return SaveToFile(fsys, path, func(w io.Writer) error {
		return WriteParam(w, filters)
	})
}
