package persistence

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"strconv"
	"strings"

	ifs "github.com/hupe1980/unsupseg/internal/fs"
)

// WriteCenters writes one centroid per line with space-separated values.
func WriteCenters(w io.Writer, centers [][]float64) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, c := range centers {
		buf = appendRow(buf[:0], c)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func appendRow(buf []byte, row []float64) []byte {
	for i, v := range row {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
	}
	return buf
}

// ReadCenters parses a centers file. Blank lines are ignored. When dim is
// positive every row must have exactly dim values; otherwise every row must
// match the first.
func ReadCenters(r io.Reader, dim int) ([][]float64, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16<<20)

	var (
		out  [][]float64
		line int
	)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		row, err := parseRow(fields, line)
		if err != nil {
			return nil, err
		}
		if dim <= 0 {
			dim = len(row)
		}
		if len(row) != dim {
			return nil, malformed(line, "centroid has %d values, want %d", len(row), dim)
		}
		out = append(out, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseRow(fields []string, line int) ([]float64, error) {
	row := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, malformed(line, "value %d: %v", i, err)
		}
		row[i] = v
	}
	return row, nil
}

// LoadCenters reads the centers file at path. A missing file yields no
// centroids and no error, which starts clustering in seeding mode.
func LoadCenters(path string, dim int) ([][]float64, error) {
	var centers [][]float64
	err := LoadFromFile(path, func(r io.Reader) error {
		var err error
		centers, err = ReadCenters(r, dim)
		return err
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, withPath(err, path)
	}
	return centers, nil
}

// SaveCenters atomically writes centers to path.
func SaveCenters(fsys ifs.FileSystem, path string, centers [][]float64) error {
	return SaveToFile(fsys, path, func(w io.Writer) error {
		return WriteCenters(w, centers)
	})
}
