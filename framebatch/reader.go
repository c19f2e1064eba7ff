package framebatch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxLineSize = 16 << 20

// Reader decodes segments from a stream.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Reader{sc: sc}
}

// Next returns the next segment. It returns io.EOF when no further header can
// be read, ErrTruncated when the stream ends inside a segment and a
// *ParseError when a frame value is not a number.
func (r *Reader) Next() (Segment, error) {
	var seg Segment

	for {
		text, ok, err := r.scan()
		if err != nil {
			return Segment{}, err
		}
		if !ok {
			return Segment{}, io.EOF
		}
		if strings.TrimSpace(text) != "" {
			seg.Header = strings.TrimSpace(text)
			break
		}
	}

	for {
		text, ok, err := r.scan()
		if err != nil {
			return Segment{}, err
		}
		if !ok {
			return Segment{}, fmt.Errorf("%w: %q at line %d", ErrTruncated, seg.Header, r.line)
		}
		if strings.TrimSpace(text) == Terminator {
			return seg, nil
		}

		frame, err := parseFrame(text)
		if err != nil {
			return Segment{}, &ParseError{Line: r.line, Text: text, Err: err}
		}
		seg.Frames = append(seg.Frames, frame)
	}
}

func (r *Reader) scan() (string, bool, error) {
	if !r.sc.Scan() {
		return "", false, r.sc.Err()
	}
	r.line++
	return r.sc.Text(), true, nil
}

func parseFrame(text string) ([]float64, error) {
	fields := strings.Fields(text)
	frame := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		frame[i] = v
	}
	return frame, nil
}

// ReadAll decodes every segment of r.
func ReadAll(r io.Reader) ([]Segment, error) {
	var out []Segment
	rd := NewReader(r)
	for {
		seg, err := rd.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, seg)
	}
}

// LoadFile decodes every segment of the (possibly compressed) file at path.
func LoadFile(path string) ([]Segment, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadAll(rc)
}
