package framebatch

import (
	"errors"
	"fmt"
)

// Terminator is the line that ends a segment.
const Terminator = "."

// ErrTruncated is returned when a segment header is not followed by a terminator.
var ErrTruncated = errors.New("framebatch: truncated segment")

// Segment is one header-delimited block of frames.
type Segment struct {
	Header string
	Frames [][]float64
}

// Len returns the number of frames.
func (s Segment) Len() int { return len(s.Frames) }

// ParseError reports a frame line that could not be parsed.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("framebatch: line %d: cannot parse %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
