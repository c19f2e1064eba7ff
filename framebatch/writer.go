package framebatch

import (
	"bufio"
	"io"
	"strconv"
)

// Writer encodes segments.
type Writer struct {
	w   *bufio.Writer
	buf []byte
}

// NewWriter creates a Writer on w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write emits seg as header, frame lines and terminator.
func (w *Writer) Write(seg Segment) error {
	if _, err := w.w.WriteString(seg.Header); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	for _, frame := range seg.Frames {
		w.buf = w.buf[:0]
		for j, v := range frame {
			if j > 0 {
				w.buf = append(w.buf, ' ')
			}
			w.buf = strconv.AppendFloat(w.buf, v, 'g', -1, 64)
		}
		w.buf = append(w.buf, '\n')
		if _, err := w.w.Write(w.buf); err != nil {
			return err
		}
	}
	_, err := w.w.WriteString(Terminator + "\n")
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error { return w.w.Flush() }
