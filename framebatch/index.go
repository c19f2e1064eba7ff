package framebatch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"

	"github.com/hupe1980/unsupseg/internal/mmap"
)

// ErrInvalidPermutation is returned by Permute for a slice that is not a
// permutation of the segment ordinals.
var ErrInvalidPermutation = errors.New("framebatch: invalid permutation")

// Source yields segments in order until io.EOF.
type Source interface {
	Next() (Segment, error)
}

type span struct {
	start, end int
	line       int
}

// Index provides random access to the segments of a frame batch.
//
// Segment locations are found once when the index is built; segments are
// decoded on every access. The access order starts as file order and can be
// changed with Permute or Shuffle.
type Index struct {
	data  []byte
	m     *mmap.File
	spans []span
	order []int
}

// OpenIndex indexes the file at path. Uncompressed files are memory-mapped,
// compressed files are inflated into memory.
func OpenIndex(path string) (*Index, error) {
	if DetectCompression(path) != None {
		rc, err := Open(path)
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("framebatch: read %s: %w", path, err)
		}
		return NewIndex(data)
	}

	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	_ = m.Advise(mmap.AccessRandom)

	ix, err := NewIndex(m.Bytes())
	if err != nil {
		m.Close()
		return nil, err
	}
	ix.m = m
	return ix, nil
}

// NewIndex indexes an in-memory frame batch. data must not be modified while
// the index is in use.
func NewIndex(data []byte) (*Index, error) {
	spans, err := scanSpans(data)
	if err != nil {
		return nil, err
	}
	order := make([]int, len(spans))
	for i := range order {
		order[i] = i
	}
	return &Index{data: data, spans: spans, order: order}, nil
}

func scanSpans(data []byte) ([]span, error) {
	var (
		spans  []span
		cur    span
		inside bool
		line   int
		header []byte
	)

	for off := 0; off < len(data); {
		next := len(data)
		if nl := bytes.IndexByte(data[off:], '\n'); nl >= 0 {
			next = off + nl + 1
		}
		line++
		text := bytes.TrimSpace(data[off:next])

		switch {
		case !inside && len(text) > 0:
			cur = span{start: off, line: line}
			header = text
			inside = true
		case inside && string(text) == Terminator:
			cur.end = next
			spans = append(spans, cur)
			inside = false
		}
		off = next
	}

	if inside {
		return nil, fmt.Errorf("%w: %q at line %d", ErrTruncated, header, line)
	}
	return spans, nil
}

// Len returns the number of segments.
func (ix *Index) Len() int { return len(ix.spans) }

// At decodes the i-th segment in the current access order.
func (ix *Index) At(i int) (Segment, error) {
	if i < 0 || i >= len(ix.order) {
		return Segment{}, fmt.Errorf("framebatch: index %d out of range [0,%d)", i, len(ix.order))
	}
	s := ix.spans[ix.order[i]]

	r := NewReader(bytes.NewReader(ix.data[s.start:s.end]))
	r.line = s.line - 1
	return r.Next()
}

// Ordinal returns the file position of the i-th segment in the current order.
func (ix *Index) Ordinal(i int) int { return ix.order[i] }

// Permute reorders access so that position i yields the segment previously
// at position perm[i].
func (ix *Index) Permute(perm []int) error {
	if len(perm) != len(ix.order) {
		return fmt.Errorf("%w: length %d, want %d", ErrInvalidPermutation, len(perm), len(ix.order))
	}
	seen := make([]bool, len(perm))
	next := make([]int, len(perm))
	for i, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return fmt.Errorf("%w: position %d", ErrInvalidPermutation, i)
		}
		seen[p] = true
		next[i] = ix.order[p]
	}
	ix.order = next
	return nil
}

// Shuffle permutes the access order with rng.
func (ix *Index) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(ix.order), func(i, j int) {
		ix.order[i], ix.order[j] = ix.order[j], ix.order[i]
	})
}

// Shuffled returns a view of ix whose access order is a copy of the current
// order permuted with rng. ix itself is not reordered. The view shares the
// segment data and is only valid until ix is closed; closing the view does
// not release ix.
func (ix *Index) Shuffled(rng *rand.Rand) *Index {
	view := &Index{data: ix.data, spans: ix.spans, order: slices.Clone(ix.order)}
	view.Shuffle(rng)
	return view
}

// Cursor returns a Source over the segments in the current order.
func (ix *Index) Cursor() *Cursor { return &Cursor{ix: ix} }

// Close releases the mapping, if any.
func (ix *Index) Close() error {
	ix.data = nil
	if ix.m == nil {
		return nil
	}
	err := ix.m.Close()
	ix.m = nil
	return err
}

// Cursor iterates an Index.
type Cursor struct {
	ix  *Index
	pos int
}

// Next returns the next segment or io.EOF.
func (c *Cursor) Next() (Segment, error) {
	if c.pos >= c.ix.Len() {
		return Segment{}, io.EOF
	}
	seg, err := c.ix.At(c.pos)
	if err != nil {
		return Segment{}, err
	}
	c.pos++
	return seg, nil
}
