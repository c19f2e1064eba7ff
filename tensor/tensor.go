package tensor

import "fmt"

// Shape holds the extents of the three axes of a Tensor3D.
type Shape struct {
	Time    int
	Feature int
	Channel int
}

// Valid reports whether every extent is positive.
func (s Shape) Valid() bool {
	return s.Time > 0 && s.Feature > 0 && s.Channel > 0
}

// Size returns the number of elements described by s.
func (s Shape) Size() int {
	return s.Time * s.Feature * s.Channel
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d×%d×%d)", s.Time, s.Feature, s.Channel)
}

// Tensor3D is a dense row-major buffer indexed as (time, feature, channel).
//
// For a filter bank the first two axes are the kernel height and width, so the
// backing slice doubles as an (Hf·Wf × C) matrix.
type Tensor3D struct {
	shape Shape
	data  []float64
}

// New allocates a zero tensor of the given shape.
func New(shape Shape) (*Tensor3D, error) {
	if !shape.Valid() {
		return nil, shapeErrorf("new", "extents must be positive, got %s", shape)
	}
	return &Tensor3D{shape: shape, data: make([]float64, shape.Size())}, nil
}

// Shape returns the tensor's shape.
func (t *Tensor3D) Shape() Shape { return t.shape }

// Data returns the backing slice (row-major, channel fastest).
func (t *Tensor3D) Data() []float64 { return t.data }

func (t *Tensor3D) offset(i, j, c int) int {
	return (i*t.shape.Feature+j)*t.shape.Channel + c
}

// At returns element (i, j, c).
func (t *Tensor3D) At(i, j, c int) float64 { return t.data[t.offset(i, j, c)] }

// Set assigns element (i, j, c).
func (t *Tensor3D) Set(i, j, c int, v float64) { t.data[t.offset(i, j, c)] = v }

// FromFrames converts a frame sequence into a (T × D × 1) tensor.
func FromFrames(frames [][]float64) (*Tensor3D, error) {
	if len(frames) == 0 {
		return nil, shapeErrorf("from frames", "empty segment")
	}
	dim := len(frames[0])
	if dim == 0 {
		return nil, shapeErrorf("from frames", "frame 0 is empty")
	}

	t, err := New(Shape{Time: len(frames), Feature: dim, Channel: 1})
	if err != nil {
		return nil, err
	}
	for i, f := range frames {
		if len(f) != dim {
			return nil, shapeErrorf("from frames", "frame %d has %d features, want %d", i, len(f), dim)
		}
		copy(t.data[i*dim:(i+1)*dim], f)
	}
	return t, nil
}

// FromFilterBank stacks C equally shaped 2-D filters into an (Hf × Wf × C) tensor.
// Element (i, j, c) is filters[c][i][j].
func FromFilterBank(filters [][][]float64) (*Tensor3D, error) {
	if len(filters) == 0 {
		return nil, shapeErrorf("from filter bank", "no filters")
	}
	first, err := FromFrames(filters[0])
	if err != nil {
		return nil, shapeErrorf("from filter bank", "filter 0: %v", err)
	}
	hf, wf := first.shape.Time, first.shape.Feature

	t, err := New(Shape{Time: hf, Feature: wf, Channel: len(filters)})
	if err != nil {
		return nil, err
	}
	for c, f := range filters {
		if len(f) != hf {
			return nil, shapeErrorf("from filter bank", "filter %d has %d rows, want %d", c, len(f), hf)
		}
		for i, row := range f {
			if len(row) != wf {
				return nil, shapeErrorf("from filter bank", "filter %d row %d has %d columns, want %d", c, i, len(row), wf)
			}
			for j, v := range row {
				t.Set(i, j, c, v)
			}
		}
	}
	return t, nil
}

// Clone returns a deep copy of t.
func (t *Tensor3D) Clone() *Tensor3D {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor3D{shape: t.shape, data: data}
}

// Channel returns a flattened (row-major) copy of channel c.
func (t *Tensor3D) Channel(c int) []float64 {
	out := make([]float64, t.shape.Time*t.shape.Feature)
	for k := range out {
		out[k] = t.data[k*t.shape.Channel+c]
	}
	return out
}

// SetChannel overwrites channel c with the flattened values v.
func (t *Tensor3D) SetChannel(c int, v []float64) error {
	n := t.shape.Time * t.shape.Feature
	if len(v) != n {
		return shapeErrorf("set channel", "got %d values, want %d", len(v), n)
	}
	for k, x := range v {
		t.data[k*t.shape.Channel+c] = x
	}
	return nil
}

// ChannelEnergy returns the squared L2 norm of every channel.
func (t *Tensor3D) ChannelEnergy() []float64 {
	energy := make([]float64, t.shape.Channel)
	for k := 0; k < t.shape.Time*t.shape.Feature; k++ {
		row := t.data[k*t.shape.Channel : (k+1)*t.shape.Channel]
		for c, v := range row {
			energy[c] += v * v
		}
	}
	return energy
}

// Frames converts channel c back into a frame sequence.
func (t *Tensor3D) Frames(c int) [][]float64 {
	out := make([][]float64, t.shape.Time)
	for i := range out {
		row := make([]float64, t.shape.Feature)
		for j := range row {
			row[j] = t.At(i, j, c)
		}
		out[i] = row
	}
	return out
}
