package embed

import (
	"math"

	"github.com/hupe1980/unsupseg/tensor"
)

var _ Embedder = (*Conv)(nil)

// Conv is the convolutional correlation embedder.
type Conv struct {
	filters *tensor.Tensor3D
}

// NewConv creates a Conv embedder over an (Hf × Wf × C) filter bank.
// The bank is shared and must not be modified while embedding.
func NewConv(filters *tensor.Tensor3D) *Conv {
	return &Conv{filters: filters}
}

// Dim returns the number of filters C.
func (c *Conv) Dim() int { return c.filters.Shape().Channel }

// Filters returns the filter bank.
func (c *Conv) Filters() *tensor.Tensor3D { return c.filters }

// Embed computes embedding[c] = max over all valid positions of the dot
// product between the patch at that position and filter c.
//
// Inputs shorter than the filter in either axis yield a tensor.ErrShape error.
func (c *Conv) Embed(frames [][]float64) ([]float64, error) {
	in, err := tensor.FromFrames(frames)
	if err != nil {
		return nil, err
	}
	return c.EmbedTensor(in)
}

// EmbedTensor is Embed for an already converted (T × D × 1) input.
func (c *Conv) EmbedTensor(in *tensor.Tensor3D) ([]float64, error) {
	fs := c.filters.Shape()
	patches, err := tensor.Linearize(in, fs.Time, fs.Feature)
	if err != nil {
		return nil, err
	}
	scores, err := tensor.Correlate(patches, c.filters)
	if err != nil {
		return nil, err
	}
	return MaxPool(scores, fs.Channel), nil
}

// MaxPool reduces a (rows × channels) row-major score matrix to its
// per-channel maximum. Channels start at negative infinity.
func MaxPool(scores []float64, channels int) []float64 {
	out := make([]float64, channels)
	for c := range out {
		out[c] = math.Inf(-1)
	}
	for r := 0; r+channels <= len(scores); r += channels {
		row := scores[r : r+channels]
		for c, v := range row {
			if v > out[c] {
				out[c] = v
			}
		}
	}
	return out
}
