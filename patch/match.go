package patch

import (
	"math"

	"github.com/hupe1980/unsupseg/tensor"
)

// DefaultK is the number of exemplars retained per channel.
const DefaultK = 30

// Match is the best patch of a sample for one filter channel.
type Match struct {
	// Row is the flattened patch position; Time and Feature are its grid
	// coordinates.
	Row      int
	Time     int
	Feature  int
	Distance float64
}

// BestMatches returns, for every channel of filters, the patch with the
// smallest squared distance to that filter. filterEnergy holds the squared
// norm of every channel. Ties keep the first position in row-major order.
func BestMatches(p *tensor.Patches, filters *tensor.Tensor3D, filterEnergy []float64) ([]Match, error) {
	channels := filters.Shape().Channel
	if len(filterEnergy) != channels {
		return nil, &tensor.ShapeError{Op: "best matches", Reason: "filter energy length does not match channel count"}
	}

	corr, err := tensor.Correlate(p, filters)
	if err != nil {
		return nil, err
	}
	energy := p.Energy()

	best := make([]Match, channels)
	for c := range best {
		best[c] = Match{Row: -1, Distance: math.Inf(1)}
	}

	for r := 0; r < p.Rows(); r++ {
		row := corr[r*channels : (r+1)*channels]
		for c, v := range row {
			d := energy[r] - 2*v + filterEnergy[c]
			if d < best[c].Distance {
				best[c].Distance = d
				best[c].Row = r
			}
		}
	}

	for c := range best {
		if best[c].Row >= 0 {
			best[c].Time, best[c].Feature = p.Position(best[c].Row)
		}
	}
	return best, nil
}

// matcher holds the fixed filter bank shared by Selector and ThresholdScanner.
type matcher struct {
	filters *tensor.Tensor3D
	energy  []float64
}

func newMatcher(filters *tensor.Tensor3D) matcher {
	return matcher{filters: filters, energy: filters.ChannelEnergy()}
}

func (m matcher) match(frames [][]float64) (*tensor.Patches, []Match, error) {
	in, err := tensor.FromFrames(frames)
	if err != nil {
		return nil, nil, err
	}
	fs := m.filters.Shape()
	p, err := tensor.Linearize(in, fs.Time, fs.Feature)
	if err != nil {
		return nil, nil, err
	}
	best, err := BestMatches(p, m.filters, m.energy)
	if err != nil {
		return nil, nil, err
	}
	return p, best, nil
}

// MeanDistance averages the distances of matches, the per-sample loss.
func MeanDistance(matches []Match) float64 {
	if len(matches) == 0 {
		return 0
	}
	var sum float64
	for _, m := range matches {
		sum += m.Distance
	}
	return sum / float64(len(matches))
}
