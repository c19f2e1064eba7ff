package kmeans

// ClusterReport is the per-cluster summary produced by a Predictor.
type ClusterReport struct {
	Cluster int
	Count   int
	// MeanDistance is the average assignment distance; zero when Count is zero.
	MeanDistance float64
}

// Predictor assigns samples to fixed centroids.
type Predictor struct {
	centroids [][]float64
	dim       int
	sums      []float64
	counts    []int
}

// NewPredictor creates a Predictor over a copy of centroids.
func NewPredictor(centroids [][]float64) (*Predictor, error) {
	if len(centroids) == 0 {
		return nil, ErrNoCentroids
	}
	dim, err := checkDims(centroids)
	if err != nil {
		return nil, err
	}
	return &Predictor{
		centroids: cloneAll(centroids),
		dim:       dim,
		sums:      make([]float64, len(centroids)),
		counts:    make([]int, len(centroids)),
	}, nil
}

// Assign finds the nearest centroid for vec and records the distance.
func (p *Predictor) Assign(vec []float64) (Assignment, error) {
	if len(vec) != p.dim {
		return Assignment{}, &ErrDimensionMismatch{Expected: p.dim, Actual: len(vec)}
	}
	k, d := Nearest(vec, p.centroids)
	p.sums[k] += d
	p.counts[k]++
	return Assignment{Cluster: k, Distance: d}, nil
}

// Report returns the per-cluster average distances recorded so far.
func (p *Predictor) Report() []ClusterReport {
	out := make([]ClusterReport, len(p.centroids))
	for k := range out {
		out[k] = ClusterReport{Cluster: k, Count: p.counts[k]}
		if p.counts[k] > 0 {
			out[k].MeanDistance = p.sums[k] / float64(p.counts[k])
		}
	}
	return out
}
