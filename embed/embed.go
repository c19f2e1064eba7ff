package embed

// Embedder produces a fixed-length embedding for a frame sequence.
type Embedder interface {
	// Embed returns the raw (unnormalized) embedding of frames.
	Embed(frames [][]float64) ([]float64, error)
	// Dim returns the embedding length.
	Dim() int
}

// DistanceOracle is a pairwise sequence distance.
type DistanceOracle interface {
	Distance(a, b [][]float64) (float64, error)
}

// DistanceFunc adapts a function to the DistanceOracle interface.
type DistanceFunc func(a, b [][]float64) (float64, error)

// Distance calls f(a, b).
func (f DistanceFunc) Distance(a, b [][]float64) (float64, error) { return f(a, b) }
