package testutil

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hupe1980/unsupseg/distance"
	"github.com/hupe1980/unsupseg/framebatch"
)

// RNG is a seeded, goroutine-safe source of synthetic test data.
type RNG struct {
	mu   sync.Mutex
	seed int64
	src  *rand.Rand
}

func newSource(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0x5eed))
}

// NewRNG returns an RNG seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{seed: seed, src: newSource(seed)}
}

// Reset rewinds the RNG to its seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	r.src = newSource(r.seed)
	r.mu.Unlock()
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 { return r.seed }

func (r *RNG) locked(fn func(src *rand.Rand)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.src)
}

// Intn returns a value in [0, n).
func (r *RNG) Intn(n int) (v int) {
	r.locked(func(src *rand.Rand) { v = src.IntN(n) })
	return v
}

func gaussian(src *rand.Rand, rows, cols int) [][]float64 {
	backing := make([]float64, rows*cols)
	for i := range backing {
		backing[i] = src.NormFloat64()
	}
	m := make([][]float64, rows)
	for i := range m {
		m[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}

// Matrix returns rows x cols standard normal values.
func (r *RNG) Matrix(rows, cols int) (m [][]float64) {
	r.locked(func(src *rand.Rand) { m = gaussian(src, rows, cols) })
	return m
}

// Segment returns frames x features standard normal values.
func (r *RNG) Segment(frames, features int) [][]float64 {
	return r.Matrix(frames, features)
}

// Segments returns n segments headed "<i>.logmel" whose lengths are drawn
// uniformly from [minFrames, maxFrames].
func (r *RNG) Segments(n, minFrames, maxFrames, features int) []framebatch.Segment {
	segs := make([]framebatch.Segment, n)
	r.locked(func(src *rand.Rand) {
		for i := range segs {
			frames := minFrames + src.IntN(maxFrames-minFrames+1)
			segs[i] = framebatch.Segment{
				Header: fmt.Sprintf("%d.logmel", i),
				Frames: gaussian(src, frames, features),
			}
		}
	})
	return segs
}

// FilterBank returns c standard normal filters of hf x wf.
func (r *RNG) FilterBank(c, hf, wf int) [][][]float64 {
	bank := make([][][]float64, c)
	r.locked(func(src *rand.Rand) {
		for i := range bank {
			bank[i] = gaussian(src, hf, wf)
		}
	})
	return bank
}

// UnitVector returns a random direction of length one.
func (r *RNG) UnitVector(dim int) (v []float64) {
	r.locked(func(src *rand.Rand) {
		for {
			v = gaussian(src, 1, dim)[0]
			if distance.NormalizeL2InPlace(v) == nil {
				return
			}
		}
	})
	return v
}

// ClusteredVectors scatters num vectors with Gaussian noise of the given
// spread around clusters random unit centroids. Vector i belongs to cluster
// i % clusters.
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float64) [][]float64 {
	centroids := make([][]float64, clusters)
	for k := range centroids {
		centroids[k] = r.UnitVector(dim)
	}

	out := make([][]float64, num)
	r.locked(func(src *rand.Rand) {
		noise := gaussian(src, num, dim)
		for i, v := range noise {
			c := centroids[i%clusters]
			for j := range v {
				v[j] = c[j] + v[j]*spread
			}
			out[i] = v
		}
	})
	return out
}

// WriteBatch writes segs as an uncompressed frame batch named name in dir
// and returns its path.
func WriteBatch(t testing.TB, dir, name string, segs []framebatch.Segment) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	w := framebatch.NewWriter(f)
	for _, s := range segs {
		if err := w.Write(s); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush %s: %v", path, err)
	}
	return path
}
