package main

import (
	"fmt"
	"io"

	"github.com/hupe1980/unsupseg/embed"
	"github.com/hupe1980/unsupseg/framebatch"
	"github.com/hupe1980/unsupseg/tensor"
)

// embedding selects how segments are mapped to vectors.
type embedding int

const (
	convEmbed embedding = iota
	dtwEmbed
)

func (e embedding) prefix() string {
	if e == dtwEmbed {
		return "dtw"
	}
	return "conv"
}

func (e embedding) describe() string {
	if e == dtwEmbed {
		return "DTW distances to each basis segment"
	}
	return "max-pooled cross-correlation with each basis filter"
}

// embedder builds the embedder backed by the basis batch at path.
func (e embedding) embedder(path string) (embed.Embedder, error) {
	basis, err := loadBasis(path)
	if err != nil {
		return nil, err
	}
	if e == dtwEmbed {
		return embed.NewDTW(basis, nil), nil
	}

	filters, err := tensor.FromFilterBank(basis)
	if err != nil {
		return nil, fmt.Errorf("basis batch %s: %w", path, err)
	}
	return embed.NewConv(filters), nil
}

func loadBasis(path string) ([][][]float64, error) {
	segs, err := framebatch.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("basis batch: %w", err)
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("basis batch %s is empty", path)
	}

	basis := make([][][]float64, len(segs))
	for i, s := range segs {
		basis[i] = s.Frames
	}
	return basis, nil
}

// loadTarget returns the first segment of the frame batch at path.
func loadTarget(path string) ([][]float64, error) {
	segs, err := framebatch.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("target %s is empty", path)
	}
	return segs[0].Frames, nil
}

// openSource opens the frame batch at path for a single sequential pass.
func openSource(path string) (framebatch.Source, io.Closer, error) {
	rc, err := framebatch.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("frame batch: %w", err)
	}
	return framebatch.NewReader(rc), rc, nil
}

func openIndex(path string) (*framebatch.Index, error) {
	ix, err := framebatch.OpenIndex(path)
	if err != nil {
		return nil, fmt.Errorf("frame batch: %w", err)
	}
	return ix, nil
}
