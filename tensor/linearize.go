package tensor

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// Patches is the linearized form of a 2-D input: one row per valid filter
// position, each row holding the flattened Hf·Wf receptive field.
type Patches struct {
	// OutTime and OutFeature are the extents of the valid correlation grid,
	// (T−Hf+1) and (D−Wf+1).
	OutTime    int
	OutFeature int
	// Width is Hf·Wf.
	Width int
	// Data is (OutTime·OutFeature × Width) row-major.
	Data []float64
}

// Rows returns the number of patch positions.
func (p *Patches) Rows() int { return p.OutTime * p.OutFeature }

// Row returns the patch at flattened position r.
func (p *Patches) Row(r int) []float64 {
	return p.Data[r*p.Width : (r+1)*p.Width]
}

// Position converts a flattened row index into grid coordinates.
func (p *Patches) Position(r int) (i, j int) {
	return r / p.OutFeature, r % p.OutFeature
}

// Energy returns the squared L2 norm of every patch.
func (p *Patches) Energy() []float64 {
	out := make([]float64, p.Rows())
	for r := range out {
		row := p.Row(r)
		out[r] = blas64.Dot(blas64.Vector{N: p.Width, Inc: 1, Data: row}, blas64.Vector{N: p.Width, Inc: 1, Data: row})
	}
	return out
}

// Linearize extracts every valid hf × wf patch of channel 0 of input.
// No padding is applied.
func Linearize(input *Tensor3D, hf, wf int) (*Patches, error) {
	s := input.shape
	if s.Channel != 1 {
		return nil, shapeErrorf("linearize", "input must have one channel, got %d", s.Channel)
	}
	if hf <= 0 || wf <= 0 {
		return nil, shapeErrorf("linearize", "filter extents must be positive, got %d×%d", hf, wf)
	}
	if hf > s.Time || wf > s.Feature {
		return nil, shapeErrorf("linearize", "input %d×%d smaller than filter %d×%d", s.Time, s.Feature, hf, wf)
	}

	p := &Patches{
		OutTime:    s.Time - hf + 1,
		OutFeature: s.Feature - wf + 1,
		Width:      hf * wf,
	}
	p.Data = make([]float64, p.Rows()*p.Width)

	for i := 0; i < p.OutTime; i++ {
		for j := 0; j < p.OutFeature; j++ {
			row := p.Row(i*p.OutFeature + j)
			for a := 0; a < hf; a++ {
				for b := 0; b < wf; b++ {
					row[a*wf+b] = input.At(i+a, j+b, 0)
				}
			}
		}
	}
	return p, nil
}

// Correlate multiplies the linearized patches by the filter bank, contracting
// the Hf·Wf axis. The result is (Rows × C) row-major.
func Correlate(p *Patches, filters *Tensor3D) ([]float64, error) {
	fs := filters.shape
	if p.Width != fs.Time*fs.Feature {
		return nil, shapeErrorf("correlate", "patch width %d does not match filter %d×%d", p.Width, fs.Time, fs.Feature)
	}

	rows, channels := p.Rows(), fs.Channel
	out := make([]float64, rows*channels)

	// out = patches (rows × width) @ filters (width × channels)
	blas64.Gemm(
		blas.NoTrans,
		blas.NoTrans,
		1.0,
		blas64.General{Rows: rows, Cols: p.Width, Stride: p.Width, Data: p.Data},
		blas64.General{Rows: p.Width, Cols: channels, Stride: channels, Data: filters.data},
		0.0,
		blas64.General{Rows: rows, Cols: channels, Stride: channels, Data: out},
	)
	return out, nil
}
