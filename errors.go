package unsupseg

import (
	"errors"

	"github.com/hupe1980/unsupseg/distance"
	"github.com/hupe1980/unsupseg/embed"
	"github.com/hupe1980/unsupseg/framebatch"
	"github.com/hupe1980/unsupseg/internal/kmeans"
	"github.com/hupe1980/unsupseg/persistence"
	"github.com/hupe1980/unsupseg/tensor"
)

var (
	// ErrShape is returned when a sample or filter has an incompatible shape.
	ErrShape = tensor.ErrShape

	// ErrDegenerateNorm is returned when an embedding has zero norm.
	ErrDegenerateNorm = distance.ErrDegenerateNorm

	// ErrEmptyCluster marks a cluster that received no samples during a pass.
	// It is attached as "error" to the warning logged for that pass.
	ErrEmptyCluster = kmeans.ErrEmptyCluster

	// ErrEmptySequence is returned when a segment without frames reaches the DTW oracle.
	ErrEmptySequence = embed.ErrEmptySequence

	// ErrTruncated is returned when a frame batch ends inside a segment.
	ErrTruncated = framebatch.ErrTruncated

	// ErrMalformedFile is matched by every MalformedFileError.
	ErrMalformedFile = persistence.ErrMalformed

	// ErrMissingArgument is returned when a required input is not configured.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = kmeans.ErrInvalidK
)

// MalformedFileError reports a centers or parameter file that cannot be parsed.
type MalformedFileError = persistence.MalformedFileError

// ErrDimensionMismatch indicates an embedding/centroid dimensionality mismatch.
type ErrDimensionMismatch = kmeans.ErrDimensionMismatch

// IsSkippable reports whether err only affects the current sample.
// Skippable samples are logged, counted and left out of ordinals; every
// other error aborts the run.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrShape) ||
		errors.Is(err, ErrDegenerateNorm) ||
		errors.Is(err, ErrEmptySequence)
}
