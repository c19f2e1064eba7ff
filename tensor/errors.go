package tensor

import (
	"errors"
	"fmt"
)

// ErrShape is the sentinel matched by every ShapeError.
var ErrShape = errors.New("shape error")

// ShapeError reports an invalid or mismatched tensor shape.
type ShapeError struct {
	Op     string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("tensor: %s: %s", e.Op, e.Reason)
}

// Is reports whether target is ErrShape.
func (e *ShapeError) Is(target error) bool { return target == ErrShape }

func shapeErrorf(op, format string, args ...any) error {
	return &ShapeError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
