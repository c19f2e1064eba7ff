package persistence

import (
	"errors"
	"fmt"
)

// ErrMalformed is the sentinel matched by every MalformedFileError.
var ErrMalformed = errors.New("malformed file")

// MalformedFileError reports a centers or parameter file whose content does
// not match the expected layout or dimensionality.
type MalformedFileError struct {
	Path   string
	Line   int
	Reason string
}

func (e *MalformedFileError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("malformed file %s:%d: %s", e.Path, e.Line, e.Reason)
	case e.Path != "":
		return fmt.Sprintf("malformed file %s: %s", e.Path, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("malformed file: line %d: %s", e.Line, e.Reason)
	default:
		return "malformed file: " + e.Reason
	}
}

// Is reports whether target is ErrMalformed.
func (e *MalformedFileError) Is(target error) bool { return target == ErrMalformed }

func malformed(line int, format string, args ...any) error {
	return &MalformedFileError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

func withPath(err error, path string) error {
	var me *MalformedFileError
	if errors.As(err, &me) && me.Path == "" {
		me.Path = path
	}
	return err
}
