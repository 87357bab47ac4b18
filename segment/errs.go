package segment

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedSegment = errors.New("malformed segment")
	ErrUnknownSegment   = errors.New("unknown segment")
)

// FieldErr locates a codec failure at one element of one segment. Pos is
// the 1-based element position, or 0 when the segment as a whole is at
// fault.
type FieldErr struct {
	Tag string
	Pos int
	Err error
}

func (e *FieldErr) Error() string {
	if e.Pos == 0 {
		return fmt.Sprintf("%s: %s", e.Tag, e.Err)
	}
	return fmt.Sprintf("%s%02d: %s", e.Tag, e.Pos, e.Err)
}

func (e *FieldErr) Unwrap() error {
	return e.Err
}

func malformed(tag string, pos int, format string, args ...any) error {
	return &FieldErr{
		Tag: tag,
		Pos: pos,
		Err: fmt.Errorf("%w: "+format, append([]any{ErrMalformedSegment}, args...)...),
	}
}
