package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/x12-format/go-x12/token"
)

var (
	errInternal = errors.New("internal parse error")

	ErrMissingMandatorySegment = errors.New("missing mandatory segment")
	ErrUnexpectedSegment       = errors.New("unexpected segment")
	ErrRepeatBoundExceeded     = fmt.Errorf("%w: repeat bound exceeded", ErrUnexpectedSegment)
	ErrControlCountMismatch    = errors.New("control count mismatch")
	ErrControlNumberMismatch   = errors.New("control number mismatch")
	ErrTransactionSetMismatch  = errors.New("transaction set mismatch")
)

// Err locates a parse failure. Index is the position of the offending
// segment in the token stream, or its length when input ran out. Found
// is empty at end of input.
type Err struct {
	Err      error
	Index    int
	Expected []string
	Found    string
	Msg      string
	Pos      *token.Pos
}

func (e *Err) Unwrap() error {
	return e.Err
}

func (e *Err) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Err.Error())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if len(e.Expected) != 0 {
		found := e.Found
		if found == "" {
			found = "end of input"
		}
		fmt.Fprintf(b, ": expected %s, found %s", strings.Join(e.Expected, "|"), found)
	}
	fmt.Fprintf(b, " (segment %d", e.Index)
	if e.Pos != nil {
		b.WriteString(" ")
		b.WriteString(e.Pos.String())
	}
	b.WriteString(")")
	return b.String()
}
