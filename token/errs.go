package token

import (
	"errors"
	"fmt"
)

var (
	ErrBadHeader     = errors.New("bad interchange header")
	ErrBadDelimiters = errors.New("bad delimiters")
	ErrBadTag        = errors.New("bad segment tag")
	ErrEmptySegment  = errors.New("empty segment")
	ErrUnterminated  = errors.New("unterminated segment")
)

type TokenizeErr struct {
	Err error
	Pos Pos
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func NewTokenizeErr(e error, p *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: *p}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func headerErr(what string, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("%w: %s", ErrBadHeader, what), p)
}
