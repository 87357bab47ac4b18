package parse

import (
	"github.com/signadot/x12-format/go-x12/segment"
	"github.com/signadot/x12-format/go-x12/token"
)

type parseOpts struct {
	codec   segment.Codec
	setID   string
	lenient bool
	delims  token.Delimiters
}

type ParseOption func(*parseOpts)

// TransactionSet requires every transaction set to have ST01 equal to id.
func TransactionSet(id string) ParseOption {
	return func(o *parseOpts) { o.setID = id }
}

// LenientControlNumbers turns off the SE02/ST02, GE02/GS06 and
// IEA02/ISA13 agreement checks. Counts are still checked.
func LenientControlNumbers() ParseOption {
	return func(o *parseOpts) { o.lenient = true }
}

// WithCodec decodes segments with c instead of segment.Default.
func WithCodec(c segment.Codec) ParseOption {
	return func(o *parseOpts) { o.codec = c }
}

// WithDelimiters sets the component separator used to split elements
// when tokens are handed to Loop directly. Parse takes delimiters from
// the ISA header.
func WithDelimiters(d token.Delimiters) ParseOption {
	return func(o *parseOpts) { o.delims = d }
}

func newOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{
		codec:  segment.Default,
		delims: token.DefaultDelimiters,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
