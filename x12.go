// Package x12 reads and writes X12 004010 interchanges.
//
// Parse and Serialize are inverse: for any transmission that serializes,
// parsing the output gives the same transmission back. For legal input
// text, Serialize(Parse(text)) equals Canonicalize(text), which differs
// from text at most in the line breaks after segment terminators.
//
// The work is done by subpackages:
//
//   - token splits text into segments, reading delimiters from the ISA header
//   - segment decodes and checks elements
//   - schema describes transaction sets as nested loops
//   - parse and encode place segments into loops and back
//   - ir holds the parsed tree
package x12

import (
	"bytes"

	"github.com/signadot/x12-format/go-x12/encode"
	"github.com/signadot/x12-format/go-x12/ir"
	"github.com/signadot/x12-format/go-x12/parse"
	"github.com/signadot/x12-format/go-x12/token"
)

func Parse(d []byte, opts ...parse.ParseOption) (*ir.Transmission, error) {
	return parse.Parse(d, opts...)
}

func Serialize(t *ir.Transmission, opts ...encode.EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(t, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Canonicalize rewrites d so that every segment terminator is followed by
// the same suffix as the ISA terminator. Nothing else changes.
func Canonicalize(d []byte) ([]byte, error) {
	toks, delims, err := token.Tokenize(nil, d)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(make([]byte, 0, len(d)))
	for i := range toks {
		buf.WriteString(toks[i].Render(delims))
		buf.WriteByte(delims.Segment)
		buf.WriteString(delims.Suffix)
	}
	return buf.Bytes(), nil
}

// Equal compares two transmissions without regard to the delimiters they
// were read with.
func Equal(a, b *ir.Transmission) bool {
	if a == nil || b == nil || a.ISA == nil || b.ISA == nil {
		return a.Equal(b)
	}
	bb := *b
	bb.Delimiters = a.Delimiters
	bb.ISA = b.ISA.Clone()
	bb.ISA.Set(16, a.ISA.Get(16))
	return a.Equal(&bb)
}
