package encode

import (
	"github.com/signadot/x12-format/go-x12/segment"
	"github.com/signadot/x12-format/go-x12/token"
)

type EncodeOption func(*EncState)

// WithDelimiters writes with the separators of d instead of the
// transmission's. The transmission's suffix is kept unless d has one;
// WithSuffix("") drops it.
func WithDelimiters(d token.Delimiters) EncodeOption {
	return func(es *EncState) {
		es.delims = &d
	}
}

// WithSuffix sets what follows each segment terminator, typically "" or
// "\n".
func WithSuffix(s string) EncodeOption {
	return func(es *EncState) { es.suffix = &s }
}

func WithCodec(c segment.Codec) EncodeOption {
	return func(es *EncState) { es.codec = c }
}

// EncodeColors colors tags, separators and values. Colored output is for
// display only.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// Indent prefixes each segment with two spaces per loop level.
func Indent(v bool) EncodeOption {
	return func(es *EncState) { es.indent = v }
}
