package segment

import (
	"fmt"
	"maps"
	"slices"
	"unicode/utf8"
)

// Codec maps a tag and its elements to a checked segment and back.
// Decode(Encode(s)) must equal s for every s that Encode accepts.
type Codec interface {
	Decode(tag string, elems []Element) (*Segment, error)
	Encode(s *Segment) (string, []Element, error)
}

// Default is a non-strict DefCodec over the built-in definitions.
var Default Codec = NewDefCodec()

// DefCodec checks segments against element definitions. Segments whose
// tag has no definition pass unchecked unless the codec is strict.
// Elements past the last definition are kept as-is.
type DefCodec struct {
	defs   map[string]*Def
	strict bool
}

type CodecOption func(*DefCodec)

// Strict makes the codec reject tags it has no definition for.
func Strict() CodecOption {
	return func(c *DefCodec) { c.strict = true }
}

// WithDefs adds definitions, replacing built-in ones with the same tag.
func WithDefs(defs map[string]*Def) CodecOption {
	return func(c *DefCodec) {
		maps.Copy(c.defs, defs)
	}
}

func NewDefCodec(opts ...CodecOption) *DefCodec {
	c := &DefCodec{defs: maps.Clone(builtinDefs)}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *DefCodec) Def(tag string) *Def {
	return c.defs[tag]
}

func (c *DefCodec) Decode(tag string, elems []Element) (*Segment, error) {
	s := &Segment{Tag: tag, Elements: elems}
	if err := c.Check(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *DefCodec) Encode(s *Segment) (string, []Element, error) {
	if err := c.Check(s); err != nil {
		return "", nil, err
	}
	return s.Tag, s.Elements, nil
}

// Check verifies s against its definition.
func (c *DefCodec) Check(s *Segment) error {
	def := c.defs[s.Tag]
	if def == nil {
		if c.strict {
			return &FieldErr{Tag: s.Tag, Err: ErrUnknownSegment}
		}
		return nil
	}
	for i, ed := range def.Elements {
		pos := i + 1
		e := s.Get(pos)
		if e.Absent() {
			if ed.Required {
				return malformed(s.Tag, pos, "missing mandatory element %s", ed.label())
			}
			continue
		}
		if ed.Composite {
			continue
		}
		if e.IsComposite() {
			return malformed(s.Tag, pos, "%s is not a composite", ed.label())
		}
		if err := ed.checkValue(s.Tag, pos, e[0]); err != nil {
			return err
		}
	}
	return nil
}

func (ed *ElemDef) checkValue(tag string, pos int, v string) error {
	n := utf8.RuneCountInString(v)
	if (ed.Min > 0 && n < ed.Min) || (ed.Max > 0 && n > ed.Max) {
		return malformed(tag, pos, "length %d of %s outside %d..%d", n, ed.label(), ed.Min, ed.Max)
	}
	if len(ed.Codes) > 0 && !slices.Contains(ed.Codes, v) {
		return malformed(tag, pos, "%q is not a code of %s", v, ed.label())
	}
	return nil
}

func (ed *ElemDef) label() string {
	if ed.Name == "" {
		return ed.Ref
	}
	return fmt.Sprintf("%s (%s)", ed.Name, ed.Ref)
}
