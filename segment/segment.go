package segment

import (
	"strings"

	"github.com/signadot/x12-format/go-x12/token"
)

// Segment is a tag and its elements. Elements[0] is element 01.
//
// Segments are values: they carry no position so that trees built from
// different documents compare equal when their content does.
type Segment struct {
	Tag      string
	Elements []Element
}

func New(tag string, elems ...Element) *Segment {
	return &Segment{Tag: tag, Elements: elems}
}

// Values builds a segment of scalar elements.
func Values(tag string, vs ...string) *Segment {
	s := &Segment{Tag: tag, Elements: make([]Element, len(vs))}
	for i, v := range vs {
		s.Elements[i] = Scalar(v)
	}
	return s
}

// FromToken converts a token to a segment, splitting composites on the
// component separator. ISA elements are never split since ISA16 is the
// separator itself.
func FromToken(t *token.Token, d token.Delimiters) *Segment {
	s := &Segment{Tag: t.Tag, Elements: make([]Element, len(t.Elements))}
	for i, raw := range t.Elements {
		if t.Tag == "ISA" {
			s.Elements[i] = Scalar(raw)
			continue
		}
		s.Elements[i] = ParseElement(raw, d.Component)
	}
	return s
}

// Get returns the element at 1-based position pos.
func (s *Segment) Get(pos int) Element {
	if s == nil || pos < 1 || pos > len(s.Elements) {
		return nil
	}
	return s.Elements[pos-1]
}

// Value returns Get(pos).Value().
func (s *Segment) Value(pos int) string {
	return s.Get(pos).Value()
}

// Set stores e at 1-based position pos, growing the segment as needed.
func (s *Segment) Set(pos int, e Element) {
	for len(s.Elements) < pos {
		s.Elements = append(s.Elements, nil)
	}
	s.Elements[pos-1] = e
}

// Render writes the segment with d, without the terminator.
func (s *Segment) Render(d token.Delimiters) string {
	b := &strings.Builder{}
	b.WriteString(s.Tag)
	for _, e := range s.Elements {
		b.WriteByte(d.Element)
		b.WriteString(e.Render(d.Component))
	}
	return b.String()
}

func (s *Segment) String() string {
	return s.Render(token.DefaultDelimiters)
}

func (s *Segment) Equal(o *Segment) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Tag != o.Tag || len(s.Elements) != len(o.Elements) {
		return false
	}
	for i := range s.Elements {
		if !s.Elements[i].Equal(o.Elements[i]) {
			return false
		}
	}
	return true
}

func (s *Segment) Clone() *Segment {
	if s == nil {
		return nil
	}
	c := &Segment{Tag: s.Tag, Elements: make([]Element, len(s.Elements))}
	for i, e := range s.Elements {
		c.Elements[i] = e.Clone()
	}
	return c
}
