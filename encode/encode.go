package encode

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/x12-format/go-x12/ir"
	"github.com/signadot/x12-format/go-x12/schema"
	"github.com/signadot/x12-format/go-x12/segment"
	"github.com/signadot/x12-format/go-x12/token"
)

type EncState struct {
	delims *token.Delimiters
	suffix *string
	codec  segment.Codec
	indent bool
	depth  int

	d     token.Delimiters
	Color func(ColorAttr, string) string
}

func newState(d token.Delimiters, opts []EncodeOption) (*EncState, error) {
	es := &EncState{codec: segment.Default}
	for _, opt := range opts {
		opt(es)
	}
	es.d = d
	if es.delims != nil {
		es.d.Segment, es.d.Element, es.d.Component = es.delims.Segment, es.delims.Element, es.delims.Component
		if es.delims.Suffix != "" {
			es.d.Suffix = es.delims.Suffix
		}
	}
	if es.suffix != nil {
		es.d.Suffix = *es.suffix
	}
	if err := es.d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return es, nil
}

// Encode writes a whole interchange.
func Encode(t *ir.Transmission, w io.Writer, opts ...EncodeOption) error {
	es, err := newState(t.Delimiters, opts)
	if err != nil {
		return err
	}
	if t.ISA == nil {
		return fmt.Errorf("%w: no ISA", ErrEncoding)
	}
	if len(t.Groups) == 0 {
		return fmt.Errorf("%w: no functional groups", ErrEncoding)
	}
	isa := t.ISA.Clone()
	isa.Set(16, segment.Scalar(string(es.d.Component)))
	if err := writeSegment(w, isa, es); err != nil {
		return err
	}
	for i, g := range t.Groups {
		if err := encodeGroup(g, w, es); err != nil {
			return fmt.Errorf("group %d: %w", i, err)
		}
	}
	return writeSegment(w, trailer("IEA", t.IEA, len(t.Groups), t.ISA.Value(13)), es)
}

func encodeGroup(g *ir.FunctionalGroup, w io.Writer, es *EncState) error {
	if g.GS == nil {
		return fmt.Errorf("%w: no GS", ErrEncoding)
	}
	if len(g.Sets) == 0 {
		return fmt.Errorf("%w: no transaction sets", ErrEncoding)
	}
	if err := writeSegment(w, g.GS, es); err != nil {
		return err
	}
	id := g.ID()
	for i, set := range g.Sets {
		if got := ir.SetID(set); got != id {
			return fmt.Errorf("%w: set %d is %q in a group of %q", ErrEncoding, i, got, id)
		}
		if err := encodeSet(set, w, es); err != nil {
			return fmt.Errorf("set %d: %w", i, err)
		}
	}
	return writeSegment(w, trailer("GE", g.GE, len(g.Sets), g.GS.Value(6)), es)
}

// encodeSet writes a transaction set with SE01 set to its segment count.
func encodeSet(set *ir.Instance, w io.Writer, es *EncState) error {
	n := len(set.Values)
	if n == 0 || n != len(set.Spec.Slots) {
		return fmt.Errorf("%w: instance of %s has %d values for %d slots", ErrEncoding, set.Spec.ID, n, len(set.Spec.Slots))
	}
	cp := *set
	cp.Values = slices.Clone(set.Values)
	last := &cp.Values[n-1]
	if last.Segment != nil {
		se := last.Segment.Clone()
		se.Set(1, segment.Scalar(strconv.Itoa(set.Len())))
		last.Segment = se
	}
	return encodeLoop(&cp, w, es, nil)
}

// trailer returns seg, or a fresh segment with tag when seg is nil, with
// its count element set to n. A missing control number is taken from
// the header.
func trailer(tag string, seg *segment.Segment, n int, control string) *segment.Segment {
	if seg == nil {
		seg = segment.Values(tag, "", control)
	} else {
		seg = seg.Clone()
	}
	seg.Set(1, segment.Scalar(strconv.Itoa(n)))
	if seg.Get(2).Absent() {
		seg.Set(2, segment.Scalar(control))
	}
	return seg
}

// Loop writes one loop instance after checking it against its spec.
func Loop(in *ir.Instance, w io.Writer, opts ...EncodeOption) error {
	es, err := newState(token.DefaultDelimiters, opts)
	if err != nil {
		return err
	}
	return encodeLoop(in, w, es, nil)
}

func encodeLoop(in *ir.Instance, w io.Writer, es *EncState, p ir.Path) error {
	spec := in.Spec
	if len(in.Values) != len(spec.Slots) {
		return fmt.Errorf("%w: instance of loop %s has %d values for %d slots", ErrEncoding, spec.ID, len(in.Values), len(spec.Slots))
	}
	for i, s := range spec.Slots {
		v := &in.Values[i]
		sp := p.Field(s.Name)
		if err := checkSlot(s, v, sp); err != nil {
			return err
		}
		switch s.Kind {
		case schema.Single, schema.Optional:
			if v.Segment == nil {
				continue
			}
			if err := writeSegment(w, v.Segment, es); err != nil {
				return fmt.Errorf("%s: %w", sp, err)
			}
		case schema.Repeated:
			for j, seg := range v.Segments {
				if err := writeSegment(w, seg, es); err != nil {
					return fmt.Errorf("%s: %w", sp.Index(j), err)
				}
			}
		case schema.Nested:
			es.depth++
			for j, child := range v.Loops {
				if err := encodeLoop(child, w, es, sp.Index(j)); err != nil {
					es.depth--
					return err
				}
			}
			es.depth--
		}
	}
	return nil
}

func checkSlot(s *schema.Slot, v *ir.Value, p ir.Path) error {
	n := v.Count()
	switch s.Kind {
	case schema.Single, schema.Optional:
		if len(v.Segments) != 0 || len(v.Loops) != 0 {
			return fmt.Errorf("%w: %s holds a list", ErrEncoding, p)
		}
	case schema.Repeated:
		if v.Segment != nil || len(v.Loops) != 0 {
			return fmt.Errorf("%w: %s is not a segment list", ErrEncoding, p)
		}
	case schema.Nested:
		if v.Segment != nil || len(v.Segments) != 0 {
			return fmt.Errorf("%w: %s is not a loop list", ErrEncoding, p)
		}
	}
	if n == 0 && s.Mandatory() {
		return fmt.Errorf("%w: missing mandatory %s", ErrEncoding, p)
	}
	if s.Kind == schema.Repeated || s.Kind == schema.Nested {
		if s.Max > 0 && n > s.Max {
			return fmt.Errorf("%w: %s has %d items, at most %d allowed", ErrEncoding, p, n, s.Max)
		}
	}
	for _, seg := range append(slices.Clone(v.Segments), v.Segment) {
		if seg != nil && seg.Tag != s.Tag {
			return fmt.Errorf("%w: %s segment in %s slot %s", ErrEncoding, seg.Tag, s.Tag, p)
		}
	}
	for _, child := range v.Loops {
		if child.Spec != s.Loop {
			return fmt.Errorf("%w: %s is an instance of loop %s, want %s", ErrEncoding, p, child.Spec.ID, s.Loop.ID)
		}
	}
	return nil
}

func writeSegment(w io.Writer, seg *segment.Segment, es *EncState) error {
	tag, elems, err := es.codec.Encode(seg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	for i, e := range elems {
		if tag == "ISA" && i == 15 {
			continue
		}
		for _, c := range e {
			if es.d.ContainsDelimiter(c) {
				return fmt.Errorf("%w: %s%02d %q", ErrDelimiterInData, tag, i+1, c)
			}
		}
	}
	var line string
	if es.Color == nil {
		line = segment.New(tag, elems...).Render(es.d)
	} else {
		line = colorSegment(tag, elems, es)
	}
	if es.indent {
		line = strings.Repeat("  ", es.depth) + line
	}
	_, err = io.WriteString(w, line+string(es.d.Segment)+es.d.Suffix)
	return err
}

func colorSegment(tag string, elems []segment.Element, es *EncState) string {
	b := &strings.Builder{}
	switch tag {
	case "ISA", "IEA", "GS", "GE", "ST", "SE":
		b.WriteString(es.Color(EnvelopeColor, tag))
	default:
		b.WriteString(es.Color(TagColor, tag))
	}
	elSep := es.Color(SepColor, string(es.d.Element))
	compSep := es.Color(SepColor, string(es.d.Component))
	for _, e := range elems {
		b.WriteString(elSep)
		attr := ValueColor
		if e.IsComposite() {
			attr = ComponentColor
		}
		for j, c := range e {
			if j > 0 {
				b.WriteString(compSep)
			}
			b.WriteString(es.Color(attr, c))
		}
	}
	return b.String()
}
