package parse

import (
	"fmt"
	"slices"
	"strings"

	"github.com/signadot/x12-format/go-x12/debug"
	"github.com/signadot/x12-format/go-x12/ir"
	"github.com/signadot/x12-format/go-x12/schema"
	"github.com/signadot/x12-format/go-x12/segment"
	"github.com/signadot/x12-format/go-x12/token"
)

// Loop places segments from toks into one instance of spec, starting at
// toks[0]. It returns the instance and the number of tokens consumed.
// Tokens left over are for the caller to place.
func Loop(toks []token.Token, spec *schema.Loop, opts ...ParseOption) (*ir.Instance, int, error) {
	o := newOpts(opts)
	i := 0
	in, err := parseLoop(toks, spec, nil, &i, o, 0)
	if err != nil {
		return nil, i, err
	}
	return in, i, nil
}

// parseLoop fills one instance of spec. follow holds the tags an
// enclosing loop can accept once this instance is complete.
func parseLoop(toks []token.Token, spec *schema.Loop, follow []string, pi *int, o *parseOpts, depth int) (*ir.Instance, error) {
	if debug.Loop() {
		at := "end of input"
		if *pi < len(toks) {
			at = toks[*pi].Info()
		}
		debug.Logf("%sloop %s at %s follow=%v\n", indent(depth), spec.ID, at, follow)
	}
	in := ir.NewInstance(spec)
	for i, s := range spec.Slots {
		v := &in.Values[i]
		switch s.Kind {
		case schema.Single:
			tag, _ := peek(toks, *pi)
			if tag != s.Tag {
				return nil, mismatch(toks, *pi, spec, i, follow)
			}
			seg, err := decode(toks, pi, o)
			if err != nil {
				return nil, err
			}
			v.Segment = seg
		case schema.Optional:
			if tag, _ := peek(toks, *pi); tag != s.Tag {
				continue
			}
			seg, err := decode(toks, pi, o)
			if err != nil {
				return nil, err
			}
			v.Segment = seg
		case schema.Repeated:
			for !s.Bounded(len(v.Segments)) {
				if tag, _ := peek(toks, *pi); tag != s.Tag {
					break
				}
				seg, err := decode(toks, pi, o)
				if err != nil {
					return nil, err
				}
				v.Segments = append(v.Segments, seg)
			}
			if len(v.Segments) == 0 && s.Required {
				return nil, mismatch(toks, *pi, spec, i, follow)
			}
			if err := checkBound(toks, *pi, spec, i, follow, len(v.Segments)); err != nil {
				return nil, err
			}
		case schema.Nested:
			inner := append(slices.Clone(s.Loop.Entry()), after(spec, i, follow)...)
			for !s.Bounded(len(v.Loops)) {
				tag, _ := peek(toks, *pi)
				if !s.Loop.Enters(tag) {
					break
				}
				start := *pi
				child, err := parseLoop(toks, s.Loop, inner, pi, o, depth+1)
				if err != nil {
					return nil, err
				}
				if *pi == start {
					return nil, &Err{Err: errInternal, Index: start, Msg: fmt.Sprintf("loop %s consumed nothing", s.Loop.ID), Pos: posAt(toks, start)}
				}
				v.Loops = append(v.Loops, child)
			}
			if len(v.Loops) == 0 && s.Required {
				return nil, mismatch(toks, *pi, spec, i, follow)
			}
			if err := checkBound(toks, *pi, spec, i, follow, len(v.Loops)); err != nil {
				return nil, err
			}
		}
		if debug.Loop() && v.Count() > 0 {
			debug.Logf("%s  %s x%d\n", indent(depth), s.Name, v.Count())
		}
	}
	return in, nil
}

func peek(toks []token.Token, i int) (string, bool) {
	if i >= len(toks) {
		return "", false
	}
	return toks[i].Tag, true
}

func decode(toks []token.Token, pi *int, o *parseOpts) (*segment.Segment, error) {
	t := &toks[*pi]
	raw := segment.FromToken(t, o.delims)
	seg, err := o.codec.Decode(raw.Tag, raw.Elements)
	if err != nil {
		return nil, &Err{Err: err, Index: *pi, Found: t.Tag, Pos: t.Pos}
	}
	*pi++
	return seg, nil
}

// after is the follow set of slot i: what may come once the slot is
// done, reaching into the enclosing follow when every later slot is
// optional.
func after(spec *schema.Loop, i int, follow []string) []string {
	first, open := spec.FirstAfter(i)
	if open {
		first = append(first, follow...)
	}
	return first
}

// later lists every tag that some slot after i, or the enclosing loop,
// can accept.
func later(spec *schema.Loop, i int, follow []string) []string {
	var res []string
	for _, s := range spec.Slots[i+1:] {
		res = append(res, s.First()...)
	}
	return append(res, follow...)
}

// mismatch reports the failure of mandatory slot i. A tag that belongs
// further on means the slot's segment is missing; anything else is out
// of place.
func mismatch(toks []token.Token, idx int, spec *schema.Loop, i int, follow []string) error {
	s := spec.Slots[i]
	tag, ok := peek(toks, idx)
	e := &Err{
		Err:      ErrMissingMandatorySegment,
		Index:    idx,
		Expected: s.First(),
		Found:    tag,
		Msg:      fmt.Sprintf("%s in loop %s", s.Name, spec.ID),
		Pos:      posAt(toks, idx),
	}
	if ok && !slices.Contains(later(spec, i, follow), tag) {
		e.Err = ErrUnexpectedSegment
	}
	return e
}

// checkBound fails when slot i has reached its bound, the next tag would
// still start the slot, and nothing after the slot can take it.
func checkBound(toks []token.Token, idx int, spec *schema.Loop, i int, follow []string, n int) error {
	s := spec.Slots[i]
	if !s.Bounded(n) {
		return nil
	}
	tag, ok := peek(toks, idx)
	if !ok || !s.Starts(tag) || slices.Contains(after(spec, i, follow), tag) {
		return nil
	}
	return &Err{
		Err:   ErrRepeatBoundExceeded,
		Index: idx,
		Found: tag,
		Msg:   fmt.Sprintf("%s in loop %s allows %d", s.Name, spec.ID, s.Max),
		Pos:   posAt(toks, idx),
	}
}

func posAt(toks []token.Token, i int) *token.Pos {
	switch {
	case i < len(toks):
		return toks[i].Pos
	case len(toks) == 0:
		return nil
	}
	p := toks[len(toks)-1].Pos
	if p == nil || p.D == nil {
		return p
	}
	return p.D.End()
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
