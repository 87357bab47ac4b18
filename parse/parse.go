package parse

import (
	"fmt"

	"github.com/signadot/x12-format/go-x12/debug"
	"github.com/signadot/x12-format/go-x12/ir"
	"github.com/signadot/x12-format/go-x12/schema"
	"github.com/signadot/x12-format/go-x12/segment"
	"github.com/signadot/x12-format/go-x12/token"
)

// Parse reads a whole interchange.
func Parse(d []byte, opts ...ParseOption) (*ir.Transmission, error) {
	toks, delims, err := token.Tokenize(nil, d)
	if err != nil {
		return nil, err
	}
	return Tokens(toks, delims, opts...)
}

// Tokens parses an interchange already split into tokens with delimiters
// delims. Any WithDelimiters option is overridden by delims.
func Tokens(toks []token.Token, delims token.Delimiters, opts ...ParseOption) (*ir.Transmission, error) {
	o := newOpts(opts)
	o.delims = delims
	i := 0
	return parseTransmission(toks, &i, o)
}

func parseTransmission(toks []token.Token, pi *int, o *parseOpts) (*ir.Transmission, error) {
	isa, err := expect(toks, pi, o, "ISA", "GS")
	if err != nil {
		return nil, err
	}
	var isaRec segment.ISA
	if err := unmarshal(toks, *pi-1, isa, &isaRec); err != nil {
		return nil, err
	}
	if debug.Envelope() {
		debug.Logf("interchange %s from %s to %s delims %s\n", isaRec.ControlNumber, isaRec.SenderID, isaRec.ReceiverID, o.delims)
	}
	t := &ir.Transmission{Delimiters: o.delims, ISA: isa}
	for {
		if tag, _ := peek(toks, *pi); tag != "GS" {
			break
		}
		g, err := parseGroup(toks, pi, o)
		if err != nil {
			return nil, err
		}
		t.Groups = append(t.Groups, g)
	}
	if len(t.Groups) == 0 {
		return nil, missing(toks, *pi, "GS")
	}
	iea, err := expect(toks, pi, o, "IEA", "GS")
	if err != nil {
		return nil, err
	}
	t.IEA = iea
	var ieaRec segment.IEA
	if err := unmarshal(toks, *pi-1, iea, &ieaRec); err != nil {
		return nil, err
	}
	if ieaRec.Count != len(t.Groups) {
		return nil, countErr(toks, *pi-1, "IEA01", ieaRec.Count, len(t.Groups))
	}
	if !o.lenient && ieaRec.ControlNumber != isaRec.ControlNumber {
		return nil, numberErr(toks, *pi-1, "IEA02", ieaRec.ControlNumber, "ISA13", isaRec.ControlNumber)
	}
	if tag, ok := peek(toks, *pi); ok {
		return nil, &Err{
			Err:   ErrUnexpectedSegment,
			Index: *pi,
			Found: tag,
			Msg:   "after IEA",
			Pos:   posAt(toks, *pi),
		}
	}
	return t, nil
}

func parseGroup(toks []token.Token, pi *int, o *parseOpts) (*ir.FunctionalGroup, error) {
	gs, err := expect(toks, pi, o, "GS", "ST")
	if err != nil {
		return nil, err
	}
	var gsRec segment.GS
	if err := unmarshal(toks, *pi-1, gs, &gsRec); err != nil {
		return nil, err
	}
	if debug.Envelope() {
		debug.Logf("  group %s %s version %s\n", gsRec.FunctionalID, gsRec.ControlNumber, gsRec.Version)
	}
	g := &ir.FunctionalGroup{GS: gs}
	for {
		if tag, _ := peek(toks, *pi); tag != "ST" {
			break
		}
		set, err := parseSet(toks, pi, o, g)
		if err != nil {
			return nil, err
		}
		g.Sets = append(g.Sets, set)
	}
	if len(g.Sets) == 0 {
		return nil, missing(toks, *pi, "ST")
	}
	ge, err := expect(toks, pi, o, "GE", "ST")
	if err != nil {
		return nil, err
	}
	g.GE = ge
	var geRec segment.GE
	if err := unmarshal(toks, *pi-1, ge, &geRec); err != nil {
		return nil, err
	}
	if geRec.Count != len(g.Sets) {
		return nil, countErr(toks, *pi-1, "GE01", geRec.Count, len(g.Sets))
	}
	if !o.lenient && geRec.ControlNumber != gsRec.ControlNumber {
		return nil, numberErr(toks, *pi-1, "GE02", geRec.ControlNumber, "GS06", gsRec.ControlNumber)
	}
	return g, nil
}

func parseSet(toks []token.Token, pi *int, o *parseOpts, g *ir.FunctionalGroup) (*ir.Instance, error) {
	start := *pi
	st := &toks[start]
	id := ""
	if len(st.Elements) > 0 {
		id = st.Elements[0]
	}
	switch {
	case o.setID != "" && id != o.setID:
		return nil, &Err{
			Err:   ErrTransactionSetMismatch,
			Index: start,
			Msg:   fmt.Sprintf("ST01 is %q, want %q", id, o.setID),
			Pos:   st.Pos,
		}
	case len(g.Sets) != 0 && id != g.ID():
		return nil, &Err{
			Err:   ErrTransactionSetMismatch,
			Index: start,
			Msg:   fmt.Sprintf("ST01 is %q in a group of %q", id, g.ID()),
			Pos:   st.Pos,
		}
	}
	ts, err := schema.Lookup(id)
	if err != nil {
		return nil, &Err{Err: err, Index: start, Found: st.Tag, Pos: st.Pos}
	}
	if debug.Envelope() {
		debug.Logf("    set %s (%s) at %d\n", ts.ID, ts.Name, start)
	}
	set, err := parseLoop(toks, ts.Body, []string{"ST", "GE"}, pi, o, 0)
	if err != nil {
		return nil, err
	}
	var stRec segment.ST
	if err := unmarshal(toks, start, set.Values[0].Segment, &stRec); err != nil {
		return nil, err
	}
	last := len(set.Values) - 1
	var seRec segment.SE
	if err := unmarshal(toks, *pi-1, set.Values[last].Segment, &seRec); err != nil {
		return nil, err
	}
	if n := *pi - start; seRec.Count != n {
		return nil, countErr(toks, *pi-1, "SE01", seRec.Count, n)
	}
	if !o.lenient && seRec.ControlNumber != stRec.ControlNumber {
		return nil, numberErr(toks, *pi-1, "SE02", seRec.ControlNumber, "ST02", stRec.ControlNumber)
	}
	return set, nil
}

// expect decodes the next token, which must have tag. next is what the
// caller would accept in place of tag when classifying a mismatch.
func expect(toks []token.Token, pi *int, o *parseOpts, tag, next string) (*segment.Segment, error) {
	got, ok := peek(toks, *pi)
	if got == tag {
		return decode(toks, pi, o)
	}
	e := missing(toks, *pi, tag).(*Err)
	if ok && got != next {
		e.Err = ErrUnexpectedSegment
	}
	return nil, e
}

func missing(toks []token.Token, i int, tag string) error {
	got, _ := peek(toks, i)
	return &Err{
		Err:      ErrMissingMandatorySegment,
		Index:    i,
		Expected: []string{tag},
		Found:    got,
		Pos:      posAt(toks, i),
	}
}

func unmarshal(toks []token.Token, i int, s *segment.Segment, v any) error {
	if err := segment.Unmarshal(s, v); err != nil {
		return &Err{Err: err, Index: i, Found: s.Tag, Pos: posAt(toks, i)}
	}
	return nil
}

func countErr(toks []token.Token, i int, field string, got, want int) error {
	return &Err{
		Err:   ErrControlCountMismatch,
		Index: i,
		Msg:   fmt.Sprintf("%s is %d, counted %d", field, got, want),
		Pos:   posAt(toks, i),
	}
}

func numberErr(toks []token.Token, i int, field, got, other, want string) error {
	return &Err{
		Err:   ErrControlNumberMismatch,
		Index: i,
		Msg:   fmt.Sprintf("%s is %q, %s is %q", field, got, other, want),
		Pos:   posAt(toks, i),
	}
}
