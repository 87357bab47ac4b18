package ir

import (
	"strconv"

	"github.com/signadot/x12-format/go-x12/segment"
	"github.com/signadot/x12-format/go-x12/token"
)

// FunctionalGroup is a GS/GE pair around transaction sets of one type.
type FunctionalGroup struct {
	GS   *segment.Segment
	Sets []*Instance
	GE   *segment.Segment
}

// NewFunctionalGroup builds a group whose GE counts sets and repeats
// the GS06 control number.
func NewFunctionalGroup(gs *segment.Segment, sets ...*Instance) *FunctionalGroup {
	g := &FunctionalGroup{GS: gs}
	for _, s := range sets {
		g.Add(s)
	}
	if len(sets) == 0 {
		g.GE = segment.Values("GE", "0", gs.Value(6))
	}
	return g
}

// Add appends a transaction set and updates GE01.
func (g *FunctionalGroup) Add(set *Instance) {
	g.Sets = append(g.Sets, set)
	g.GE = segment.Values("GE", strconv.Itoa(len(g.Sets)), g.GS.Value(6))
}

// ID is the transaction set identifier shared by the group's sets.
func (g *FunctionalGroup) ID() string {
	if len(g.Sets) == 0 {
		return ""
	}
	return SetID(g.Sets[0])
}

// SetID returns ST01 of a transaction set instance.
func SetID(set *Instance) string {
	if len(set.Values) == 0 {
		return ""
	}
	return set.Values[0].Segment.Value(1)
}

func (g *FunctionalGroup) Equal(o *FunctionalGroup) bool {
	if !g.GS.Equal(o.GS) || !g.GE.Equal(o.GE) || len(g.Sets) != len(o.Sets) {
		return false
	}
	for i := range g.Sets {
		if !g.Sets[i].Equal(o.Sets[i]) {
			return false
		}
	}
	return true
}

// Transmission is a whole interchange.
type Transmission struct {
	Delimiters token.Delimiters
	ISA        *segment.Segment
	Groups     []*FunctionalGroup
	IEA        *segment.Segment
}

// NewTransmission builds an interchange whose IEA counts groups and
// repeats the ISA13 control number. ISA16 is set to the component
// separator of d.
func NewTransmission(d token.Delimiters, isa *segment.Segment, groups ...*FunctionalGroup) *Transmission {
	isa = isa.Clone()
	isa.Set(16, segment.Scalar(string(d.Component)))
	t := &Transmission{Delimiters: d, ISA: isa}
	for _, g := range groups {
		t.Add(g)
	}
	if len(groups) == 0 {
		t.IEA = segment.Values("IEA", "0", isa.Value(13))
	}
	return t
}

// Add appends a group and updates IEA01.
func (t *Transmission) Add(g *FunctionalGroup) {
	t.Groups = append(t.Groups, g)
	t.IEA = segment.Values("IEA", strconv.Itoa(len(t.Groups)), t.ISA.Value(13))
}

// Sets lists every transaction set in document order.
func (t *Transmission) Sets() []*Instance {
	var res []*Instance
	for _, g := range t.Groups {
		res = append(res, g.Sets...)
	}
	return res
}

func (t *Transmission) Equal(o *Transmission) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Delimiters != o.Delimiters || !t.ISA.Equal(o.ISA) || !t.IEA.Equal(o.IEA) {
		return false
	}
	if len(t.Groups) != len(o.Groups) {
		return false
	}
	for i := range t.Groups {
		if !t.Groups[i].Equal(o.Groups[i]) {
			return false
		}
	}
	return true
}
