package ir

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/signadot/x12-format/go-x12/schema"
	"github.com/signadot/x12-format/go-x12/segment"
	"github.com/signadot/x12-format/go-x12/token"
)

// Field is one key of an Object.
type Field struct {
	Key   string
	Value any
}

// Object is a JSON/YAML object that keeps its key order.
type Object []Field

func (o Object) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalJSON(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := marshalJSON(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalJSON is json.Marshal without HTML escaping, so that delimiters
// such as '>' stay readable.
func marshalJSON(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// mapSlice converts v, replacing Objects with yaml.MapSlice.
func mapSlice(v any) any {
	switch x := v.(type) {
	case Object:
		res := make(yaml.MapSlice, len(x))
		for i, f := range x {
			res[i] = yaml.MapItem{Key: f.Key, Value: mapSlice(f.Value)}
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i, e := range x {
			res[i] = mapSlice(e)
		}
		return res
	default:
		return v
	}
}

// Tree is the tree form of t.
//
// Segments are lists of elements, absent elements are "" and composites
// are lists of strings. A transaction set is an object keyed by slot
// name, absent slots are left out.
func (t *Transmission) Tree() Object {
	groups := make([]any, len(t.Groups))
	for i, g := range t.Groups {
		sets := make([]any, len(g.Sets))
		for j, s := range g.Sets {
			sets[j] = s.Tree()
		}
		groups[i] = Object{
			{"gs", segmentTree(g.GS)},
			{"sets", sets},
			{"ge", segmentTree(g.GE)},
		}
	}
	d := t.Delimiters
	delims := Object{
		{"segment", string(d.Segment)},
		{"element", string(d.Element)},
		{"component", string(d.Component)},
	}
	if d.Suffix != "" {
		delims = append(delims, Field{"suffix", d.Suffix})
	}
	return Object{
		{"delimiters", delims},
		{"isa", segmentTree(t.ISA)},
		{"groups", groups},
		{"iea", segmentTree(t.IEA)},
	}
}

// Tree is the tree form of one instance.
func (in *Instance) Tree() Object {
	res := Object{}
	for i, s := range in.Spec.Slots {
		v := &in.Values[i]
		switch s.Kind {
		case schema.Single, schema.Optional:
			if v.Segment != nil {
				res = append(res, Field{s.Name, segmentTree(v.Segment)})
			}
		case schema.Repeated:
			if len(v.Segments) == 0 {
				continue
			}
			segs := make([]any, len(v.Segments))
			for j, seg := range v.Segments {
				segs[j] = segmentTree(seg)
			}
			res = append(res, Field{s.Name, segs})
		case schema.Nested:
			if len(v.Loops) == 0 {
				continue
			}
			loops := make([]any, len(v.Loops))
			for j, child := range v.Loops {
				loops[j] = child.Tree()
			}
			res = append(res, Field{s.Name, loops})
		}
	}
	return res
}

func segmentTree(s *segment.Segment) []any {
	if s == nil {
		return nil
	}
	res := make([]any, len(s.Elements))
	for i, e := range s.Elements {
		switch {
		case e.Absent():
			res[i] = ""
		case e.IsComposite():
			res[i] = []string(e)
		default:
			res[i] = e[0]
		}
	}
	return res
}

func (t *Transmission) MarshalJSON() ([]byte, error) {
	return t.Tree().MarshalJSON()
}

// MarshalYAML renders the tree form as YAML.
func (t *Transmission) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(mapSlice(t.Tree()))
}

// FromTree reads the tree form, in JSON or YAML, and rebuilds the
// transmission. Transaction set specs are looked up in the schema
// registry by the ST01 of each set.
func FromTree(d []byte) (*Transmission, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(d, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTree, err)
	}
	tb := &treeBuilder{}
	return tb.transmission(doc)
}

type treeBuilder struct {
	path Path
}

func (tb *treeBuilder) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at %s: %s", ErrTree, tb.path, fmt.Sprintf(format, args...))
}

func (tb *treeBuilder) at(p Path) func() {
	old := tb.path
	tb.path = p
	return func() { tb.path = old }
}

func (tb *treeBuilder) transmission(doc map[string]any) (*Transmission, error) {
	if err := tb.keys(doc, "delimiters", "isa", "groups", "iea"); err != nil {
		return nil, err
	}
	t := &Transmission{}
	d, err := tb.delimiters(doc["delimiters"])
	if err != nil {
		return nil, err
	}
	t.Delimiters = d
	if t.ISA, err = tb.segment("ISA", doc["isa"], Path{".isa"}); err != nil {
		return nil, err
	}
	if t.IEA, err = tb.segment("IEA", doc["iea"], Path{".iea"}); err != nil {
		return nil, err
	}
	groups, ok := doc["groups"].([]any)
	if !ok {
		return nil, tb.errorf("groups must be a list")
	}
	for i, gv := range groups {
		gp := Path{".groups"}.Index(i)
		g, err := tb.group(gv, gp)
		if err != nil {
			return nil, err
		}
		t.Groups = append(t.Groups, g)
	}
	return t, nil
}

func (tb *treeBuilder) keys(m map[string]any, allowed ...string) error {
outer:
	for k := range m {
		for _, a := range allowed {
			if k == a {
				continue outer
			}
		}
		return tb.errorf("unknown key %q", k)
	}
	return nil
}

func (tb *treeBuilder) group(v any, p Path) (*FunctionalGroup, error) {
	defer tb.at(p)()
	m, ok := v.(map[string]any)
	if !ok {
		return nil, tb.errorf("group must be an object")
	}
	if err := tb.keys(m, "gs", "sets", "ge"); err != nil {
		return nil, err
	}
	g := &FunctionalGroup{}
	var err error
	if g.GS, err = tb.segment("GS", m["gs"], p.Field("gs")); err != nil {
		return nil, err
	}
	if g.GE, err = tb.segment("GE", m["ge"], p.Field("ge")); err != nil {
		return nil, err
	}
	sets, ok := m["sets"].([]any)
	if !ok {
		return nil, tb.errorf("sets must be a list")
	}
	for i, sv := range sets {
		set, err := tb.set(sv, p.Field("sets").Index(i))
		if err != nil {
			return nil, err
		}
		g.Sets = append(g.Sets, set)
	}
	return g, nil
}

func (tb *treeBuilder) set(v any, p Path) (*Instance, error) {
	defer tb.at(p)()
	m, ok := v.(map[string]any)
	if !ok {
		return nil, tb.errorf("transaction set must be an object")
	}
	st, err := tb.segment("ST", m["st"], p.Field("st"))
	if err != nil {
		return nil, err
	}
	ts, err := schema.Lookup(st.Value(1))
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %w", ErrTree, p, err)
	}
	return tb.instance(ts.Body, m, p)
}

func (tb *treeBuilder) instance(spec *schema.Loop, m map[string]any, p Path) (*Instance, error) {
	defer tb.at(p)()
	in := NewInstance(spec)
	for k := range m {
		if s, _ := spec.Slot(k); s == nil {
			return nil, tb.errorf("loop %s has no slot %q", spec.ID, k)
		}
	}
	for i, s := range spec.Slots {
		v, ok := m[s.Name]
		if !ok {
			continue
		}
		sp := p.Field(s.Name)
		switch s.Kind {
		case schema.Single, schema.Optional:
			seg, err := tb.segment(s.Tag, v, sp)
			if err != nil {
				return nil, err
			}
			in.Values[i].Segment = seg
		case schema.Repeated:
			l, ok := v.([]any)
			if !ok {
				return nil, tb.errorf("%s must be a list of segments", s.Name)
			}
			for j, sv := range l {
				seg, err := tb.segment(s.Tag, sv, sp.Index(j))
				if err != nil {
					return nil, err
				}
				in.Values[i].Segments = append(in.Values[i].Segments, seg)
			}
		case schema.Nested:
			l, ok := v.([]any)
			if !ok {
				return nil, tb.errorf("%s must be a list of loops", s.Name)
			}
			for j, lv := range l {
				lm, ok := lv.(map[string]any)
				if !ok {
					return nil, tb.errorf("%s[%d] must be an object", s.Name, j)
				}
				child, err := tb.instance(s.Loop, lm, sp.Index(j))
				if err != nil {
					return nil, err
				}
				in.Values[i].Loops = append(in.Values[i].Loops, child)
			}
		}
	}
	return in, nil
}

func (tb *treeBuilder) segment(tag string, v any, p Path) (*segment.Segment, error) {
	defer tb.at(p)()
	l, ok := v.([]any)
	if !ok {
		return nil, tb.errorf("%s must be a list of elements", tag)
	}
	s := &segment.Segment{Tag: tag, Elements: make([]segment.Element, len(l))}
	for i, ev := range l {
		switch x := ev.(type) {
		case nil:
		case []any:
			comps := make([]string, len(x))
			for j, c := range x {
				comps[j] = scalar(c)
			}
			s.Elements[i] = segment.Composite(comps...)
		default:
			s.Elements[i] = segment.Scalar(scalar(x))
		}
	}
	return s, nil
}

func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func (tb *treeBuilder) delimiters(v any) (d token.Delimiters, err error) {
	defer tb.at(Path{".delimiters"})()
	if v == nil {
		return token.DefaultDelimiters, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return d, tb.errorf("delimiters must be an object")
	}
	if err := tb.keys(m, "segment", "element", "component", "suffix"); err != nil {
		return d, err
	}
	one := func(k string) (byte, error) {
		s, ok := m[k].(string)
		if !ok || len(s) != 1 {
			return 0, tb.errorf("%s must be one character", k)
		}
		return s[0], nil
	}
	if d.Segment, err = one("segment"); err != nil {
		return d, err
	}
	if d.Element, err = one("element"); err != nil {
		return d, err
	}
	if d.Component, err = one("component"); err != nil {
		return d, err
	}
	if sfx, ok := m["suffix"]; ok {
		d.Suffix = scalar(sfx)
	}
	if err := d.Validate(); err != nil {
		return d, tb.errorf("%v", err)
	}
	return d, nil
}
