package ir

import (
	"fmt"

	"github.com/signadot/x12-format/go-x12/schema"
	"github.com/signadot/x12-format/go-x12/segment"
)

// Value is the content of one slot. Which field is used depends on the
// slot kind: Segment for Single and Optional, Segments for Repeated and
// Loops for Nested. A nil Segment or empty list is absent.
type Value struct {
	Segment  *segment.Segment
	Segments []*segment.Segment
	Loops    []*Instance
}

// Count is the number of items held.
func (v *Value) Count() int {
	switch {
	case v.Segment != nil:
		return 1
	case len(v.Segments) != 0:
		return len(v.Segments)
	default:
		return len(v.Loops)
	}
}

// Instance is one application of a loop spec.
type Instance struct {
	Spec   *schema.Loop
	Values []Value
}

// NewInstance returns an empty instance of spec.
func NewInstance(spec *schema.Loop) *Instance {
	return &Instance{Spec: spec, Values: make([]Value, len(spec.Slots))}
}

func (in *Instance) slot(name string, kinds ...schema.Kind) (*schema.Slot, *Value, error) {
	s, i := in.Spec.Slot(name)
	if s == nil {
		return nil, nil, fmt.Errorf("%w %q in loop %s", ErrNoSlot, name, in.Spec.ID)
	}
	for _, k := range kinds {
		if s.Kind == k {
			return s, &in.Values[i], nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %s is %s", ErrSlotKind, name, s.Kind)
}

// Value returns the value of the named slot, or nil.
func (in *Instance) Value(name string) *Value {
	_, i := in.Spec.Slot(name)
	if i < 0 {
		return nil
	}
	return &in.Values[i]
}

// Set stores s in a Single or Optional slot.
func (in *Instance) Set(name string, s *segment.Segment) error {
	sl, v, err := in.slot(name, schema.Single, schema.Optional)
	if err != nil {
		return err
	}
	if s != nil && s.Tag != sl.Tag {
		return fmt.Errorf("%w: %s in slot %s (%s)", ErrTagMismatch, s.Tag, name, sl.Tag)
	}
	v.Segment = s
	return nil
}

// Append adds s to a Repeated slot.
func (in *Instance) Append(name string, s *segment.Segment) error {
	sl, v, err := in.slot(name, schema.Repeated)
	if err != nil {
		return err
	}
	if s.Tag != sl.Tag {
		return fmt.Errorf("%w: %s in slot %s (%s)", ErrTagMismatch, s.Tag, name, sl.Tag)
	}
	v.Segments = append(v.Segments, s)
	return nil
}

// AppendLoop adds a fresh instance to a Nested slot and returns it.
func (in *Instance) AppendLoop(name string) (*Instance, error) {
	sl, v, err := in.slot(name, schema.Nested)
	if err != nil {
		return nil, err
	}
	child := NewInstance(sl.Loop)
	v.Loops = append(v.Loops, child)
	return child, nil
}

// Segment returns the segment of a Single or Optional slot.
func (in *Instance) Segment(name string) *segment.Segment {
	if v := in.Value(name); v != nil {
		return v.Segment
	}
	return nil
}

// Segments returns the segments of a Repeated slot.
func (in *Instance) Segments(name string) []*segment.Segment {
	if v := in.Value(name); v != nil {
		return v.Segments
	}
	return nil
}

// Loops returns the instances of a Nested slot.
func (in *Instance) Loops(name string) []*Instance {
	if v := in.Value(name); v != nil {
		return v.Loops
	}
	return nil
}

// Walk calls f for every segment in slot order. path locates the segment
// in the tree, see Path.
func (in *Instance) Walk(f func(s *segment.Segment, path Path) error) error {
	return in.walk(f, nil)
}

func (in *Instance) walk(f func(*segment.Segment, Path) error, p Path) error {
	for i, s := range in.Spec.Slots {
		v := &in.Values[i]
		switch s.Kind {
		case schema.Single, schema.Optional:
			if v.Segment == nil {
				continue
			}
			if err := f(v.Segment, p.Field(s.Name)); err != nil {
				return err
			}
		case schema.Repeated:
			for j, seg := range v.Segments {
				if err := f(seg, p.Field(s.Name).Index(j)); err != nil {
					return err
				}
			}
		case schema.Nested:
			for j, child := range v.Loops {
				if err := child.walk(f, p.Field(s.Name).Index(j)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Flatten lists the segments in slot order.
func (in *Instance) Flatten() []*segment.Segment {
	var res []*segment.Segment
	_ = in.Walk(func(s *segment.Segment, _ Path) error {
		res = append(res, s)
		return nil
	})
	return res
}

// Len is the number of segments in the instance.
func (in *Instance) Len() int {
	n := 0
	for i, s := range in.Spec.Slots {
		v := &in.Values[i]
		switch s.Kind {
		case schema.Nested:
			for _, child := range v.Loops {
				n += child.Len()
			}
		default:
			n += v.Count()
		}
	}
	return n
}

// Equal compares content slot by slot. Specs are compared by identity.
func (in *Instance) Equal(o *Instance) bool {
	if in == nil || o == nil {
		return in == o
	}
	if in.Spec != o.Spec || len(in.Values) != len(o.Values) {
		return false
	}
	for i := range in.Values {
		a, b := &in.Values[i], &o.Values[i]
		if !a.Segment.Equal(b.Segment) {
			return false
		}
		if len(a.Segments) != len(b.Segments) || len(a.Loops) != len(b.Loops) {
			return false
		}
		for j := range a.Segments {
			if !a.Segments[j].Equal(b.Segments[j]) {
				return false
			}
		}
		for j := range a.Loops {
			if !a.Loops[j].Equal(b.Loops[j]) {
				return false
			}
		}
	}
	return true
}
