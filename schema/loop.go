package schema

import (
	"fmt"
	"slices"
	"strings"
)

type Kind int

const (
	Single Kind = iota
	Optional
	Repeated
	Nested
)

func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case Optional:
		return "optional"
	case Repeated:
		return "repeated"
	case Nested:
		return "nested"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Slot is one position of a loop. Tag is set for segment slots and Loop
// for nested ones. Max bounds Repeated and Nested slots, Max <= 0 is
// unbounded. Required asks Repeated and Nested slots for at least one
// item.
type Slot struct {
	Name     string
	Kind     Kind
	Tag      string
	Max      int
	Required bool
	Loop     *Loop
}

func SingleSlot(tag string) *Slot {
	return &Slot{Kind: Single, Tag: tag, Max: 1, Required: true}
}

func OptionalSlot(tag string) *Slot {
	return &Slot{Kind: Optional, Tag: tag, Max: 1}
}

func RepeatedSlot(tag string, max int, required bool) *Slot {
	return &Slot{Kind: Repeated, Tag: tag, Max: max, Required: required}
}

func NestedSlot(l *Loop, max int, required bool) *Slot {
	return &Slot{Kind: Nested, Loop: l, Max: max, Required: required}
}

// Named sets the slot name, overriding the default.
func (s *Slot) Named(name string) *Slot {
	s.Name = name
	return s
}

// Mandatory reports whether the slot must consume at least one segment.
func (s *Slot) Mandatory() bool {
	switch s.Kind {
	case Single:
		return true
	case Optional:
		return false
	default:
		return s.Required
	}
}

// Bounded reports whether n items reach the slot's limit.
func (s *Slot) Bounded(n int) bool {
	return s.Max > 0 && n >= s.Max
}

// First is the set of tags the slot can start with.
func (s *Slot) First() []string {
	if s.Kind == Nested {
		return s.Loop.Entry()
	}
	return []string{s.Tag}
}

// Starts reports whether tag can start the slot.
func (s *Slot) Starts(tag string) bool {
	if s.Kind == Nested {
		return s.Loop.Enters(tag)
	}
	return s.Tag == tag
}

func (s *Slot) String() string {
	req := "O"
	if s.Mandatory() {
		req = "M"
	}
	max := "1"
	switch {
	case s.Kind == Single || s.Kind == Optional:
	case s.Max <= 0:
		max = ">1"
	default:
		max = fmt.Sprint(s.Max)
	}
	if s.Kind == Nested {
		return fmt.Sprintf("%s: loop %s %s %s", s.Name, s.Loop.ID, req, max)
	}
	return fmt.Sprintf("%s: %s %s %s", s.Name, s.Tag, req, max)
}

// Loop is one nesting level of a transaction set grammar.
type Loop struct {
	ID    string
	Slots []*Slot

	entry []string
	index map[string]int
}

// NewLoop checks the slots and names the unnamed ones after their tag or
// loop ID, adding a numeric suffix when a default name repeats.
func NewLoop(id string, slots ...*Slot) (*Loop, error) {
	l := &Loop{ID: id, Slots: slots, index: make(map[string]int, len(slots))}
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: loop %s has no slots", ErrBadSpec, id)
	}
	for i, s := range slots {
		if err := s.check(); err != nil {
			return nil, fmt.Errorf("%w: loop %s slot %d: %w", ErrBadSpec, id, i, err)
		}
		if s.Name != "" {
			if _, dup := l.index[s.Name]; dup {
				return nil, fmt.Errorf("%w: loop %s: duplicate slot name %q", ErrBadSpec, id, s.Name)
			}
			l.index[s.Name] = i
		}
	}
	for i, s := range slots {
		if s.Name != "" {
			continue
		}
		base := "loop_" + strings.ToLower(s.Loop.idOrEmpty())
		if s.Kind != Nested {
			base = strings.ToLower(s.Tag)
		}
		name := base
		for n := 2; ; n++ {
			if _, dup := l.index[name]; !dup {
				break
			}
			name = fmt.Sprintf("%s_%d", base, n)
		}
		s.Name = name
		l.index[name] = i
	}
	l.entry = l.computeEntry()
	return l, nil
}

// MustLoop is NewLoop for grammars known to be valid.
func MustLoop(id string, slots ...*Slot) *Loop {
	l, err := NewLoop(id, slots...)
	if err != nil {
		panic(err)
	}
	return l
}

// checkBuilt reports loops, l or nested in it, that did not come from
// NewLoop. Their slots are unnamed and they have no entry set.
func (l *Loop) checkBuilt() error {
	if l == nil {
		return fmt.Errorf("nil loop")
	}
	if l.index == nil || len(l.Slots) == 0 || len(l.entry) == 0 {
		return fmt.Errorf("loop %q was not built with NewLoop", l.ID)
	}
	for _, s := range l.Slots {
		if s == nil {
			return fmt.Errorf("loop %s: nil slot", l.ID)
		}
		if s.Kind != Nested {
			continue
		}
		if err := s.Loop.checkBuilt(); err != nil {
			return fmt.Errorf("loop %s: %w", l.ID, err)
		}
	}
	return nil
}

func (l *Loop) idOrEmpty() string {
	if l == nil {
		return ""
	}
	return l.ID
}

func (s *Slot) check() error {
	switch s.Kind {
	case Single, Optional, Repeated:
		if !validTag(s.Tag) {
			return fmt.Errorf("bad segment tag %q", s.Tag)
		}
		if s.Loop != nil {
			return fmt.Errorf("segment slot %s has a loop", s.Tag)
		}
	case Nested:
		if s.Loop == nil {
			return fmt.Errorf("nested slot without loop")
		}
	default:
		return fmt.Errorf("unknown slot kind %s", s.Kind)
	}
	return nil
}

func validTag(tag string) bool {
	if len(tag) < 2 || len(tag) > 3 {
		return false
	}
	for _, c := range tag {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Entry is the set of tags that start an instance of the loop: the first
// tags of its leading slots up to and including the first mandatory one.
func (l *Loop) Entry() []string {
	return l.entry
}

// Enters reports whether tag starts an instance of the loop.
func (l *Loop) Enters(tag string) bool {
	return slices.Contains(l.entry, tag)
}

func (l *Loop) computeEntry() []string {
	var res []string
	for _, s := range l.Slots {
		for _, t := range s.First() {
			if !slices.Contains(res, t) {
				res = append(res, t)
			}
		}
		if s.Mandatory() {
			break
		}
	}
	return res
}

// FirstAfter is the set of tags that can start any slot after slot i,
// up to and including the first mandatory one. The boolean reports
// whether every slot after i is optional.
func (l *Loop) FirstAfter(i int) ([]string, bool) {
	var res []string
	for _, s := range l.Slots[i+1:] {
		res = append(res, s.First()...)
		if s.Mandatory() {
			return res, false
		}
	}
	return res, true
}

// Slot returns the slot named name.
func (l *Loop) Slot(name string) (*Slot, int) {
	i, ok := l.index[name]
	if !ok {
		return nil, -1
	}
	return l.Slots[i], i
}

// Walk calls f for l and every loop nested in it, depth first.
func (l *Loop) Walk(f func(l *Loop, depth int)) {
	l.walk(f, 0)
}

func (l *Loop) walk(f func(*Loop, int), depth int) {
	f(l, depth)
	for _, s := range l.Slots {
		if s.Kind == Nested {
			s.Loop.walk(f, depth+1)
		}
	}
}
