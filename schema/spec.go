package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

type setDoc struct {
	ID      string     `yaml:"id"`
	Name    string     `yaml:"name,omitempty"`
	Version string     `yaml:"version,omitempty"`
	Body    []*slotDoc `yaml:"body"`
}

type slotDoc struct {
	Seg  string     `yaml:"seg,omitempty"`
	Loop string     `yaml:"loop,omitempty"`
	Name string     `yaml:"name,omitempty"`
	Req  string     `yaml:"req,omitempty"`
	Max  any        `yaml:"max,omitempty"`
	Body []*slotDoc `yaml:"body,omitempty"`
}

// ParseTransactionSet reads a transaction set written in the YAML spec
// language.
func ParseTransactionSet(d []byte) (*TransactionSet, error) {
	doc := &setDoc{}
	if err := yaml.UnmarshalWithOptions(d, doc, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSpec, err)
	}
	body, err := doc.loop(doc.ID, doc.Body)
	if err != nil {
		return nil, err
	}
	return NewTransactionSet(doc.ID, doc.Name, doc.Version, body)
}

func (d *setDoc) loop(id string, docs []*slotDoc) (*Loop, error) {
	slots := make([]*Slot, 0, len(docs))
	for _, sd := range docs {
		s, err := d.slot(sd)
		if errors.Is(err, ErrBadSpec) {
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s loop %s: %w", ErrBadSpec, d.ID, id, err)
		}
		slots = append(slots, s)
	}
	return NewLoop(id, slots...)
}

func (d *setDoc) slot(sd *slotDoc) (*Slot, error) {
	var required bool
	switch sd.Req {
	case "", "M":
		required = true
	case "O":
	default:
		return nil, fmt.Errorf("req must be M or O, got %q", sd.Req)
	}
	max, err := parseMax(sd.Max)
	if err != nil {
		return nil, err
	}
	var s *Slot
	switch {
	case sd.Seg != "" && sd.Loop != "":
		return nil, fmt.Errorf("slot has both seg %s and loop %s", sd.Seg, sd.Loop)
	case sd.Loop != "":
		if len(sd.Body) == 0 {
			return nil, fmt.Errorf("loop %s has no body", sd.Loop)
		}
		l, err := d.loop(sd.Loop, sd.Body)
		if err != nil {
			return nil, err
		}
		s = NestedSlot(l, max, required)
	case sd.Seg != "":
		if len(sd.Body) != 0 {
			return nil, fmt.Errorf("segment %s has a body", sd.Seg)
		}
		switch {
		case max != 1:
			s = RepeatedSlot(sd.Seg, max, required)
		case required:
			s = SingleSlot(sd.Seg)
		default:
			s = OptionalSlot(sd.Seg)
		}
	default:
		return nil, fmt.Errorf("slot has neither seg nor loop")
	}
	return s.Named(sd.Name), nil
}

func parseMax(v any) (int, error) {
	switch x := v.(type) {
	case nil:
		return 1, nil
	case uint64:
		return checkMax(int(x))
	case int64:
		return checkMax(int(x))
	case int:
		return checkMax(x)
	case float64:
		return checkMax(int(x))
	case string:
		if x == ">1" || x == "unbounded" {
			return 0, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("bad max %q", x)
		}
		return checkMax(n)
	default:
		return 0, fmt.Errorf("bad max %v", v)
	}
}

func checkMax(n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("max must be at least 1, got %d", n)
	}
	return n, nil
}

// MarshalYAML renders the transaction set in the YAML spec language.
func (ts *TransactionSet) MarshalYAML() ([]byte, error) {
	doc := &setDoc{
		ID:      ts.ID,
		Name:    ts.Name,
		Version: ts.Version,
		Body:    loopDocs(ts.Body),
	}
	return yaml.Marshal(doc)
}

func loopDocs(l *Loop) []*slotDoc {
	res := make([]*slotDoc, len(l.Slots))
	for i, s := range l.Slots {
		sd := &slotDoc{}
		if !s.Mandatory() {
			sd.Req = "O"
		}
		switch s.Kind {
		case Repeated, Nested:
			switch {
			case s.Max <= 0:
				sd.Max = ">1"
			case s.Max != 1:
				sd.Max = s.Max
			}
		}
		if s.Kind == Nested {
			sd.Loop = s.Loop.ID
			sd.Body = loopDocs(s.Loop)
			if s.Name != "loop_"+strings.ToLower(s.Loop.ID) {
				sd.Name = s.Name
			}
		} else {
			sd.Seg = s.Tag
			if s.Name != strings.ToLower(s.Tag) {
				sd.Name = s.Name
			}
		}
		res[i] = sd
	}
	return res
}
