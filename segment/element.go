package segment

import "strings"

// Element is one data element. A nil or empty Element is absent, one
// value is a scalar and more than one is a composite.
type Element []string

// Scalar returns the element holding v, or an absent element if v is
// empty.
func Scalar(v string) Element {
	if v == "" {
		return nil
	}
	return Element{v}
}

// Composite returns an element of the given components.
func Composite(vs ...string) Element {
	if len(vs) == 0 || (len(vs) == 1 && vs[0] == "") {
		return nil
	}
	return Element(append([]string(nil), vs...))
}

// ParseElement splits raw element text on the component separator.
func ParseElement(raw string, comp byte) Element {
	if raw == "" {
		return nil
	}
	if strings.IndexByte(raw, comp) < 0 {
		return Element{raw}
	}
	return Element(strings.Split(raw, string(comp)))
}

func (e Element) Absent() bool {
	return len(e) == 0 || (len(e) == 1 && e[0] == "")
}

func (e Element) IsComposite() bool {
	return len(e) > 1
}

// Value is the scalar value, or the first component of a composite.
func (e Element) Value() string {
	if len(e) == 0 {
		return ""
	}
	return e[0]
}

// Component returns the 1-based component i, or "" if there is none.
func (e Element) Component(i int) string {
	if i < 1 || i > len(e) {
		return ""
	}
	return e[i-1]
}

func (e Element) Render(comp byte) string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0]
	}
	return strings.Join(e, string(comp))
}

// Equal compares components. Absent elements are equal whatever their
// representation, since nil and Element{""} render the same.
func (e Element) Equal(o Element) bool {
	if e.Absent() || o.Absent() {
		return e.Absent() && o.Absent()
	}
	if len(e) != len(o) {
		return false
	}
	for i := range e {
		if e[i] != o[i] {
			return false
		}
	}
	return true
}

func (e Element) Clone() Element {
	if len(e) == 0 {
		return nil
	}
	return append(Element(nil), e...)
}
