package token

import "fmt"

// Delimiters are the three separator characters an interchange declares in
// its ISA header, plus the line break written after each segment terminator.
type Delimiters struct {
	Segment   byte   `json:"segment"`
	Element   byte   `json:"element"`
	Component byte   `json:"component"`
	Suffix    string `json:"suffix,omitempty"`
}

var DefaultDelimiters = Delimiters{Segment: '~', Element: '*', Component: ':'}

func (d Delimiters) Validate() error {
	cs := []byte{d.Segment, d.Element, d.Component}
	for i, c := range cs {
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			return fmt.Errorf("%w: alphanumeric delimiter %q", ErrBadDelimiters, c)
		case c == ' ':
			return fmt.Errorf("%w: space delimiter", ErrBadDelimiters)
		case c == 0:
			return fmt.Errorf("%w: missing delimiter", ErrBadDelimiters)
		}
		for _, o := range cs[i+1:] {
			if c == o {
				return fmt.Errorf("%w: %q used twice", ErrBadDelimiters, c)
			}
		}
	}
	switch d.Suffix {
	case "", "\n", "\r\n":
	default:
		return fmt.Errorf("%w: suffix %q", ErrBadDelimiters, d.Suffix)
	}
	if d.Suffix != "" && (d.Segment == '\n' || d.Segment == '\r') {
		return fmt.Errorf("%w: suffix with line break terminator", ErrBadDelimiters)
	}
	return nil
}

// IsDelimiter reports whether c is one of the separator characters.
func (d Delimiters) IsDelimiter(c byte) bool {
	return c == d.Segment || c == d.Element || c == d.Component
}

// ContainsDelimiter reports whether s contains a separator character.
func (d Delimiters) ContainsDelimiter(s string) bool {
	for i := range len(s) {
		if d.IsDelimiter(s[i]) {
			return true
		}
	}
	return false
}

// String renders the separators in wire order: terminator, element,
// component.
func (d Delimiters) String() string {
	return string([]byte{d.Segment, d.Element, d.Component})
}

// ParseDelimiters reads the form produced by String, e.g. "~*:".
func ParseDelimiters(s string) (Delimiters, error) {
	if len(s) != 3 {
		return Delimiters{}, fmt.Errorf("%w: want 3 characters, got %q", ErrBadDelimiters, s)
	}
	d := Delimiters{Segment: s[0], Element: s[1], Component: s[2]}
	if err := d.Validate(); err != nil {
		return Delimiters{}, err
	}
	return d, nil
}
