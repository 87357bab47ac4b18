package token

import (
	"fmt"
	"strings"
)

// Token is one segment of the wire format: its tag and its raw element
// texts in order. Elements are not yet split into components.
type Token struct {
	Tag      string
	Elements []string
	Pos      *Pos
}

func (t *Token) Info() string {
	if t.Pos == nil {
		return t.Tag
	}
	return fmt.Sprintf("%s %s", t.Tag, t.Pos.String())
}

// Render writes the token back using d, without the segment terminator.
func (t *Token) Render(d Delimiters) string {
	if len(t.Elements) == 0 {
		return t.Tag
	}
	return t.Tag + string(d.Element) + strings.Join(t.Elements, string(d.Element))
}

func validTag(tag string) bool {
	if len(tag) < 2 || len(tag) > 3 {
		return false
	}
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
