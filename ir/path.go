package ir

import (
	"strconv"
	"strings"
)

// Path locates a segment inside a transaction set, e.g.
// "$.loop_r4[1].dtm[0]".
type Path []string

func (p Path) Field(name string) Path {
	return append(p[:len(p):len(p)], "."+name)
}

func (p Path) Index(i int) Path {
	return append(p[:len(p):len(p)], "["+strconv.Itoa(i)+"]")
}

func (p Path) String() string {
	return "$" + strings.Join(p, "")
}
