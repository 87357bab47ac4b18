package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/x12-format/go-x12/segment"
	"github.com/signadot/x12-format/go-x12/token"

	"github.com/fatih/color"
)

type writeOpts struct {
	context int
	color   bool
}

type WriteOption func(*writeOpts)

// Context sets how many unchanged segments surround each hunk.
func Context(n int) WriteOption {
	return func(o *writeOpts) { o.context = n }
}

func Colors(v bool) WriteOption {
	return func(o *writeOpts) { o.color = v }
}

// Change is a difference at one element position of two segments with
// the same tag.
type Change struct {
	Tag      string
	Pos      int
	From, To segment.Element
}

func (c Change) String() string {
	return fmt.Sprintf("%s%02d %q -> %q", c.Tag, c.Pos, c.From.Render(':'), c.To.Render(':'))
}

// Segments lists the element positions where a and b differ. Segments
// with different tags have no element changes.
func Segments(a, b *segment.Segment) []Change {
	if a.Tag != b.Tag {
		return nil
	}
	var res []Change
	n := max(len(a.Elements), len(b.Elements))
	for pos := 1; pos <= n; pos++ {
		ea, eb := a.Get(pos), b.Get(pos)
		if ea.Equal(eb) {
			continue
		}
		res = append(res, Change{Tag: a.Tag, Pos: pos, From: ea, To: eb})
	}
	return res
}

// lineSegment reads back a rendered line.
func lineSegment(line string, d token.Delimiters) *segment.Segment {
	line = strings.TrimSuffix(line, string(d.Segment))
	parts := strings.Split(line, string(d.Element))
	s := &segment.Segment{Tag: parts[0]}
	for _, p := range parts[1:] {
		if s.Tag == "ISA" {
			s.Elements = append(s.Elements, segment.Scalar(p))
			continue
		}
		s.Elements = append(s.Elements, segment.ParseElement(p, d.Component))
	}
	return s
}

type hunk struct {
	lo, hi int
}

// Write prints the changed lines of d with surrounding context, one
// hunk per run of changes. Replaced segments are followed by their
// element changes.
func (d *Diff) Write(w io.Writer, opts ...WriteOption) error {
	o := &writeOpts{context: 3}
	for _, opt := range opts {
		opt(o)
	}
	paint := map[Op]func(string, ...any) string{
		Equal:  fmt.Sprintf,
		Delete: fmt.Sprintf,
		Insert: fmt.Sprintf,
	}
	note, head := fmt.Sprintf, fmt.Sprintf
	if o.color {
		paint[Delete] = color.RedString
		paint[Insert] = color.GreenString
		note = color.RGB(96, 96, 96).SprintfFunc()
		head = color.CyanString
	}
	// segment numbers on each side, 1-based, before each line
	na, nb := make([]int, len(d.Lines)), make([]int, len(d.Lines))
	ia, ib := 1, 1
	for i, ln := range d.Lines {
		na[i], nb[i] = ia, ib
		if ln.Op != Insert {
			ia++
		}
		if ln.Op != Delete {
			ib++
		}
	}
	for _, h := range d.hunks(o.context) {
		if _, err := fmt.Fprintln(w, head("@@ -%d +%d @@", na[h.lo], nb[h.lo])); err != nil {
			return err
		}
		for i := h.lo; i < h.hi; i++ {
			ln := d.Lines[i]
			if _, err := fmt.Fprintln(w, paint[ln.Op]("%s%s", ln.Op, ln.Text)); err != nil {
				return err
			}
			if ln.Op != Insert {
				continue
			}
			for _, c := range d.paired(i) {
				if _, err := fmt.Fprintln(w, note("#  %s", c)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// paired matches the insert at i with the delete at the same offset in
// the preceding delete run and returns their element changes.
func (d *Diff) paired(i int) []Change {
	ins := i
	for ins > 0 && d.Lines[ins-1].Op == Insert {
		ins--
	}
	dels := ins
	for dels > 0 && d.Lines[dels-1].Op == Delete {
		dels--
	}
	j := dels + (i - ins)
	if j >= ins {
		return nil
	}
	return Segments(lineSegment(d.Lines[j].Text, d.Delimiters), lineSegment(d.Lines[i].Text, d.Delimiters))
}

func (d *Diff) hunks(context int) []hunk {
	var res []hunk
	for i, ln := range d.Lines {
		if ln.Op == Equal {
			continue
		}
		lo, hi := max(0, i-context), min(len(d.Lines), i+context+1)
		if n := len(res); n > 0 && lo <= res[n-1].hi {
			res[n-1].hi = max(res[n-1].hi, hi)
			continue
		}
		res = append(res, hunk{lo: lo, hi: hi})
	}
	return res
}
