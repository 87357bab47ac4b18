package libdiff

import (
	"bytes"
	"strings"

	"github.com/signadot/x12-format/go-x12/encode"
	"github.com/signadot/x12-format/go-x12/ir"
	"github.com/signadot/x12-format/go-x12/token"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

func (o Op) String() string {
	switch o {
	case Delete:
		return "-"
	case Insert:
		return "+"
	default:
		return " "
	}
}

// Line is one segment of either side.
type Line struct {
	Op   Op
	Text string
}

// Diff is a line diff of two renderings. Delimiters are those both sides
// were rendered with.
type Diff struct {
	Delimiters token.Delimiters
	Lines      []Line
}

// Lines diffs two texts holding one segment per line.
func Lines(a, b string, d token.Delimiters) *Diff {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	res := &Diff{Delimiters: d}
	for _, df := range diffs {
		op := Equal
		switch df.Type {
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffInsert:
			op = Insert
		}
		for _, ln := range strings.Split(strings.TrimSuffix(df.Text, "\n"), "\n") {
			res.Lines = append(res.Lines, Line{Op: op, Text: ln})
		}
	}
	return res
}

// Transmissions diffs a and b rendered with the delimiters of a.
func Transmissions(a, b *ir.Transmission) (*Diff, error) {
	d := a.Delimiters
	d.Suffix = "\n"
	ra, err := render(a, d)
	if err != nil {
		return nil, err
	}
	rb, err := render(b, d)
	if err != nil {
		return nil, err
	}
	return Lines(ra, rb, d), nil
}

func render(t *ir.Transmission, d token.Delimiters) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(t, buf, encode.WithDelimiters(d)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (d *Diff) Changed() bool {
	for _, ln := range d.Lines {
		if ln.Op != Equal {
			return true
		}
	}
	return false
}

// Reverse swaps the sides of the diff.
func (d *Diff) Reverse() *Diff {
	res := &Diff{Delimiters: d.Delimiters, Lines: make([]Line, 0, len(d.Lines))}
	for i := 0; i < len(d.Lines); {
		if d.Lines[i].Op == Equal {
			res.Lines = append(res.Lines, d.Lines[i])
			i++
			continue
		}
		// a run of changes: deletes come first on either side
		var del, ins []Line
		for ; i < len(d.Lines) && d.Lines[i].Op != Equal; i++ {
			ln := d.Lines[i]
			switch ln.Op {
			case Delete:
				ln.Op = Insert
				ins = append(ins, ln)
			case Insert:
				ln.Op = Delete
				del = append(del, ln)
			}
		}
		res.Lines = append(res.Lines, del...)
		res.Lines = append(res.Lines, ins...)
	}
	return res
}
