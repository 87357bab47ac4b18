package token

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/signadot/x12-format/go-x12/debug"
)

// ISALen is the fixed length of an ISA segment including its terminator.
const ISALen = 106

// offsets, relative to the start of "ISA", at which the fixed-width header
// must carry its element separator.
var isaSeparators = [16]int{3, 6, 17, 20, 31, 34, 50, 53, 69, 76, 81, 83, 89, 99, 101, 103}

const (
	isaComponent  = 104
	isaTerminator = 105
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Tokenize splits src into segment tokens, appending them to dst.
func Tokenize(dst []Token, src []byte) ([]Token, Delimiters, error) {
	pd := NewPosDoc(src)
	start := 0
	if bytes.HasPrefix(src, bom) {
		start = len(bom)
	}
	for start < len(src) && isSpace(src[start]) {
		start++
	}
	d, err := readHeader(src, start, pd)
	if err != nil {
		return nil, Delimiters{}, err
	}
	if debug.Tokenize() {
		debug.Logf("tokenize: delimiters %q suffix %q\n", d.String(), d.Suffix)
	}
	el := string(d.Element)
	i := start
	n := len(src)
	for i < n {
		end := bytes.IndexByte(src[i:], d.Segment)
		if end < 0 {
			if len(bytes.TrimSpace(src[i:])) == 0 {
				break
			}
			return nil, Delimiters{}, NewTokenizeErr(ErrUnterminated, pd.Pos(i))
		}
		raw := string(src[i : i+end])
		if raw == "" {
			return nil, Delimiters{}, NewTokenizeErr(ErrEmptySegment, pd.Pos(i))
		}
		parts := strings.Split(raw, el)
		if !validTag(parts[0]) {
			return nil, Delimiters{}, NewTokenizeErr(fmt.Errorf("%w %q", ErrBadTag, parts[0]), pd.Pos(i))
		}
		dst = append(dst, Token{
			Tag:      parts[0],
			Elements: parts[1:],
			Pos:      pd.Pos(i),
		})
		i += end + 1
		for i < n && (src[i] == '\r' || src[i] == '\n') {
			i++
		}
	}
	if debug.Tokenize() {
		PrintTokens(dst, "tokenize:")
	}
	return dst, d, nil
}

// readHeader discovers the delimiters from the ISA segment at off. The ISA
// is read positionally since its separators are not known yet.
func readHeader(src []byte, off int, pd *PosDoc) (Delimiters, error) {
	if len(src)-off < ISALen {
		return Delimiters{}, headerErr(fmt.Sprintf("need %d bytes, have %d", ISALen, len(src)-off), pd.Pos(off))
	}
	if string(src[off:off+3]) != "ISA" {
		return Delimiters{}, headerErr("document must start with ISA", pd.Pos(off))
	}
	el := src[off+isaSeparators[0]]
	for _, sep := range isaSeparators[1:] {
		if src[off+sep] != el {
			return Delimiters{}, headerErr(fmt.Sprintf("expected element separator %q", el), pd.Pos(off+sep))
		}
	}
	d := Delimiters{
		Segment:   src[off+isaTerminator],
		Element:   el,
		Component: src[off+isaComponent],
	}
	if i := bytes.IndexByte(src[off:off+isaTerminator], d.Segment); i >= 0 {
		return Delimiters{}, headerErr("segment terminator inside ISA", pd.Pos(off+i))
	}
	rest := src[off+ISALen:]
	switch {
	case bytes.HasPrefix(rest, []byte("\r\n")):
		d.Suffix = "\r\n"
	case bytes.HasPrefix(rest, []byte("\n")):
		d.Suffix = "\n"
	}
	if d.Segment == '\n' || d.Segment == '\r' {
		d.Suffix = ""
	}
	if err := d.Validate(); err != nil {
		return Delimiters{}, NewTokenizeErr(err, pd.Pos(off))
	}
	return d, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}
