package segment

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/x12-format/go-x12/token"
)

const isaText = "ISA*00*          *00*          *ZZ*SOURCE         *ZZ*TARGET         *220524*1120*U*00401*000000001*0*P*>~"

func TestFromTokenComposites(t *testing.T) {
	d := token.Delimiters{Segment: '~', Element: '*', Component: '>'}
	tok := &token.Token{Tag: "AK4", Elements: []string{"2>1", "", "7", "X"}}
	seg := FromToken(tok, d)
	want := &Segment{Tag: "AK4", Elements: []Element{{"2", "1"}, nil, {"7"}, {"X"}}}
	if diff := cmp.Diff(want, seg); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if got := seg.Render(d); got != "AK4*2>1**7*X" {
		t.Fatalf("render %q", got)
	}
}

func TestFromTokenISA(t *testing.T) {
	toks, d, err := token.Tokenize(nil, []byte(isaText))
	if err != nil {
		t.Fatal(err)
	}
	seg := FromToken(&toks[0], d)
	if got := seg.Value(16); got != ">" {
		t.Fatalf("ISA16 %q", got)
	}
	if got := seg.Render(d) + "~"; got != isaText {
		t.Fatalf("render\n%s\nwant\n%s", got, isaText)
	}
	if _, err := Default.Decode(seg.Tag, seg.Elements); err != nil {
		t.Fatal(err)
	}
}

type codecTest struct {
	name string
	seg  *Segment
	err  error
	pos  int
}

func TestDefCodec(t *testing.T) {
	tests := []codecTest{
		{name: "ok", seg: Values("N9", "BM", "21001ASK5V9U")},
		{name: "missing mandatory", seg: Values("N9", "", "REF"), err: ErrMalformedSegment, pos: 1},
		{name: "too long", seg: Values("ST", "3150", "0001"), err: ErrMalformedSegment, pos: 1},
		{name: "too short", seg: Values("ST", "315", "01"), err: ErrMalformedSegment, pos: 2},
		{name: "bad code", seg: Values("AK5", "Q"), err: ErrMalformedSegment, pos: 1},
		{name: "unexpected composite", seg: New("N1", Element{"SH", "X"}), err: ErrMalformedSegment, pos: 1},
		{name: "composite", seg: New("AK4", Element{"2", "1"}, nil, Scalar("7"))},
		{name: "trailing unknown", seg: Values("AK5", "A", "", "", "", "", "", "EXTRA")},
		{name: "unknown tag", seg: Values("ZZZ", "anything")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Default.Decode(tt.seg.Tag, tt.seg.Elements)
			if tt.err == nil {
				if err != nil {
					t.Fatal(err)
				}
				if !got.Equal(tt.seg) {
					t.Fatalf("decode changed %s into %s", tt.seg, got)
				}
				tag, elems, err := Default.Encode(got)
				if err != nil {
					t.Fatal(err)
				}
				if !New(tag, elems...).Equal(tt.seg) {
					t.Fatalf("encode changed %s", tt.seg)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("got %v want %v", err, tt.err)
			}
			var fe *FieldErr
			if !errors.As(err, &fe) {
				t.Fatalf("%v is not a *FieldErr", err)
			}
			if fe.Pos != tt.pos || fe.Tag != tt.seg.Tag {
				t.Fatalf("error at %s%02d", fe.Tag, fe.Pos)
			}
		})
	}
}

func TestStrictCodec(t *testing.T) {
	c := NewDefCodec(Strict())
	_, err := c.Decode("ZZZ", nil)
	if !errors.Is(err, ErrUnknownSegment) {
		t.Fatalf("got %v", err)
	}
	extra, err := LoadDefs([]byte("- tag: ZZZ\n  elements:\n  - {ref: \"1\", req: true, max: 2}\n"))
	if err != nil {
		t.Fatal(err)
	}
	c = NewDefCodec(Strict(), WithDefs(extra))
	if _, err := c.Decode("ZZZ", []Element{{"AB"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Decode("ZZZ", []Element{{"ABC"}}); !errors.Is(err, ErrMalformedSegment) {
		t.Fatalf("got %v", err)
	}
}

func TestLoadDefsErrors(t *testing.T) {
	if _, err := LoadDefs([]byte("- name: no tag\n")); err == nil {
		t.Fatal("expected error for missing tag")
	}
	if _, err := LoadDefs([]byte("- tag: A1\n- tag: A1\n")); err == nil {
		t.Fatal("expected error for duplicate tag")
	}
}

func TestElement(t *testing.T) {
	if !Element(nil).Absent() || !(Element{""}).Absent() || Scalar("x").Absent() {
		t.Fatal("absent")
	}
	if Scalar("") != nil {
		t.Fatal("empty scalar should be nil")
	}
	e := ParseElement("a:b:", ':')
	if diff := cmp.Diff(Element{"a", "b", ""}, e); diff != "" {
		t.Fatal(diff)
	}
	if e.Render(':') != "a:b:" || e.Component(2) != "b" || e.Component(4) != "" {
		t.Fatalf("bad composite %v", e)
	}
}

func TestElementEqual(t *testing.T) {
	tests := []struct {
		a, b Element
		want bool
	}{
		{nil, nil, true},
		{nil, Element{""}, true},
		{Element{""}, Element{}, true},
		{nil, Scalar("x"), false},
		{Element{""}, Scalar("x"), false},
		{Scalar("x"), Scalar("x"), true},
		{Element{"a", "b"}, Element{"a", "b"}, true},
		{Element{"a", ""}, Scalar("a"), false},
		{Element{"a", "b"}, Element{"a", "c"}, false},
	}
	for _, tc := range tests {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Errorf("%q.Equal(%q) = %v", tc.a, tc.b, got)
		}
		if got := tc.b.Equal(tc.a); got != tc.want {
			t.Errorf("%q.Equal(%q) = %v", tc.b, tc.a, got)
		}
	}
	a := &Segment{Tag: "N9", Elements: []Element{Scalar("BM"), nil, Scalar("X")}}
	b := &Segment{Tag: "N9", Elements: []Element{Scalar("BM"), {""}, Scalar("X")}}
	if !a.Equal(b) {
		t.Fatalf("%v != %v", a, b)
	}
}
