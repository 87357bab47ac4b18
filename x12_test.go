package x12

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/signadot/x12-format/go-x12/encode"
	"github.com/signadot/x12-format/go-x12/ir"
	"github.com/signadot/x12-format/go-x12/parse"
	"github.com/signadot/x12-format/go-x12/schema"
	"github.com/signadot/x12-format/go-x12/segment"
	"github.com/signadot/x12-format/go-x12/token"
)

const isaLine = "ISA*00*          *00*          *ZZ*SOURCE         *ZZ*TARGET         *220524*1120*U*00401*000000001*0*P*>~"

const doc315 = isaLine + `
GS*QO*SOURCE*TARGET*20220524*1120*1*X*004010~
ST*315*00001~
B4***I*20220524*1120*USLAX*MSCU*1234567~
N9*BM*BOL123~
N9*BN*BKG456~
N9*EQ*MSCU1234567~
Q2*9123456*PA~
R4*L*UN*CNSHA*SHANGHAI*CN~
R4*D*UN*USLAX*LOS ANGELES*US~
SE*9*00001~
GE*1*1~
IEA*1*000000001~
`

func TestSerializeParse(t *testing.T) {
	tr, err := Parse([]byte(doc315))
	if err != nil {
		t.Fatal(err)
	}
	out, err := Serialize(tr)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(doc315, string(out)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestCanonicalize(t *testing.T) {
	// line breaks after the ISA decide; the rest are normalized
	in := strings.Replace(doc315, "N9*BM*BOL123~\n", "N9*BM*BOL123~\r\n", 1)
	in = strings.Replace(in, "Q2*9123456*PA~\n", "Q2*9123456*PA~", 1)
	got, err := Canonicalize([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != doc315 {
		t.Fatalf("got\n%q", got)
	}
	tr, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	out, err := Serialize(tr)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != string(got) {
		t.Fatalf("serialize(parse(t)) != canonicalize(t):\n%q", out)
	}
	if _, err := Canonicalize([]byte("GS*QO~")); !errors.Is(err, token.ErrBadHeader) {
		t.Fatalf("got %v", err)
	}
}

func TestEqual(t *testing.T) {
	a, err := Parse([]byte(doc315))
	if err != nil {
		t.Fatal(err)
	}
	d := token.Delimiters{Segment: '|', Element: '^', Component: '<'}
	out, err := Serialize(a, encode.WithDelimiters(d))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(b) {
		t.Fatal("trees with different delimiters compare equal")
	}
	if !Equal(a, b) {
		t.Fatal("content changed under new delimiters")
	}
	b.Sets()[0].Segments("n9")[2].Set(2, segment.Scalar("OTHER"))
	if Equal(a, b) {
		t.Fatal("different content compares equal")
	}
	if !Equal(nil, nil) || Equal(a, nil) {
		t.Fatal("nil handling")
	}
}

func TestPatch(t *testing.T) {
	tr, err := Parse([]byte(doc315))
	if err != nil {
		t.Fatal(err)
	}
	patch := `[
  {"op": "replace", "path": "/groups/0/sets/0/n9/0/1", "value": "BOL999"},
  {"op": "add", "path": "/groups/0/sets/0/n9/-", "value": ["PO", "4711"]},
  {"op": "remove", "path": "/groups/0/sets/0/q2"}
]`
	res, err := Patch(tr, []byte(patch))
	if err != nil {
		t.Fatal(err)
	}
	out, err := Serialize(res)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	for _, want := range []string{"N9*BM*BOL999~", "N9*PO*4711~\nR4*L", "SE*9*00001~"} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q in\n%s", want, s)
		}
	}
	if strings.Contains(s, "Q2*") {
		t.Errorf("Q2 not removed:\n%s", s)
	}
	if _, err := Patch(tr, []byte(`{"op": "remove"}`)); !errors.Is(err, ErrPatch) {
		t.Errorf("got %v, want %v", err, ErrPatch)
	}
	if _, err := Patch(tr, []byte(`[{"op": "remove", "path": "/nope/0"}]`)); !errors.Is(err, ErrPatch) {
		t.Errorf("got %v, want %v", err, ErrPatch)
	}
	if _, err := Patch(tr, []byte(`[{"op": "add", "path": "/groups/0/sets/0/zz", "value": ["1"]}]`)); !errors.Is(err, ir.ErrTree) {
		t.Errorf("got %v, want %v", err, ir.ErrTree)
	}
}

func TestSelect(t *testing.T) {
	tr, err := Parse([]byte(doc315))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		src   string
		paths []string
	}{
		{`tag == "N9" && el(1) in ["BM", "EQ"]`, []string{"$.n9[0]", "$.n9[2]"}},
		{`tag == "R4" && el(5) == "US"`, []string{"$.loop_r4[1].r4"}},
		{`path startsWith "$.loop_r4[0]"`, []string{"$.loop_r4[0].r4"}},
		{`set == "315" && group == 0 && tag in ["ST", "SE"]`, []string{"$.st", "$.se"}},
		{`comp(1, 2) != ""`, nil},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			ms, err := Select(tr, tc.src)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, m := range ms {
				got = append(got, m.Path.String())
			}
			if diff := cmp.Diff(tc.paths, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
	if _, err := Select(tr, `el("x")`); !errors.Is(err, ErrSelect) {
		t.Errorf("got %v, want %v", err, ErrSelect)
	}
	if _, err := Select(tr, `tag`); !errors.Is(err, ErrSelect) {
		t.Errorf("non-boolean: got %v, want %v", err, ErrSelect)
	}
}

var (
	delimSets = []token.Delimiters{
		{Segment: '~', Element: '*', Component: ':'},
		{Segment: '\'', Element: '+', Component: '<'},
		{Segment: '|', Element: '^', Component: '>'},
	}
	suffixes = []string{"", "\n", "\r\n"}
)

func clip(s string, n int) string {
	s = strings.ToUpper(s)
	if len(s) > n {
		return s[:n]
	}
	return s
}

// build315 assembles a 315 interchange from generated parts.
func build315(ts *schema.TransactionSet, n9, r4, dtm int, q2 bool, ref string, d token.Delimiters) (*ir.Transmission, error) {
	set := ir.NewInstance(ts.Body)
	errs := []error{
		set.Set("st", segment.Values("ST", "315", "0001")),
		set.Set("b4", segment.Values("B4", "", "", "I", "20220524", "", "USLAX")),
	}
	for i := range n9 {
		errs = append(errs, set.Append("n9", segment.Values("N9", "BM", clip(ref+strconv.Itoa(i), 30))))
	}
	if q2 {
		errs = append(errs, set.Set("q2", segment.Values("Q2", clip(ref, 8))))
	}
	for i := range r4 {
		l, err := set.AppendLoop("loop_r4")
		if err != nil {
			return nil, err
		}
		errs = append(errs, l.Set("r4", segment.Values("R4", "L", "UN", clip(ref, 30))))
		for j := range (i + dtm) % 4 {
			errs = append(errs, l.Append("dtm", segment.New("DTM",
				segment.Scalar("139"), segment.Scalar("20220601"), nil, nil,
				segment.Composite("D8", strconv.Itoa(j)))))
		}
	}
	errs = append(errs, set.Set("se", segment.Values("SE", strconv.Itoa(set.Len()+1), "0001")))
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	isa := segment.Values("ISA", "00", "          ", "00", "          ", "ZZ", "SOURCE         ",
		"ZZ", "TARGET         ", "220524", "1120", "U", "00401", "000000001", "0", "P")
	gs := segment.Values("GS", "QO", "SOURCE", "TARGET", "20220524", "1120", "1", "X", "004010")
	return ir.NewTransmission(d, isa, ir.NewFunctionalGroup(gs, set)), nil
}

func TestRoundTripProperty(t *testing.T) {
	ts, err := schema.Lookup("315")
	if err != nil {
		t.Fatal(err)
	}
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("parse(serialize(x)) == x", prop.ForAll(
		func(n9, r4, dtm int, q2 bool, ref string, di, si int) bool {
			d := delimSets[di]
			d.Suffix = suffixes[si]
			x, err := build315(ts, n9, r4, dtm, q2, ref, d)
			if err != nil {
				t.Log(err)
				return false
			}
			out, err := Serialize(x)
			if err != nil {
				t.Log(err)
				return false
			}
			back, err := Parse(out, parse.TransactionSet("315"))
			if err != nil {
				t.Log(err)
				return false
			}
			again, err := Serialize(back)
			if err != nil {
				t.Log(err)
				return false
			}
			return back.Equal(x) && string(again) == string(out)
		},
		gen.IntRange(0, 30),
		gen.IntRange(0, 20),
		gen.IntRange(0, 3),
		gen.Bool(),
		gen.Identifier(),
		gen.IntRange(0, len(delimSets)-1),
		gen.IntRange(0, len(suffixes)-1),
	))

	properties.Property("cardinality", prop.ForAll(
		func(n9, r4 int) bool {
			x, err := build315(ts, n9, r4, 0, false, "ref", delimSets[0])
			if err != nil {
				return false
			}
			out, err := Serialize(x)
			if err != nil {
				return false
			}
			back, err := Parse(out)
			if err != nil {
				return false
			}
			set := back.Sets()[0]
			return len(set.Segments("n9")) == n9 && len(set.Loops("loop_r4")) == r4 &&
				back.Groups[0].GE.Value(1) == "1" && back.IEA.Value(1) == "1"
		},
		gen.IntRange(0, 30),
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}
