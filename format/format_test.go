package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"x12":  X12Format,
		"edi":  X12Format,
		"j":    JSONFormat,
		"yaml": YAMLFormat,
	} {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s: got %s, want %s", in, got, want)
		}
	}
	if _, err := ParseFormat("edifact"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("got %v", err)
	}
}

func TestText(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte("y")); err != nil {
		t.Fatal(err)
	}
	if f.String() != "yaml" || !f.IsTree() || f.Suffix() != ".yaml" {
		t.Errorf("got %s", f)
	}
	if Format(9).String() == "" {
		t.Error("empty string for bad format")
	}
	if X12Format.IsTree() {
		t.Error("x12 is not a tree form")
	}
}
