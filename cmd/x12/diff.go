package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/x12-format/go-x12/libdiff"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := readInput(cc.In, args[0])
	if err != nil {
		return err
	}
	b, err := readInput(cc.In, args[1])
	if err != nil {
		return err
	}
	differs, err := diffInputs(cfg, cc.Out, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffInputs writes the segment diff of a and b and reports whether
// they differ.
func diffInputs(cfg *DiffConfig, w io.Writer, a, b input) (bool, error) {
	ta, err := cfg.decode(a)
	if err != nil {
		return false, fmt.Errorf("error decoding %s: %w", a.name, err)
	}
	tb, err := cfg.decode(b)
	if err != nil {
		return false, fmt.Errorf("error decoding %s: %w", b.name, err)
	}
	d, err := libdiff.Transmissions(ta, tb)
	if err != nil {
		return false, err
	}
	if !d.Changed() {
		return false, nil
	}
	if cfg.Reverse {
		d = d.Reverse()
	}
	return true, d.Write(w, libdiff.Context(cfg.Context), libdiff.Colors(cfg.colorDiff(w)))
}

func (cfg *DiffConfig) colorDiff(w io.Writer) bool {
	if cfg.Color || cfg.optSet("color") {
		return cfg.Color
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
