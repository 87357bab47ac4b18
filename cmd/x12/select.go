package main

import (
	"fmt"
	"io"

	x12 "github.com/signadot/x12-format/go-x12"

	"github.com/scott-cotton/cli"
)

func selectCmd(cfg *SelectConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Select.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Expr == "" {
		return fmt.Errorf("%w: select requires -e <expr>", cli.ErrUsage)
	}
	ins, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	return selectInputs(cfg, cc.Out, ins)
}

// selectInputs prints one line per matching segment: the input name
// when there are several inputs, the group and set index, the path and
// the segment.
func selectInputs(cfg *SelectConfig, w io.Writer, ins []input) error {
	for _, in := range ins {
		tr, err := cfg.decode(in)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", in.name, err)
		}
		ms, err := x12.Select(tr, cfg.Expr)
		if err != nil {
			return err
		}
		prefix := ""
		if len(ins) > 1 {
			prefix = in.name + ":"
		}
		for _, m := range ms {
			if cfg.Paths {
				_, err = fmt.Fprintf(w, "%s%d/%d %s\n", prefix, m.Group, m.Set, m.Path)
			} else {
				_, err = fmt.Fprintf(w, "%s%d/%d %s %s%c\n", prefix, m.Group, m.Set, m.Path,
					m.Segment.Render(tr.Delimiters), tr.Delimiters.Segment)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
