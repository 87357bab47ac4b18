package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	ins, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	ok, err := checkInputs(cfg, cc.Out, ins)
	if err != nil {
		return err
	}
	if !ok {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkInputs reports on each input and whether all of them are valid.
func checkInputs(cfg *CheckConfig, w io.Writer, ins []input) (bool, error) {
	ok := true
	for _, in := range ins {
		tr, err := cfg.decode(in)
		if err != nil {
			ok = false
			if _, err := fmt.Fprintf(w, "%s: %v\n", in.name, err); err != nil {
				return false, err
			}
			continue
		}
		if cfg.Quiet {
			continue
		}
		_, err = fmt.Fprintf(w, "%s: ok, %d groups, %d transaction sets\n", in.name, len(tr.Groups), len(tr.Sets()))
		if err != nil {
			return false, err
		}
	}
	return ok, nil
}
