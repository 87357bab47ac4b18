package main

import (
	"io"

	"github.com/signadot/x12-format/go-x12/format"

	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	ins, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	return dumpInputs(cfg, cc.Out, ins)
}

// dumpInputs writes the tree form, in YAML unless JSON was asked for.
func dumpInputs(cfg *DumpConfig, w io.Writer, ins []input) error {
	out := *cfg.MainConfig
	if !out.outFormat().IsTree() {
		y := format.YAMLFormat
		out.OutFormat = &y
	}
	return out.writeAll(w, ins, nil)
}
