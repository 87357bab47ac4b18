package main

import (
	"io"

	"github.com/signadot/x12-format/go-x12/format"

	"github.com/scott-cotton/cli"
)

func load(cfg *LoadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Load.Parse(cc, args)
	if err != nil {
		return err
	}
	ins, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	return loadInputs(cfg, cc.Out, ins)
}

// loadInputs reads tree form inputs, JSON or YAML alike, and writes them
// in the output format.
func loadInputs(cfg *LoadConfig, w io.Writer, ins []input) error {
	in := *cfg.MainConfig
	if !in.inFormat().IsTree() {
		y := format.YAMLFormat
		in.InFormat = &y
	}
	return in.writeAll(w, ins, nil)
}
