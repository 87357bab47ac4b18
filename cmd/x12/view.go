package main

import (
	"io"

	"github.com/signadot/x12-format/go-x12/encode"
	"github.com/signadot/x12-format/go-x12/format"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	ins, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	return viewInputs(cfg, cc.Out, ins)
}

func viewInputs(cfg *ViewConfig, w io.Writer, ins []input) error {
	x12 := format.X12Format
	out := *cfg.MainConfig
	out.OutFormat = &x12
	return out.writeAll(w, ins, nil, encode.WithSuffix("\n"), encode.Indent(true))
}
