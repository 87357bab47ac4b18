package main

import (
	"fmt"
	"io"

	"github.com/signadot/x12-format/go-x12/encode"
	"github.com/signadot/x12-format/go-x12/format"
	"github.com/signadot/x12-format/go-x12/token"

	"github.com/scott-cotton/cli"
)

func fmtCmd(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	ins, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	return fmtInputs(cfg, cc.Out, ins)
}

func fmtInputs(cfg *FmtConfig, w io.Writer, ins []input) error {
	var opts []encode.EncodeOption
	if cfg.Delimiters != "" {
		d, err := token.ParseDelimiters(cfg.Delimiters)
		if err != nil {
			return fmt.Errorf("%w: -d: %w", cli.ErrUsage, err)
		}
		opts = append(opts, encode.WithDelimiters(d))
	}
	if cfg.NL {
		opts = append(opts, encode.WithSuffix("\n"))
	}
	x12 := format.X12Format
	out := *cfg.MainConfig
	out.OutFormat = &x12
	return out.writeAll(w, ins, nil, opts...)
}
