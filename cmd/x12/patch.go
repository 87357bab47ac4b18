package main

import (
	"fmt"
	"io"
	"os"

	x12 "github.com/signadot/x12-format/go-x12"
	"github.com/signadot/x12-format/go-x12/ir"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.File == "" {
		return fmt.Errorf("%w: patch requires -p <patch.json>", cli.ErrUsage)
	}
	p, err := os.ReadFile(cfg.File)
	if err != nil {
		return err
	}
	ins, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	return patchInputs(cfg, cc.Out, p, ins)
}

func patchInputs(cfg *PatchConfig, w io.Writer, p []byte, ins []input) error {
	return cfg.writeAll(w, ins, func(tr *ir.Transmission) (*ir.Transmission, error) {
		return x12.Patch(tr, p)
	})
}
