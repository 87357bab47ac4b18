package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/signadot/x12-format/go-x12/schema"

	"github.com/scott-cotton/cli"
)

func schemaCmd(cfg *SchemaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Schema.Parse(cc, args)
	if err != nil {
		return err
	}
	return schemaOut(cc.Out, args)
}

// schemaOut lists the registered transaction sets, or prints the spec of
// each of ids.
func schemaOut(w io.Writer, ids []string) error {
	if len(ids) == 0 {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, ts := range schema.All() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", ts.ID, ts.Version, ts.Name)
		}
		return tw.Flush()
	}
	for i, id := range ids {
		ts, err := schema.Lookup(id)
		if err != nil {
			return err
		}
		d, err := ts.MarshalYAML()
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		if _, err := w.Write(d); err != nil {
			return err
		}
	}
	return nil
}
