package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/signadot/x12-format/go-x12/encode"
	"github.com/signadot/x12-format/go-x12/format"
	"github.com/signadot/x12-format/go-x12/ir"
	"github.com/signadot/x12-format/go-x12/parse"
)

// input is the content of one named input, "-" being standard input.
type input struct {
	name string
	data []byte
}

func readInput(in io.Reader, path string) (input, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return input{}, err
		}
		defer f.Close()
		r = f
	} else {
		r = in
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return input{}, fmt.Errorf("error reading %q: %w", path, err)
	}
	return input{name: path, data: d}, nil
}

// readInputs reads files, or standard input when there are none.
func readInputs(in io.Reader, files []string) ([]input, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	res := make([]input, 0, len(files))
	for _, file := range files {
		i, err := readInput(in, file)
		if err != nil {
			return nil, err
		}
		res = append(res, i)
	}
	return res, nil
}

// decode reads in according to the input format.
func (cfg *MainConfig) decode(in input) (*ir.Transmission, error) {
	if cfg.inFormat().IsTree() {
		tr, err := ir.FromTree(in.data)
		if err != nil {
			return nil, err
		}
		// tree input skips the parser, check it by encoding
		if err := encode.Encode(tr, io.Discard, cfg.conf().EncodeOptions()...); err != nil {
			return nil, err
		}
		return tr, nil
	}
	return parse.Parse(in.data, cfg.parseOpts()...)
}

// write renders tr in the output format. opts apply to X12 output only.
func (cfg *MainConfig) write(w io.Writer, tr *ir.Transmission, opts ...encode.EncodeOption) error {
	switch cfg.outFormat() {
	case format.JSONFormat:
		d, err := tr.MarshalJSON()
		if err != nil {
			return err
		}
		buf := bytes.NewBuffer(nil)
		if err := json.Indent(buf, d, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err = w.Write(buf.Bytes())
		return err
	case format.YAMLFormat:
		d, err := tr.MarshalYAML()
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	default:
		return encode.Encode(tr, w, append(cfg.encOpts(w), opts...)...)
	}
}

// writeAll decodes each input and writes it after applying f, which may
// be nil.
func (cfg *MainConfig) writeAll(w io.Writer, ins []input, f func(*ir.Transmission) (*ir.Transmission, error), opts ...encode.EncodeOption) error {
	for i, in := range ins {
		tr, err := cfg.decode(in)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", in.name, err)
		}
		if f != nil {
			tr, err = f(tr)
			if err != nil {
				return fmt.Errorf("%s: %w", in.name, err)
			}
		}
		if i > 0 && cfg.outFormat() == format.YAMLFormat {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		if err := cfg.write(w, tr, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", in.name, err)
		}
	}
	return nil
}
