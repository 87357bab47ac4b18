package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/x12-format/go-x12/config"
	"github.com/signadot/x12-format/go-x12/encode"
	"github.com/signadot/x12-format/go-x12/format"
	"github.com/signadot/x12-format/go-x12/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Config  string `cli:"name=config desc='TOML config file (default $X12_CONFIG or ~/.config/x12/config.toml)'"`
	SetID   string `cli:"name=T desc='require transaction sets of this id'"`
	Lenient bool   `cli:"name=lenient desc='accept mismatched control numbers'"`
	Strict  bool   `cli:"name=strict desc='reject segments without a definition'"`
	Color   bool   `cli:"name=color desc='encode with color'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	file *config.Config
	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// setup reads the config file and registers its schemas.
func (cfg *MainConfig) setup() error {
	path, err := config.Find(cfg.Config)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	file, err := config.Load(path)
	if err != nil {
		return err
	}
	if cfg.Strict {
		if err := file.SetStrict(true); err != nil {
			return err
		}
	}
	if err := file.Register(); err != nil {
		return err
	}
	cfg.file = file
	return nil
}

func (cfg *MainConfig) conf() *config.Config {
	if cfg.file == nil {
		cfg.file = config.Default()
	}
	return cfg.file
}

func (cfg *MainConfig) inFormat() format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	return format.X12Format
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return format.X12Format
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	res := cfg.conf().ParseOptions()
	if cfg.SetID != "" {
		res = append(res, parse.TransactionSet(cfg.SetID))
	}
	if cfg.Lenient {
		res = append(res, parse.LenientControlNumbers())
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := cfg.conf().EncodeOptions()
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	if cfg.optSet("color") {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// optSet reports whether the main option name was given on the command
// line.
func (cfg *MainConfig) optSet(name string) bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

type CheckConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only report failures'"`

	Check *cli.Command
}

type FmtConfig struct {
	*MainConfig
	NL         bool   `cli:"name=nl desc='break lines after segment terminators'"`
	Delimiters string `cli:"name=d desc='output delimiters, segment element component, e.g. ~*:'"`

	Fmt *cli.Command
}

type DumpConfig struct {
	*MainConfig
	Dump *cli.Command
}

type LoadConfig struct {
	*MainConfig
	Load *cli.Command
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Context int  `cli:"name=U desc='number of unchanged segments around changes'"`

	Diff *cli.Command
}

type SelectConfig struct {
	*MainConfig
	Expr  string `cli:"name=e desc='boolean expression over tag, path, set, group, el(i), comp(i, j)'"`
	Paths bool   `cli:"name=paths desc='print only paths of matches'"`

	Select *cli.Command
}

type PatchConfig struct {
	*MainConfig
	File string `cli:"name=p desc='JSON patch file'"`

	Patch *cli.Command
}

type SchemaConfig struct {
	*MainConfig
	Schema *cli.Command
}
