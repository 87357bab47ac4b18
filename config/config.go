package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/signadot/x12-format/go-x12/debug"
	"github.com/signadot/x12-format/go-x12/encode"
	"github.com/signadot/x12-format/go-x12/parse"
	"github.com/signadot/x12-format/go-x12/schema"
	"github.com/signadot/x12-format/go-x12/segment"
	"github.com/signadot/x12-format/go-x12/token"
)

// EnvVar names the environment variable consulted when no path is given.
const EnvVar = "X12_CONFIG"

type Config struct {
	// Path is the file the config was read from, empty for defaults.
	Path string

	// Delimiters, when set, replace those of the input on output.
	Delimiters *token.Delimiters
	// Suffix, when set, replaces the line break after each terminator.
	Suffix *string

	Strict  bool
	Lenient bool

	// Schemas lists extra transaction set spec files.
	Schemas []string
	// Segments lists extra segment definition files.
	Segments []string

	codec segment.Codec
}

type fileConfig struct {
	Delimiters string   `toml:"delimiters"`
	Suffix     string   `toml:"suffix"`
	Strict     bool     `toml:"strict"`
	Lenient    bool     `toml:"lenient_control_numbers"`
	Schemas    []string `toml:"schemas"`
	Segments   []string `toml:"segments"`
}

func Default() *Config {
	return &Config{codec: segment.Default}
}

// Find returns the config file to use: path when not empty, then the
// file named by $X12_CONFIG, then ~/.config/x12/config.toml. It returns
// "" when no file applies. Only an explicit path must exist.
func Find(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", err
		}
		return path, nil
	}
	if p := os.Getenv(EnvVar); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("$%s: %w", EnvVar, err)
		}
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}
	p := filepath.Join(home, ".config", "x12", "config.toml")
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return p, nil
}

// Load reads the config at path, or returns Default when path is "".
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	cfg.Path = path

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if keys := meta.Undecoded(); len(keys) != 0 {
		return nil, fmt.Errorf("load config %s: unknown key %q", path, keys[0].String())
	}

	if meta.IsDefined("delimiters") {
		d, err := token.ParseDelimiters(strings.TrimSpace(raw.Delimiters))
		if err != nil {
			return nil, fmt.Errorf("parse delimiters: %w", err)
		}
		cfg.Delimiters = &d
	}
	if meta.IsDefined("suffix") {
		switch raw.Suffix {
		case "", "\n", "\r\n":
		default:
			return nil, fmt.Errorf("parse suffix: %q is not a line break", raw.Suffix)
		}
		s := raw.Suffix
		cfg.Suffix = &s
	}
	cfg.Strict = raw.Strict
	cfg.Lenient = raw.Lenient

	dir := filepath.Dir(path)
	for _, p := range raw.Schemas {
		cfg.Schemas = append(cfg.Schemas, relTo(dir, p))
	}
	for _, p := range raw.Segments {
		cfg.Segments = append(cfg.Segments, relTo(dir, p))
	}
	if err := cfg.buildCodec(); err != nil {
		return nil, err
	}
	if debug.Config() {
		debug.Logf("config: loaded %s\n", path)
		debug.LogAny(raw)
	}
	return cfg, nil
}

func relTo(dir, p string) string {
	p = strings.TrimSpace(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func (c *Config) buildCodec() error {
	if !c.Strict && len(c.Segments) == 0 {
		c.codec = segment.Default
		return nil
	}
	var opts []segment.CodecOption
	if c.Strict {
		opts = append(opts, segment.Strict())
	}
	for _, p := range c.Segments {
		d, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		defs, err := segment.LoadDefs(d)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		opts = append(opts, segment.WithDefs(defs))
	}
	c.codec = segment.NewDefCodec(opts...)
	return nil
}

// SetStrict turns rejection of undefined segment tags on or off.
func (c *Config) SetStrict(v bool) error {
	c.Strict = v
	return c.buildCodec()
}

// Register adds the configured schema files to the schema registry.
func (c *Config) Register() error {
	for _, p := range c.Schemas {
		ts, err := schema.RegisterFile(p)
		if err != nil {
			return err
		}
		if debug.Config() {
			debug.Logf("config: registered %s from %s\n", ts.ID, p)
		}
	}
	return nil
}

func (c *Config) Codec() segment.Codec {
	if c.codec == nil {
		return segment.Default
	}
	return c.codec
}

// ParseOptions returns the parse options the config implies.
func (c *Config) ParseOptions() []parse.ParseOption {
	opts := []parse.ParseOption{parse.WithCodec(c.Codec())}
	if c.Lenient {
		opts = append(opts, parse.LenientControlNumbers())
	}
	return opts
}

// EncodeOptions returns the encode options the config implies.
func (c *Config) EncodeOptions() []encode.EncodeOption {
	opts := []encode.EncodeOption{encode.WithCodec(c.Codec())}
	if c.Delimiters != nil {
		d := *c.Delimiters
		opts = append(opts, encode.WithDelimiters(d))
	}
	if c.Suffix != nil {
		opts = append(opts, encode.WithSuffix(*c.Suffix))
	}
	return opts
}
