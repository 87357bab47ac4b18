package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Tokenize bool
	Loop     bool
	Envelope bool
	Schema   bool
	Config   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokenize = boolEnv("X12_DEBUG_TOKENIZE")
	d.Loop = boolEnv("X12_DEBUG_LOOP")
	d.Envelope = boolEnv("X12_DEBUG_ENVELOPE")
	d.Schema = boolEnv("X12_DEBUG_SCHEMA")
	d.Config = boolEnv("X12_DEBUG_CONFIG")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tokenize() bool {
	return d.Tokenize
}
func Loop() bool {
	return d.Loop
}
func Envelope() bool {
	return d.Envelope
}
func Schema() bool {
	return d.Schema
}
func Config() bool {
	return d.Config
}
