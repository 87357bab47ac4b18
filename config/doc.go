// Package config reads the TOML file holding defaults for the x12 command.
//
// A config file looks like
//
//	delimiters = "~*:"
//	suffix = "\n"
//	strict = true
//	lenient_control_numbers = false
//	schemas = ["specs/856.yaml"]
//	segments = ["specs/segments.yaml"]
//
// Relative schema and segment paths are taken relative to the file.
package config
