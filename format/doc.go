// Package format names the document forms the x12 tool reads and writes:
// X12 wire text and the JSON and YAML tree forms.
package format
