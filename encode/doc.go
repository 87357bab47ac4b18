// Package encode writes transmissions and loop instances back to X12
// text.
//
// Control counts (SE01, GE01, IEA01) are recomputed from the tree and
// ISA16 is rewritten to the component separator in use, so a tree built
// by hand or edited after parsing does not need its trailers fixed up.
// Instances are checked against their loop spec as they are written.
//
//	var buf bytes.Buffer
//	err := encode.Encode(tr, &buf, encode.WithSuffix("\n"))
//
// # Related Packages
//
//   - github.com/signadot/x12-format/go-x12/parse - the inverse direction
//   - github.com/signadot/x12-format/go-x12/ir - the tree being written
package encode
