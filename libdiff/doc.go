// Package libdiff compares X12 documents segment by segment.
//
// Both sides are rendered with the same delimiters, one segment per
// line, and the lines are diffed. Replaced segments with the same tag
// are further broken down into element changes.
//
//	d, err := libdiff.Transmissions(a, b)
//	if d.Changed() {
//		d.Write(os.Stdout, libdiff.Context(2))
//	}
//
// # Related Packages
//
//   - github.com/signadot/x12-format/go-x12/encode - rendering of each side
package libdiff
