// Package segment holds the X12 segment model and the segment codec.
//
// A [Segment] is a tag followed by positional elements. An [Element] is
// absent (nil), a scalar (one value) or a composite (several component
// values). A [Codec] checks a segment against its element definitions when
// decoding from tokens and again before encoding.
//
// # Usage
//
//	seg := segment.FromToken(&tok, delims)
//	seg, err := segment.Default.Decode(seg.Tag, seg.Elements)
//
//	var st segment.ST
//	err = segment.Unmarshal(seg, &st)
//
// # Related Packages
//
//   - github.com/signadot/x12-format/go-x12/token - tokens and delimiters
//   - github.com/signadot/x12-format/go-x12/parse - builds loops of segments
package segment
