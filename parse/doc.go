// Package parse turns tokenized X12 into typed segments placed in loop
// instances, and checks the ISA/GS/ST envelope around them.
//
// Loop placement is LL(1) and greedy: a slot takes every segment it can
// before the next slot is considered, and nothing is ever given back.
// A loop is entered when the next tag is in its entry set (see
// [schema.Loop.Entry]). When a repeat bound is reached while the next tag
// still fits the slot, parsing stops normally if a later slot or an
// enclosing loop can take that tag and fails with ErrRepeatBoundExceeded
// otherwise.
//
// Envelope checks are strict by default. SE01, GE01 and IEA01 must hold the
// segment, set and group counts written as plain decimals. The trailer
// control numbers SE02, GE02 and IEA02 must also equal ST02, GS06 and
// ISA13. Many translators only check counts. Input from producers that
// reuse or omit control numbers parses with [LenientControlNumbers], which
// leaves the count checks in place.
package parse
