// Package ir holds parsed X12 documents.
//
// An [Instance] is one application of a [schema.Loop]: one [Value] per
// slot, in slot order. A transaction set is an Instance of its body
// loop. [FunctionalGroup] and [Transmission] add the GS/GE and ISA/IEA
// envelopes.
//
// Trees are built by the parser or with the builders [NewInstance],
// [NewFunctionalGroup] and [NewTransmission], and are treated as read
// only once built.
//
// A Transmission also has a tree form, an ordered JSON or YAML object,
// see [Transmission.Tree] and [FromTree].
package ir
