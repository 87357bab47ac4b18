// Package token splits X12 interchange text into segment tokens.
//
// [Tokenize] discovers the delimiters from the fixed-width ISA header before
// splitting the rest of the document, and returns one [Token] per segment
// together with the [Delimiters] in use. Line breaks following segment
// terminators are tolerated and discarded; the break used after the ISA
// segment is remembered in [Delimiters.Suffix] so that documents can be
// rendered back in the same layout.
package token
