// Package rle implements run-length encoding of text images.
//
// An image is a sequence of lines. Encoding turns it into a flat, ordered
// sequence of tokens, each either a Run (one character repeated a positive
// number of times) or a LineBreak marking the end of an encoded line.
// Decoding expands the runs and breaks the lines again.
//
// # Tokens
//
// Tokens are a tagged variant in memory and are only turned into strings
// at the boundary:
//
//	Run('%', 12)  -> "%12"   (FormatConcat)
//	Run('%', 12)  -> "%:12"  (FormatDelimited)
//	LineBreak()   -> "n"
//
// The bare literal "n" always means LineBreak; a run of 'n' always
// carries a count ("n3"). FormatConcat cannot carry digit characters,
// since "51" would read as either one '5' or a malformed token, so
// Emit rejects them with ErrAmbiguousRun. FormatDelimited has no such
// restriction.
//
// # Empty Lines
//
// By default an empty line encodes to nothing at all, not even a line
// break, and is therefore lost on decode. EncodeOptions.EmptyLines set to
// EmptyLinesPreserve emits a lone line break instead.
//
// # Listings
//
// A listing is the debug view of a serialized token sequence:
//
//	[" 72", "@1", "%4", " 23", "n"]
//	5
//
// ParseListing reads it back, as well as YAML sequences.
package rle
