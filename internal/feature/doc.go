// Package feature provides the structured representation of consonant
// descriptors and the parser that produces it.
//
// A Record maps feature names to values. Scalar features (place, manner,
// voice) hold a single string; the two list features (additional
// articulations, pre-features) hold an ordered sequence. Not every record
// carries every feature: clicks have no voice, and some glyphs have no
// place. Callers must check presence before comparing.
//
// Records are values. They are recomputed from the descriptor on every
// parse and never shared, so two parses of the same descriptor compare
// equal without being the same object.
//
// The default glyph table is written in CUE (glyphs.cue) and compiled at
// parser construction. A replacement table can be supplied with LoadTable.
package feature
