package feature

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Tie bars joining the parts of an affricate or double articulation.
const (
	tieAbove = '\u0361'
	tieBelow = '\u035C'
)

// IPAParser parses consonant descriptors written in IPA.
//
// A descriptor is an optional run of prefixes, one or two base glyphs each
// followed by modifiers. Two bases form either an affricate (stop followed
// by a fricative) or a labial-velar double articulation. Place and voice
// of an affricate come from its fricative part.
type IPAParser struct {
	table *Table
}

// NewIPAParser returns a parser over the embedded glyph table.
func NewIPAParser() (*IPAParser, error) {
	t, err := DefaultTable()
	if err != nil {
		return nil, err
	}
	return &IPAParser{table: t}, nil
}

// NewIPAParserWithTable returns a parser over the given table.
func NewIPAParserWithTable(t *Table) *IPAParser {
	return &IPAParser{table: t}
}

// Table returns the parser's glyph table.
func (p *IPAParser) Table() *Table { return p.table }

type segment struct {
	spec GlyphSpec
	mods []ModifierSpec
}

// Parse implements Parser. Every call builds a fresh Record.
func (p *IPAParser) Parse(descriptor string) (Record, error) {
	fail := func(offset int, reason string) (Record, error) {
		return Record{}, &ParseError{Descriptor: descriptor, Offset: offset, Reason: reason}
	}

	runes := []rune(strings.Map(func(r rune) rune {
		if r == tieAbove || r == tieBelow {
			return -1
		}
		return r
	}, norm.NFD.String(strings.TrimSpace(descriptor))))
	if len(runes) == 0 {
		return fail(-1, "empty descriptor")
	}

	pos := 0
	var pre []string
	for pos < len(runes) {
		m, n := longest(runes[pos:], p.table.Prefixes, p.table.prefixWidth)
		if n == 0 || pos+n >= len(runes) {
			break
		}
		// A prefix must be followed by a base glyph.
		if _, gn := longest(runes[pos+n:], p.table.Glyphs, p.table.glyphWidth); gn == 0 {
			break
		}
		pre = append(pre, m.Name)
		pos += n
	}

	var segs []segment
	for pos < len(runes) {
		g, n := longest(runes[pos:], p.table.Glyphs, p.table.glyphWidth)
		if n == 0 {
			if len(segs) == 0 {
				return fail(pos, "unknown base glyph "+string(runes[pos]))
			}
			return fail(pos, "unknown modifier "+string(runes[pos]))
		}
		pos += n
		seg := segment{spec: g}
		for pos < len(runes) {
			m, mn := longest(runes[pos:], p.table.Modifiers, p.table.modWidth)
			if mn == 0 {
				break
			}
			seg.mods = append(seg.mods, m)
			pos += mn
		}
		segs = append(segs, seg)
	}

	var base segment
	var add []string
	switch len(segs) {
	case 1:
		base = applySet(segs[0])
	case 2:
		first, second := segs[0], applySet(segs[1])
		combined, ok := combine(first.spec, second.spec)
		if !ok {
			return fail(-1, "unsupported sequence of "+first.spec.Manner+" and "+second.spec.Manner)
		}
		base = segment{spec: combined}
		// Place and voice refinements on the stop part of an affricate are
		// absorbed by the fricative part.
		for _, m := range first.mods {
			if m.Kind == ModAdditional {
				add = append(add, m.Name)
			}
		}
		base.mods = second.mods
	default:
		return fail(-1, "too many base glyphs")
	}
	for _, m := range base.mods {
		if m.Kind == ModAdditional {
			add = append(add, m.Name)
		}
	}

	values := map[string]Value{
		Glyph:                   Scalar(descriptor),
		Manner:                  Scalar(base.spec.Manner),
		AdditionalArticulations: List(add...),
		PreFeatures:             List(pre...),
	}
	if base.spec.Place != "" {
		values[Place] = Scalar(base.spec.Place)
	}
	if base.spec.Voice != "" {
		values[Voice] = Scalar(base.spec.Voice)
	}
	return NewRecord(values), nil
}

// applySet folds "set" modifiers into the segment's glyph spec.
func applySet(s segment) segment {
	for _, m := range s.mods {
		if m.Kind != ModSet {
			continue
		}
		switch m.Feature {
		case Place:
			s.spec.Place = m.Value
		case Voice:
			s.spec.Voice = m.Value
		}
	}
	return s
}

func combine(first, second GlyphSpec) (GlyphSpec, bool) {
	switch {
	case first.Manner == "stop" && second.Manner == "fricative":
		return GlyphSpec{Place: second.Place, Manner: "affricate", Voice: second.Voice}, true
	case first.Manner == "stop" && second.Manner == "lateral fricative":
		return GlyphSpec{Place: second.Place, Manner: "lateral affricate", Voice: second.Voice}, true
	case first.Manner == second.Manner && first.Place == "velar" && second.Place == "bilabial":
		return GlyphSpec{Place: "labial-velar", Manner: first.Manner, Voice: second.Voice}, true
	}
	return GlyphSpec{}, false
}

// longest finds the longest key of m that prefixes runes.
func longest[V any](runes []rune, m map[string]V, width int) (V, int) {
	var zero V
	for n := min(width, len(runes)); n > 0; n-- {
		if v, ok := m[string(runes[:n])]; ok {
			return v, n
		}
	}
	return zero, 0
}
