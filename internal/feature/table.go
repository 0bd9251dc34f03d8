package feature

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"golang.org/x/text/unicode/norm"
)

//go:embed glyphs.cue
var defaultTableSource []byte

// Modifier kinds.
const (
	ModAdditional = "additional"
	ModPre        = "pre"
	ModSet        = "set"
)

// GlyphSpec is the feature set of one base symbol.
type GlyphSpec struct {
	Place  string `json:"place,omitempty"`
	Manner string `json:"manner"`
	Voice  string `json:"voice,omitempty"`
}

// ModifierSpec describes a diacritic or prefix.
type ModifierSpec struct {
	Kind    string `json:"kind"`
	Name    string `json:"name,omitempty"`
	Feature string `json:"feature,omitempty"`
	Value   string `json:"value,omitempty"`
}

// Table is a compiled glyph table. Keys are NFD-normalized.
type Table struct {
	Glyphs    map[string]GlyphSpec
	Modifiers map[string]ModifierSpec
	Prefixes  map[string]ModifierSpec

	// longest key length in runes, per map
	glyphWidth, modWidth, prefixWidth int
}

// DefaultTable compiles the embedded glyph table.
func DefaultTable() (*Table, error) {
	return LoadTable(defaultTableSource, "glyphs.cue")
}

// LoadTableFile compiles a glyph table from a CUE file on disk.
func LoadTableFile(path string) (*Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glyph table: %w", err)
	}
	return LoadTable(src, path)
}

// LoadTable compiles CUE source into a Table. The source must satisfy the
// schema in glyphs.cue: glyphs, modifiers and prefixes maps.
func LoadTable(src []byte, filename string) (*Table, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var raw struct {
		Glyphs    map[string]GlyphSpec    `json:"glyphs"`
		Modifiers map[string]ModifierSpec `json:"modifiers"`
		Prefixes  map[string]ModifierSpec `json:"prefixes"`
	}
	if err := v.Decode(&raw); err != nil {
		return nil, formatCUEError(err)
	}
	if len(raw.Glyphs) == 0 {
		return nil, &TableError{Field: "glyphs", Message: "at least one glyph is required"}
	}

	t := &Table{
		Glyphs:    make(map[string]GlyphSpec, len(raw.Glyphs)),
		Modifiers: make(map[string]ModifierSpec, len(raw.Modifiers)),
		Prefixes:  make(map[string]ModifierSpec, len(raw.Prefixes)),
	}
	for k, g := range raw.Glyphs {
		key := norm.NFD.String(k)
		t.Glyphs[key] = g
		t.glyphWidth = max(t.glyphWidth, utf8.RuneCountInString(key))
	}
	for k, m := range raw.Modifiers {
		if err := checkModifier("modifiers", k, m); err != nil {
			return nil, err
		}
		key := norm.NFD.String(k)
		t.Modifiers[key] = m
		t.modWidth = max(t.modWidth, utf8.RuneCountInString(key))
	}
	for k, m := range raw.Prefixes {
		if err := checkModifier("prefixes", k, m); err != nil {
			return nil, err
		}
		key := norm.NFD.String(k)
		t.Prefixes[key] = m
		t.prefixWidth = max(t.prefixWidth, utf8.RuneCountInString(key))
	}
	return t, nil
}

func checkModifier(section, key string, m ModifierSpec) error {
	field := fmt.Sprintf("%s.%q", section, key)
	switch m.Kind {
	case ModAdditional, ModPre:
		if m.Name == "" {
			return &TableError{Field: field, Message: "name is required for kind " + m.Kind}
		}
	case ModSet:
		if m.Feature == "" || m.Value == "" {
			return &TableError{Field: field, Message: "feature and value are required for kind set"}
		}
	default:
		return &TableError{Field: field, Message: fmt.Sprintf("unknown kind %q", m.Kind)}
	}
	return nil
}

// Symbols returns the glyph keys in sorted order.
func (t *Table) Symbols() []string {
	keys := make([]string, 0, len(t.Glyphs))
	for k := range t.Glyphs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &TableError{Field: "cue", Message: err.Error()}
	}
	first := errs[0]
	te := &TableError{Field: "cue", Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 && positions[0].IsValid() {
		p := positions[0]
		te.Pos = fmt.Sprintf("%s:%d:%d", p.Filename(), p.Line(), p.Column())
	}
	return te
}
