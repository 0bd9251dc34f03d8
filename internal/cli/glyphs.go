package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/minopp/internal/feature"
)

// GlyphEntry is one row of the glyphs list output.
type GlyphEntry struct {
	Symbol string `json:"symbol"`
	feature.GlyphSpec
}

// TableSummary is the JSON payload of glyphs validate.
type TableSummary struct {
	Valid     bool   `json:"valid"`
	Glyphs    int    `json:"glyphs"`
	Modifiers int    `json:"modifiers"`
	Prefixes  int    `json:"prefixes"`
	Field     string `json:"field,omitempty"`
	Pos       string `json:"pos,omitempty"`
}

// NewGlyphsCommand creates the glyphs command group.
func NewGlyphsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glyphs",
		Short: "Inspect and validate glyph tables",
		Long: `Inspect and validate the CUE glyph table used to parse IPA descriptors.

The built-in table is used unless --glyphs names another file.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List base glyphs of the active table",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGlyphsList(rootOpts, cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <table.cue>",
		Short: "Check a glyph table against the schema",
		Long: `Check a glyph table against the schema.

Exit codes:
  0 - Table is valid
  1 - Table is invalid
  2 - Command error (file not found, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGlyphsValidate(rootOpts, args[0], cmd)
		},
	})

	return cmd
}

func runGlyphsList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	t, err := opts.table()
	if err != nil {
		return commandError(formatter, "failed to load glyph table", err)
	}

	entries := make([]GlyphEntry, 0, len(t.Glyphs))
	for _, sym := range t.Symbols() {
		entries = append(entries, GlyphEntry{Symbol: sym, GlyphSpec: t.Glyphs[sym]})
	}

	if opts.Format == "json" {
		return formatter.Success(entries)
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%s\t%s\t%s\t%s\n", e.Symbol, orDash(e.Place), e.Manner, orDash(e.Voice))
	}
	formatter.VerboseLog("%d glyphs, %d modifiers, %d prefixes", len(t.Glyphs), len(t.Modifiers), len(t.Prefixes))
	return nil
}

func runGlyphsValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	t, err := feature.LoadTableFile(path)
	var te *feature.TableError
	switch {
	case errors.As(err, &te):
		if opts.Format == "json" {
			_ = formatter.encode(CLIResponse{
				Status: "error",
				Data:   TableSummary{Field: te.Field, Pos: te.Pos},
				Error:  &CLIError{Code: ErrCodeTable, Message: te.Message},
			})
		} else {
			fmt.Fprintln(formatter.Writer, "✗ Glyph table invalid")
			if te.Pos != "" {
				fmt.Fprintln(formatter.Writer, te.Pos)
			}
			fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", ErrCodeTable, te.Field, te.Message)
		}
		// Invalid tables are validation failures (exit code 1)
		return WrapExitError(ExitFailure, "glyph table invalid", err)
	case err != nil:
		return commandError(formatter, "failed to read glyph table", err)
	}

	if opts.Format == "json" {
		return formatter.Success(TableSummary{
			Valid:     true,
			Glyphs:    len(t.Glyphs),
			Modifiers: len(t.Modifiers),
			Prefixes:  len(t.Prefixes),
		})
	}
	fmt.Fprintf(formatter.Writer, "✓ Glyph table valid (%d glyphs, %d modifiers, %d prefixes)\n",
		len(t.Glyphs), len(t.Modifiers), len(t.Prefixes))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// sortedKeys returns the keys of m in order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
