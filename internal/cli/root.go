package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/minopp/internal/feature"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Glyphs  string // optional CUE glyph table replacing the built-in one
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the minopp CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "minopp",
		Short: "minopp - minimal opposition analysis",
		Long: `Find minimal phonological oppositions between consonants and survey
PHOIBLE inventories for voiced affricates lacking a fricative partner.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Glyphs, "glyphs", "", "CUE glyph table (default: built-in)")

	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewOppositionsCommand(opts))
	cmd.AddCommand(NewFilterCommand(opts))
	cmd.AddCommand(NewDetectCommand(opts))
	cmd.AddCommand(NewSurveyCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewGlyphsCommand(opts))

	return cmd
}

// formatter builds the output formatter for a command.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// table loads the glyph table named by --glyphs, or the built-in one.
func (o *RootOptions) table() (*feature.Table, error) {
	if o.Glyphs == "" {
		return feature.DefaultTable()
	}
	return feature.LoadTableFile(o.Glyphs)
}

// parser builds the IPA parser for the configured glyph table.
func (o *RootOptions) parser() (feature.Parser, error) {
	t, err := o.table()
	if err != nil {
		return nil, err
	}
	return feature.NewIPAParserWithTable(t), nil
}
