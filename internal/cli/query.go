package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/minopp/internal/opposition"
)

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <sound> <sound>",
		Short: "Show the features on which two sounds differ",
		Long: `Show the features on which two sounds differ.

Only the features of the first sound are compared, so the result can
change when the arguments are swapped.

Example:
  minopp diff p b
  minopp diff ts s --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runDiff(opts *RootOptions, d1, d2 string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	eng, err := newEngine(opts, formatter)
	if err != nil {
		return err
	}

	diffs, err := eng.FeatureDifference(d1, d2)
	if err != nil {
		return commandError(formatter, "failed to compare sounds", err)
	}

	if opts.Format == "json" {
		return formatter.Success(diffs)
	}

	if len(diffs) == 0 {
		fmt.Fprintln(formatter.Writer, "no difference")
		return nil
	}
	for _, k := range sortedKeys(diffs) {
		fmt.Fprintf(formatter.Writer, "%s: %s / %s\n", k, diffs[k].P1, diffs[k].P2)
	}
	return nil
}

// OppositionsOptions holds flags for the oppositions command.
type OppositionsOptions struct {
	*RootOptions
	Feature string
	AllVary bool
}

// NewOppositionsCommand creates the oppositions command.
func NewOppositionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OppositionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "oppositions <sound>...",
		Short: "Find pairs of sounds opposed on one feature",
		Long: `Find all pairs of sounds whose values for a feature differ.

By default every other feature must be equal or congruent (bilabial with
labio-dental, alveolar with dental). With --all-vary other features are
ignored.

Example:
  minopp oppositions --feature voice p b t d
  minopp oppositions --feature manner --all-vary ts s dz z`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOppositions(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Feature, "feature", "", "target feature (required)")
	_ = cmd.MarkFlagRequired("feature")
	cmd.Flags().BoolVar(&opts.AllVary, "all-vary", false, "let features other than the target vary")

	return cmd
}

func runOppositions(opts *OppositionsOptions, sounds []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	eng, err := newEngine(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	mode := opposition.HoldOthers
	if opts.AllVary {
		mode = opposition.FreeOthers
	}
	formatter.VerboseLog("Searching %d sound(s) on %s, others %s", len(sounds), opts.Feature, mode)

	res, err := eng.Oppositions(sounds, opts.Feature, mode)
	if err != nil {
		return commandError(formatter, "failed to search oppositions", err)
	}

	if opts.Format == "json" {
		return formatter.Success(res)
	}
	writeResult(formatter, res, "no oppositions")
	return nil
}

// FilterOptions holds flags for the filter command.
type FilterOptions struct {
	*RootOptions
	Manners []string
	Voices  []string
}

// FilterResult is the JSON payload of the filter command.
type FilterResult struct {
	Sounds []string `json:"sounds"`
}

// NewFilterCommand creates the filter command.
func NewFilterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FilterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "filter <sound>...",
		Short: "Keep sounds of the given manners or voices",
		Long: `Keep the sounds whose manner or voice is among the given values.

Sounds that cannot be parsed are dropped. When both flags are given the
manner filter runs first.

Example:
  minopp filter --manner stop --manner affricate p ts s
  minopp filter --voice voiced p b t d`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(opts, args, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Manners, "manner", nil, "manner to keep (repeatable)")
	cmd.Flags().StringSliceVar(&opts.Voices, "voice", nil, "voice to keep (repeatable)")

	return cmd
}

func runFilter(opts *FilterOptions, sounds []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	if len(opts.Manners) == 0 && len(opts.Voices) == 0 {
		return commandErrorCode(formatter, ErrCodeInvalidInput, "invalid flags",
			errors.New("at least one of --manner or --voice is required"))
	}

	eng, err := newEngine(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	kept := sounds
	if len(opts.Manners) > 0 {
		kept = eng.Manners(kept, opts.Manners...)
	}
	if len(opts.Voices) > 0 {
		kept = eng.Voices(kept, opts.Voices...)
	}
	if kept == nil {
		kept = []string{}
	}

	if opts.Format == "json" {
		return formatter.Success(FilterResult{Sounds: kept})
	}
	fmt.Fprintln(formatter.Writer, strings.Join(kept, " "))
	return nil
}

// DetectResult is the JSON payload of the detect command.
type DetectResult struct {
	Eligible bool              `json:"eligible"`
	Report   opposition.Report `json:"report"`
}

// NewDetectCommand creates the detect command.
func NewDetectCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <sound>...",
		Short: "Flag voiced affricates missing a fricative partner",
		Long: `Run the voiced affricate check on one inventory.

The inventory is eligible when it has a voice opposition among stops and
one among affricates. A voiced affricate is flagged when it has no
fricative partner but one of its voiceless counterparts does.

Example:
  minopp detect p b t d ts dz s`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(rootOpts, args, cmd)
		},
	}
}

func runDetect(opts *RootOptions, sounds []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	eng, err := newEngine(opts, formatter)
	if err != nil {
		return err
	}

	rep, eligible, err := eng.Detect(sounds)
	if err != nil {
		return commandError(formatter, "failed to analyze inventory", err)
	}

	if opts.Format == "json" {
		return formatter.Success(DetectResult{Eligible: eligible, Report: rep})
	}
	w := formatter.Writer
	if !eligible {
		fmt.Fprintln(w, "not eligible: needs voice oppositions among stops and among affricates")
		return nil
	}
	fmt.Fprintf(w, "Fricatives: %s\n", strings.Join(rep.Fricatives, ", "))
	fmt.Fprintf(w, "Affricates: %s\n", strings.Join(rep.Affricates, ", "))
	fmt.Fprintf(w, "Result: %s\n", strings.Join(rep.Anomalous, ", "))
	fmt.Fprintf(w, "Remainder: %s\n", strings.Join(rep.Remainder, ", "))
	return nil
}

// newEngine builds an engine on the configured glyph table.
func newEngine(opts *RootOptions, formatter *OutputFormatter) (*opposition.Engine, error) {
	p, err := opts.parser()
	if err != nil {
		return nil, commandError(formatter, "failed to load glyph table", err)
	}
	return opposition.New(p), nil
}

func writeResult(formatter *OutputFormatter, res opposition.Result, empty string) {
	if res.Empty() {
		fmt.Fprintln(formatter.Writer, empty)
		return
	}
	for _, o := range res.Oppositions() {
		fmt.Fprintf(formatter.Writer, "%s %s: %s / %s\n", o.Pair.First, o.Pair.Second, o.Values.First, o.Values.Second)
	}
}
