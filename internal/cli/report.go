package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/minopp/internal/store"
	"github.com/roach88/minopp/internal/survey"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Database   string
	RunID      string
	List       bool
	Glottocode string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print stored survey runs",
		Long: `Print a survey run stored with survey --db.

Without --run the most recent run is printed. --list shows every stored
run and --glottocode shows one language's findings across runs.

Examples:
  minopp report --db ./minopp.db
  minopp report --db ./minopp.db --run 0190c4b2-...
  minopp report --db ./minopp.db --list
  minopp report --db ./minopp.db --glottocode abcd1234 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run id (default: latest)")
	cmd.Flags().BoolVar(&opts.List, "list", false, "list stored runs")
	cmd.Flags().StringVar(&opts.Glottocode, "glottocode", "", "show findings for one language")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return commandErrorCode(formatter, ErrCodeStorage, "failed to open database", err)
	}
	defer st.Close()

	switch {
	case opts.List:
		return reportRuns(ctx, st, formatter)
	case opts.Glottocode != "":
		return reportLanguage(ctx, st, formatter, opts.Glottocode)
	}

	runID := opts.RunID
	if runID == "" {
		runID, err = st.LatestRunID(ctx)
		if err != nil {
			return reportError(formatter, "no stored runs", err)
		}
	}
	formatter.VerboseLog("Reading run %s", runID)

	sum, err := st.ReadSummary(ctx, runID)
	if err != nil {
		return reportError(formatter, "failed to read run", err)
	}

	if opts.Format == "json" {
		return formatter.SuccessRun(sum.RunID, sum)
	}
	return survey.WriteText(formatter.Writer, sum)
}

func reportRuns(ctx context.Context, st *store.Store, formatter *OutputFormatter) error {
	runs, err := st.ListRuns(ctx)
	if err != nil {
		return reportError(formatter, "failed to list runs", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs stored.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(formatter.Writer, "%d %s %s sample=%d excluded=%d flagged=%d\n",
			r.Seq, r.ID, r.Source, r.SampleSize, r.Excluded, r.Flagged)
	}
	return nil
}

func reportLanguage(ctx context.Context, st *store.Store, formatter *OutputFormatter, glottocode string) error {
	findings, err := st.FindingsFor(ctx, glottocode)
	if err != nil {
		return reportError(formatter, "failed to read findings", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(findings)
	}
	if len(findings) == 0 {
		fmt.Fprintf(formatter.Writer, "No findings for %s.\n", glottocode)
		return nil
	}
	for _, f := range findings {
		fmt.Fprintf(formatter.Writer, "%s %s %s inventory=%d result=%s digest=%s\n",
			f.Glottocode, f.Name, f.ContributorID, f.InventoryID, strings.Join(f.Report.Anomalous, ", "), shortDigest(f.Digest))
	}
	return nil
}

// shortDigest abbreviates a finding digest. Rows stored before digests
// existed print a dash.
func shortDigest(d string) string {
	if len(d) < 12 {
		return orDash(d)
	}
	return d[:12]
}

// reportError maps a missing run to E002 and anything else to E201.
func reportError(formatter *OutputFormatter, message string, err error) error {
	code := ErrCodeStorage
	if errors.Is(err, store.ErrRunNotFound) {
		code = ErrCodeNotFound
	}
	return commandErrorCode(formatter, code, message, err)
}
