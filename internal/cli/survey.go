package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/minopp/internal/phoible"
	"github.com/roach88/minopp/internal/store"
	"github.com/roach88/minopp/internal/survey"
)

// SurveyOptions holds flags for the survey command.
type SurveyOptions struct {
	*RootOptions
	Phoible       string
	Contributions string
	Database      string
	Workers       int
	Source        string
	Metrics       string

	// RunIDs allows overriding the run id generator (for testing).
	// If nil, defaults to survey.UUIDv7Generator.
	RunIDs survey.RunIDGenerator
}

// NewSurveyCommand creates the survey command.
func NewSurveyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SurveyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Survey PHOIBLE inventories for voiced affricate gaps",
		Long: `Survey PHOIBLE consonant inventories for voiced affricates that lack a
fricative partner while a voiceless counterpart has one.

One inventory is kept per glottocode (the highest InventoryID). Inventories
with a descriptor the glyph table cannot parse are excluded. With --db the
run is stored and can be printed again with the report command.

Example:
  minopp survey --phoible phoible.csv --contributions contributions.csv
  minopp survey --phoible phoible.csv --db ./minopp.db --workers 8
  minopp survey --phoible phoible.csv --metrics /var/lib/node_exporter/minopp.prom`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSurvey(opts, cmd)
		},
	}

	defaults := survey.DefaultOptions()
	cmd.Flags().StringVar(&opts.Phoible, "phoible", "", "path to PHOIBLE segments CSV (required)")
	_ = cmd.MarkFlagRequired("phoible")
	cmd.Flags().StringVar(&opts.Contributions, "contributions", "", "path to PHOIBLE contributions CSV")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database to store the run")
	cmd.Flags().IntVar(&opts.Workers, "workers", defaults.Workers, "languages analyzed in parallel")
	cmd.Flags().StringVar(&opts.Source, "source", defaults.Source, "dataset label stored with the run")
	cmd.Flags().StringVar(&opts.Metrics, "metrics", "", "write Prometheus metrics to this textfile")

	return cmd
}

func runSurvey(opts *SurveyOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler)

	p, err := opts.parser()
	if err != nil {
		return commandError(formatter, "failed to load glyph table", err)
	}

	logger.Info("loading segments", "path", opts.Phoible)
	segs, err := phoible.LoadSegmentsFile(opts.Phoible)
	if err != nil {
		return commandErrorCode(formatter, readCode(err), "failed to load segments", err)
	}

	contributions := map[int]phoible.Contribution{}
	if opts.Contributions != "" {
		logger.Info("loading contributions", "path", opts.Contributions)
		contributions, err = phoible.LoadContributionsFile(opts.Contributions)
		if err != nil {
			return commandErrorCode(formatter, readCode(err), "failed to load contributions", err)
		}
	}

	surveyor, err := survey.New(p, opts.RunIDs, survey.Options{
		Workers: opts.Workers,
		Source:  opts.Source,
	}, logger)
	if err != nil {
		return commandErrorCode(formatter, ErrCodeInvalidInput, "invalid survey options", err)
	}

	metrics := survey.NewMetrics()
	surveyor.WithMetrics(metrics)

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := surveyor.Run(ctx, segs, contributions)
	if err != nil {
		return commandError(formatter, "survey failed", err)
	}

	if opts.Database != "" {
		if err := persistSummary(ctx, opts.Database, sum, logger); err != nil {
			return commandErrorCode(formatter, ErrCodeStorage, "failed to store run", err)
		}
	}

	if opts.Metrics != "" {
		if err := metrics.WriteTextfile(opts.Metrics); err != nil {
			return commandErrorCode(formatter, ErrCodeWriteFailed, "failed to write metrics", err)
		}
		logger.Info("metrics written", "path", opts.Metrics)
	}

	if opts.Format == "json" {
		return formatter.SuccessRun(sum.RunID, sum)
	}
	return survey.WriteText(formatter.Writer, sum)
}

func persistSummary(ctx context.Context, path string, sum *survey.Summary, logger *slog.Logger) error {
	logger.Info("opening database", "path", path)
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	if err := st.WriteSummary(ctx, sum); err != nil {
		return err
	}
	logger.Info("run stored", "run_id", sum.RunID, "findings", len(sum.Findings))
	return nil
}

// readCode distinguishes a missing dataset file from a malformed one.
func readCode(err error) string {
	if code := errorCode(err); code == ErrCodeNotFound {
		return code
	}
	return ErrCodeReadFailed
}
