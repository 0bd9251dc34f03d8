package survey

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/minopp/internal/feature"
	"github.com/roach88/minopp/internal/opposition"
	"github.com/roach88/minopp/internal/phoible"
)

var validate = validator.New()

// Options configures a survey.
type Options struct {
	// Workers bounds the number of languages analyzed at once.
	Workers int `validate:"gte=1,lte=256"`

	// Source labels the dataset in stored runs.
	Source string `validate:"required"`
}

// DefaultOptions returns options with four workers.
func DefaultOptions() Options {
	return Options{Workers: 4, Source: "phoible"}
}

// Finding is a flagged language.
type Finding struct {
	Glottocode    string            `json:"glottocode"`
	InventoryID   int               `json:"inventory_id"`
	Name          string            `json:"name"`
	ContributorID string            `json:"contributor_id"`
	Report        opposition.Report `json:"report"`
	// Digest is the content address of the finding, see Digest.
	Digest string `json:"digest"`
}

// Summary is the outcome of a survey run.
type Summary struct {
	RunID      string    `json:"run_id"`
	Source     string    `json:"source"`
	SampleSize int       `json:"sample_size"`
	Excluded   int       `json:"excluded"`
	Findings   []Finding `json:"findings"`
}

// Surveyor runs surveys.
type Surveyor struct {
	parser  feature.Parser
	engine  *opposition.Engine
	ids     RunIDGenerator
	opts    Options
	logger  *slog.Logger
	metrics *Metrics
}

// New creates a Surveyor. A nil ids defaults to UUIDv7Generator and a nil
// logger to slog.Default().
func New(p feature.Parser, ids RunIDGenerator, opts Options, logger *slog.Logger) (*Surveyor, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid survey options: %w", err)
	}
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Surveyor{
		parser: p,
		engine: opposition.New(p),
		ids:    ids,
		opts:   opts,
		logger: logger,
	}, nil
}

// WithMetrics records run outcomes into m. It returns s.
func (s *Surveyor) WithMetrics(m *Metrics) *Surveyor {
	s.metrics = m
	return s
}

// Run analyzes the consonant inventories in segs. Inventories with an
// unparsable member are excluded before analysis and counted in
// Summary.Excluded.
func (s *Surveyor) Run(ctx context.Context, segs []phoible.Segment, contributions map[int]phoible.Contribution) (*Summary, error) {
	sample := phoible.Sample(phoible.Consonants(segs))
	invs, excluded := phoible.Parsable(s.parser, sample)
	for _, inv := range excluded {
		s.logger.Debug("inventory excluded", "glottocode", inv.Glottocode, "inventory_id", inv.InventoryID)
	}

	summary := &Summary{
		RunID:      s.ids.Generate(),
		Source:     s.opts.Source,
		SampleSize: len(invs),
		Excluded:   len(excluded),
	}
	s.metrics.language(OutcomeExcluded, len(excluded))
	s.logger.Info("survey starting", "run_id", summary.RunID, "sample_size", summary.SampleSize, "excluded", summary.Excluded)

	slots := make([]*Finding, len(invs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, inv := range invs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := s.analyze(inv, contributions)
			if err != nil {
				return fmt.Errorf("%s: %w", inv.Glottocode, err)
			}
			slots[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.Findings = []Finding{}
	for _, f := range slots {
		if f != nil {
			summary.Findings = append(summary.Findings, *f)
		}
	}
	if s.metrics != nil {
		s.metrics.Runs.Inc()
	}
	s.logger.Info("survey finished", "run_id", summary.RunID, "flagged", len(summary.Findings))
	return summary, nil
}

// analyze returns a Finding for a flagged inventory and nil otherwise.
func (s *Surveyor) analyze(inv phoible.Inventory, contributions map[int]phoible.Contribution) (*Finding, error) {
	start := time.Now()
	rep, gated, err := s.engine.Detect(inv.Phonemes)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.AnalysisSeconds.Observe(time.Since(start).Seconds())
	}
	if !gated {
		s.logger.Debug("no stop and affricate voicing", "glottocode", inv.Glottocode)
		s.metrics.language(OutcomeUngated, 1)
		return nil, nil
	}
	if !rep.Flagged() {
		s.metrics.language(OutcomeClear, 1)
		return nil, nil
	}
	s.metrics.language(OutcomeFlagged, 1)
	c := contributions[inv.InventoryID]
	f := &Finding{
		Glottocode:    inv.Glottocode,
		InventoryID:   inv.InventoryID,
		Name:          c.Name,
		ContributorID: c.ContributorID,
		Report:        rep,
	}
	f.Digest = Digest(*f)
	return f, nil
}
