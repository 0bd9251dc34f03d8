package harness

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/minopp/internal/feature"
	"github.com/roach88/minopp/internal/opposition"
	"github.com/roach88/minopp/internal/testutil"
)

// Harness is the scenario execution engine.
// Steps are numbered by a deterministic clock so traces are reproducible.
type Harness struct {
	engine *opposition.Engine
	clock  *testutil.DeterministicClock
	logger *slog.Logger
}

// outcome is the typed output of one query, before rendering.
type outcome struct {
	pairs     [][]string
	features  []string
	sounds    []string
	found     bool
	gated     bool
	report    opposition.Report
	rendering []string
}

// Run executes a scenario and returns the result.
//
// Query failures are recorded in the trace rather than aborting the run.
// The returned error covers setup problems only, such as an invalid glyph
// table.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with step logging sent to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	return RunWithClock(scenario, testutil.NewDeterministicClock(), logger)
}

// RunWithClock runs a scenario on a shared clock. The clock is reset first,
// so step numbers start at 1 whatever ran on it before.
func RunWithClock(scenario *Scenario, clock *testutil.DeterministicClock, logger *slog.Logger) (*Result, error) {
	p, err := scenarioParser(scenario)
	if err != nil {
		return nil, err
	}

	clock.Reset()
	h := &Harness{
		engine: opposition.New(p),
		clock:  clock,
		logger: logger,
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		sounds := step.Sounds
		if sounds == nil {
			sounds = scenario.Inventory
		}

		ev := TraceEvent{
			Seq:    h.clock.Next(),
			Query:  step.Query,
			Input:  describe(step),
			Output: []string{},
		}
		out, qerr := h.execute(step, sounds)
		if qerr != nil {
			ev.Error = qerr.Error()
		} else {
			ev.Output = out.rendering
		}
		result.AddTrace(ev)

		for _, msg := range checkExpect(step, out, qerr) {
			result.AddError(fmt.Sprintf("steps[%d] %s: %s", i, step.Query, msg))
		}

		h.logger.Info("step completed",
			"step", i,
			"query", step.Query,
			"seq", ev.Seq,
			"failed", qerr != nil,
		)
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

func scenarioParser(s *Scenario) (feature.Parser, error) {
	if s.Glyphs == "" {
		p, err := feature.NewIPAParser()
		if err != nil {
			return nil, fmt.Errorf("failed to load glyph table: %w", err)
		}
		return p, nil
	}
	t, err := feature.LoadTableFile(s.Glyphs)
	if err != nil {
		return nil, fmt.Errorf("failed to load glyph table: %w", err)
	}
	return feature.NewIPAParserWithTable(t), nil
}

// execute runs one query and renders its output lines.
func (h *Harness) execute(step Step, sounds []string) (outcome, error) {
	var out outcome
	switch step.Query {
	case QueryDifference:
		diffs, err := h.engine.FeatureDifference(step.Pair[0], step.Pair[1])
		if err != nil {
			return out, err
		}
		out.features = make([]string, 0, len(diffs))
		for k := range diffs {
			out.features = append(out.features, k)
		}
		sort.Strings(out.features)
		for _, k := range out.features {
			d := diffs[k]
			out.rendering = append(out.rendering, fmt.Sprintf("%s: %s / %s", k, d.P1, d.P2))
		}

	case QueryOppositions:
		mode := opposition.HoldOthers
		if step.Mode == "free" {
			mode = opposition.FreeOthers
		}
		res, err := h.engine.Oppositions(sounds, step.Feature, mode)
		if err != nil {
			return out, err
		}
		out.pairs, out.rendering = renderResult(res)

	case QueryManners:
		out.sounds = h.engine.Manners(sounds, step.Values...)
		out.rendering = []string{strings.Join(out.sounds, " ")}

	case QueryVoices:
		out.sounds = h.engine.Voices(sounds, step.Values...)
		out.rendering = []string{strings.Join(out.sounds, " ")}

	case QueryVoiceOppIn:
		res, ok, err := h.engine.VoiceOppIn(sounds, step.Values...)
		if err != nil {
			return out, err
		}
		out.found = ok
		out.rendering = []string{"found: " + strconv.FormatBool(ok)}
		if ok {
			var lines []string
			out.pairs, lines = renderResult(res)
			out.rendering = append(out.rendering, lines...)
		}

	case QueryDetect:
		rep, gated, err := h.engine.Detect(sounds)
		if err != nil {
			return out, err
		}
		out.gated = gated
		out.report = rep
		out.rendering = []string{"gated: " + strconv.FormatBool(gated)}
		if gated {
			out.rendering = append(out.rendering,
				"fricatives: "+strings.Join(rep.Fricatives, " "),
				"affricates: "+strings.Join(rep.Affricates, " "),
				"result: "+strings.Join(rep.Anomalous, " "),
				"remainder: "+strings.Join(rep.Remainder, " "),
			)
		}

	default:
		return out, fmt.Errorf("unknown query %q", step.Query)
	}
	if out.rendering == nil {
		out.rendering = []string{}
	}
	return out, nil
}

func renderResult(res opposition.Result) ([][]string, []string) {
	pairs := make([][]string, 0, res.Len())
	lines := make([]string, 0, res.Len())
	for _, o := range res.Oppositions() {
		pairs = append(pairs, []string{o.Pair.First, o.Pair.Second})
		lines = append(lines, fmt.Sprintf("%s %s: %s / %s", o.Pair.First, o.Pair.Second, o.Values.First, o.Values.Second))
	}
	return pairs, lines
}

// describe renders the arguments of a step in a fixed order.
func describe(step Step) string {
	var parts []string
	if len(step.Pair) > 0 {
		parts = append(parts, "pair="+strings.Join(step.Pair, ","))
	}
	if step.Feature != "" {
		mode := step.Mode
		if mode == "" {
			mode = opposition.HoldOthers.String()
		}
		parts = append(parts, "feature="+step.Feature, "mode="+mode)
	}
	if len(step.Values) > 0 {
		parts = append(parts, "values="+strings.Join(step.Values, ","))
	}
	if step.Sounds != nil {
		parts = append(parts, "sounds="+strings.Join(step.Sounds, ","))
	}
	return strings.Join(parts, " ")
}

// checkExpect compares a query outcome to the step's expect clause.
func checkExpect(step Step, out outcome, qerr error) []string {
	exp := step.Expect
	if exp == nil {
		if qerr != nil {
			return []string{"unexpected error: " + qerr.Error()}
		}
		return nil
	}
	if exp.Error {
		if qerr == nil {
			return []string{"expected an error, query succeeded"}
		}
		return nil
	}
	if qerr != nil {
		return []string{"unexpected error: " + qerr.Error()}
	}

	var errs []string
	mismatch := func(field string, want, got any) {
		errs = append(errs, fmt.Sprintf("%s: expected %v, got %v", field, want, got))
	}
	if exp.Pairs != nil && !slices.EqualFunc(exp.Pairs, out.pairs, func(a, b []string) bool { return slices.Equal(a, b) }) {
		mismatch("pairs", exp.Pairs, out.pairs)
	}
	if exp.Features != nil {
		want := slices.Clone(exp.Features)
		sort.Strings(want)
		if !slices.Equal(want, out.features) {
			mismatch("features", want, out.features)
		}
	}
	if exp.Sounds != nil && !slices.Equal(exp.Sounds, out.sounds) {
		mismatch("sounds", exp.Sounds, out.sounds)
	}
	if exp.Found != nil && *exp.Found != out.found {
		mismatch("found", *exp.Found, out.found)
	}
	if exp.Gated != nil && *exp.Gated != out.gated {
		mismatch("gated", *exp.Gated, out.gated)
	}
	if exp.Result != nil && !slices.Equal(exp.Result, out.report.Anomalous) {
		mismatch("result", exp.Result, out.report.Anomalous)
	}
	if exp.Remainder != nil && !slices.Equal(exp.Remainder, out.report.Remainder) {
		mismatch("remainder", exp.Remainder, out.report.Remainder)
	}
	return errs
}
