package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Query names.
const (
	QueryDifference  = "difference"
	QueryOppositions = "oppositions"
	QueryManners     = "manners"
	QueryVoices      = "voices"
	QueryVoiceOppIn  = "voice_opp_in"
	QueryDetect      = "detect"
)

// Scenario defines a query scenario over one inventory.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name" validate:"required"`

	// Description explains what this scenario checks.
	Description string `yaml:"description" validate:"required"`

	// Glyphs is an optional CUE glyph table replacing the built-in one.
	Glyphs string `yaml:"glyphs,omitempty"`

	// Inventory is the default sound list for every step.
	Inventory []string `yaml:"inventory" validate:"required,min=1"`

	Steps []Step `yaml:"steps" validate:"required,min=1,dive"`

	Assertions []Assertion `yaml:"assertions,omitempty" validate:"dive"`
}

// Step is one query.
type Step struct {
	Query string `yaml:"query" validate:"required,oneof=difference oppositions manners voices voice_opp_in detect"`

	// Sounds replaces the scenario inventory for this step.
	Sounds []string `yaml:"sounds,omitempty"`

	// Pair holds the two descriptors compared by difference.
	Pair []string `yaml:"pair,omitempty" validate:"omitempty,len=2"`

	// Feature is the target of oppositions.
	Feature string `yaml:"feature,omitempty"`

	// Mode is "hold" or "free" for oppositions.
	Mode string `yaml:"mode,omitempty" validate:"omitempty,oneof=hold free"`

	// Values are the manners or voices of a filter or voice_opp_in.
	Values []string `yaml:"values,omitempty"`

	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists the checks for one step. Nil fields are not checked.
type Expect struct {
	// Error requires the query to fail.
	Error bool `yaml:"error,omitempty"`

	// Pairs are the expected opposed pairs, in discovery order.
	Pairs [][]string `yaml:"pairs,omitempty" validate:"omitempty,dive,len=2"`

	// Features are the expected differing feature names, in any order.
	Features []string `yaml:"features,omitempty"`

	// Sounds are the expected filter output, in order.
	Sounds []string `yaml:"sounds,omitempty"`

	// Found is the expected voice_opp_in outcome.
	Found *bool `yaml:"found,omitempty"`

	// Gated is whether detect's inventory passes both gates.
	Gated *bool `yaml:"gated,omitempty"`

	// Result and Remainder are detect's flagged and unflagged voiced
	// affricates.
	Result    []string `yaml:"result,omitempty"`
	Remainder []string `yaml:"remainder,omitempty"`
}

// Assertion validates the trace as a whole.
type Assertion struct {
	// Type is one of trace_contains, trace_order or trace_count.
	Type string `yaml:"type" validate:"required,oneof=trace_contains trace_order trace_count"`

	// Query names the step kind (trace_contains, trace_count).
	Query string `yaml:"query,omitempty"`

	// Sound must appear in an output line of Query (trace_contains).
	Sound string `yaml:"sound,omitempty"`

	// Count is the expected number of Query steps (trace_count).
	Count int `yaml:"count,omitempty" validate:"gte=0"`

	// Queries is the expected order of step kinds (trace_order).
	Queries []string `yaml:"queries,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
)

// LoadScenario reads and parses a scenario YAML file. A relative glyphs
// path is resolved against the scenario's directory.
//
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or fails validation.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the glyphs path relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Glyphs != "" && !filepath.IsAbs(scenario.Glyphs) && basePath != "" {
		scenario.Glyphs = filepath.Join(basePath, scenario.Glyphs)
	}
	if scenario.Glyphs != "" {
		if _, err := os.Stat(scenario.Glyphs); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: glyph table not found: %s", scenario.Glyphs)
		}
	}

	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "step:" vs "steps:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario runs the struct tags, then the per-query rules the tags
// cannot express.
func validateScenario(s *Scenario) error {
	if err := validate.Struct(s); err != nil {
		return err
	}

	for i, step := range s.Steps {
		switch step.Query {
		case QueryDifference:
			if len(step.Pair) != 2 {
				return fmt.Errorf("steps[%d]: pair of two sounds is required for difference", i)
			}
		case QueryOppositions:
			if step.Feature == "" {
				return fmt.Errorf("steps[%d]: feature is required for oppositions", i)
			}
		case QueryManners, QueryVoices, QueryVoiceOppIn:
			if len(step.Values) == 0 {
				return fmt.Errorf("steps[%d]: values are required for %s", i, step.Query)
			}
		}
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertTraceContains:
			if a.Query == "" || a.Sound == "" {
				return fmt.Errorf("assertions[%d]: query and sound are required for trace_contains", i)
			}
		case AssertTraceOrder:
			if len(a.Queries) == 0 {
				return fmt.Errorf("assertions[%d]: queries list is required for trace_order", i)
			}
		case AssertTraceCount:
			if a.Query == "" {
				return fmt.Errorf("assertions[%d]: query is required for trace_count", i)
			}
		}
	}

	return nil
}
