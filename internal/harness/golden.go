package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RenderTrace renders a trace as text for golden comparison:
//
//	scenario: <name>
//	[<seq>] <query> <input>
//	    <output line>
//	    error: <message>
func RenderTrace(name string, trace []TraceEvent) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)
	for _, ev := range trace {
		header := fmt.Sprintf("[%d] %s", ev.Seq, ev.Query)
		if ev.Input != "" {
			header += " " + ev.Input
		}
		b.WriteString(header + "\n")
		for _, line := range ev.Output {
			fmt.Fprintf(&b, "    %s\n", line)
		}
		if ev.Error != "" {
			fmt.Fprintf(&b, "    error: %s\n", ev.Error)
		}
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, RenderTrace(scenarioName, result.Trace))
}
