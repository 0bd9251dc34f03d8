package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario fixtures are shared with the harness package.
var (
	harnessScenarios = filepath.Join("..", "harness", "testdata", "scenarios")
	harnessGolden    = filepath.Join("..", "harness", "testdata", "golden")
)

// copyScenario copies one scenario file into dir and returns its path.
func copyScenario(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(harnessScenarios, name))
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// stageScenarios lays out every harness scenario in a temp dir the way the
// test command expects: scenarios at the top level, goldens under golden/.
func stageScenarios(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	goldenDir := filepath.Join(dir, "golden")
	require.NoError(t, os.MkdirAll(goldenDir, 0755))

	entries, err := os.ReadDir(harnessScenarios)
	require.NoError(t, err)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		copyScenario(t, dir, e.Name())
		golden := strings.TrimSuffix(e.Name(), ".yaml") + ".golden"
		data, err := os.ReadFile(filepath.Join(harnessGolden, golden))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(goldenDir, golden), data, 0644))
	}
	return dir
}

func TestTestCommand_AllPass(t *testing.T) {
	out, err := execute(t, "test", stageScenarios(t))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ stop_voicing\n")
	assert.Contains(t, out, "✓ affricate_gap\n")
	assert.Contains(t, out, "✓ unparsable_descriptor\n")
	assert.Contains(t, out, "Test Summary: 3 passed, 0 failed, 3 total")
}

func TestTestCommand_Filter(t *testing.T) {
	out, err := execute(t, "--format", "json", "test", stageScenarios(t), "--filter", "stop_*")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Total)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "stop_voicing", resp.Data.Scenarios[0].Name)
}

func TestTestCommand_NoMatches(t *testing.T) {
	out, err := execute(t, "test", stageScenarios(t), "--filter", "nothing_*")
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)
}

func TestTestCommand_UpdateWritesGolden(t *testing.T) {
	dir := t.TempDir()
	copyScenario(t, dir, "stop_voicing.yaml")

	out, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ stop_voicing (golden updated)")

	got, err := os.ReadFile(filepath.Join(dir, "golden", "stop_voicing.golden"))
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join(harnessGolden, "stop_voicing.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestTestCommand_GoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	copyScenario(t, dir, "stop_voicing.yaml")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "golden"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "stop_voicing.golden"), []byte("scenario: stale\n"), 0644))

	out, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ stop_voicing")
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommand_BrokenScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: broken\nsteps: []\n"), 0644))

	out, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommand_MissingDir(t *testing.T) {
	out, err := execute(t, "test", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
}
