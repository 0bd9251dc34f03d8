package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_Text(t *testing.T) {
	out, err := execute(t, "diff", "p", "z")
	require.NoError(t, err)
	assert.Equal(t, "manner: stop / fricative\nplace: bilabial / alveolar\nvoice: voiceless / voiced\n", out)
}

func TestDiff_NoDifference(t *testing.T) {
	out, err := execute(t, "diff", "t", "t")
	require.NoError(t, err)
	assert.Equal(t, "no difference\n", out)
}

func TestDiff_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "diff", "p", "b")
	require.NoError(t, err)

	var resp struct {
		Status string                       `json:"status"`
		Data   map[string]map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]map[string]string{
		"voice": {"p1": "voiceless", "p2": "voiced"},
	}, resp.Data)
}

func TestDiff_ParseError(t *testing.T) {
	out, err := execute(t, "diff", "p", "ⓧ")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E101]")
}

func TestOppositions_HoldAndFree(t *testing.T) {
	out, err := execute(t, "oppositions", "--feature", "voice", "p", "b", "d")
	require.NoError(t, err)
	assert.Equal(t, "p b: voiceless / voiced\n", out)

	out, err = execute(t, "oppositions", "--feature", "voice", "--all-vary", "p", "b", "d")
	require.NoError(t, err)
	assert.Equal(t, "p b: voiceless / voiced\np d: voiceless / voiced\n", out)
}

func TestOppositions_CongruentPlaces(t *testing.T) {
	// bilabial and labio-dental count as the same place.
	out, err := execute(t, "oppositions", "--feature", "voice", "ɸ", "v")
	require.NoError(t, err)
	assert.Equal(t, "ɸ v: voiceless / voiced\n", out)
}

func TestOppositions_None(t *testing.T) {
	out, err := execute(t, "oppositions", "--feature", "voice", "m", "n")
	require.NoError(t, err)
	assert.Equal(t, "no oppositions\n", out)
}

func TestOppositions_MissingFeature(t *testing.T) {
	_, err := execute(t, "oppositions", "p", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"manner", []string{"filter", "--manner", "stop", "p", "s", "b"}, "p b\n"},
		{"several manners", []string{"filter", "--manner", "stop", "--manner", "fricative", "p", "m", "s"}, "p s\n"},
		{"voice", []string{"filter", "--voice", "voiced", "p", "b", "m"}, "b m\n"},
		{"both", []string{"filter", "--manner", "stop", "--voice", "voiced", "p", "b", "m"}, "b\n"},
		{"unparsable dropped", []string{"filter", "--manner", "stop", "p", "ⓧ"}, "p\n"},
		{"nothing kept", []string{"filter", "--voice", "voiced", "p", "t"}, "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFilter_JSONEmpty(t *testing.T) {
	out, err := execute(t, "--format", "json", "filter", "--voice", "voiced", "p")
	require.NoError(t, err)
	assert.Contains(t, out, `"sounds":[]`)
}

func TestFilter_RequiresCriterion(t *testing.T) {
	out, err := execute(t, "filter", "p")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E001]")
}

func TestDetect(t *testing.T) {
	out, err := execute(t, "detect", "p", "b", "t", "d", "ts", "dz", "tʃ", "dʒ", "s", "ʃ", "ʒ")
	require.NoError(t, err)
	assert.Equal(t, "Fricatives: s, ʃ, ʒ\nAffricates: ts, dz, tʃ, dʒ\nResult: dz\nRemainder: dʒ\n", out)
}

func TestDetect_NotEligible(t *testing.T) {
	out, err := execute(t, "detect", "p", "b", "s")
	require.NoError(t, err)
	assert.Contains(t, out, "not eligible")

	out, err = execute(t, "--format", "json", "detect", "p", "b", "s")
	require.NoError(t, err)
	assert.Contains(t, out, `"eligible":false`)
}

func TestCustomGlyphTable(t *testing.T) {
	table := `
glyphs: {
	"P": {place: "bilabial", manner: "stop", voice: "voiceless"}
	"B": {place: "bilabial", manner: "stop", voice: "voiced"}
}
`
	path := filepath.Join(t.TempDir(), "glyphs.cue")
	require.NoError(t, os.WriteFile(path, []byte(table), 0644))

	out, err := execute(t, "--glyphs", path, "oppositions", "--feature", "voice", "P", "B")
	require.NoError(t, err)
	assert.Equal(t, "P B: voiceless / voiced\n", out)

	// p is not in the custom table.
	_, err = execute(t, "--glyphs", path, "diff", "p", "B")
	require.Error(t, err)
}
