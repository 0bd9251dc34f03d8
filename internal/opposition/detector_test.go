package opposition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/minopp/internal/feature"
	"github.com/roach88/minopp/internal/testutil"
)

var gapInventory = []string{"p", "b", "t", "d", "ts", "dz", "tʃ", "dʒ", "s", "ʃ", "ʒ", "m", "n"}

func TestHasMannerPartner(t *testing.T) {
	e := New(testutil.StopsAndFricatives())
	fricatives := []string{"s", "ʃ", "ʒ"}

	ok, err := e.HasMannerPartner("ts", fricatives)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.HasMannerPartner("dʒ", fricatives)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.HasMannerPartner("dz", fricatives)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = e.HasMannerPartner("dz", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVoicelessCounterparts(t *testing.T) {
	e := New(testutil.StopsAndFricatives())

	got, err := e.VoicelessCounterparts("dz", []string{"ts", "tʃ"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ts"}, got)

	got, err = e.VoicelessCounterparts("dʒ", []string{"ts"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAffricateGaps(t *testing.T) {
	e := New(testutil.StopsAndFricatives())

	rep, err := e.AffricateGaps(gapInventory)
	require.NoError(t, err)
	assert.Equal(t, []string{"s", "ʃ", "ʒ"}, rep.Fricatives)
	assert.Equal(t, []string{"ts", "dz", "tʃ", "dʒ"}, rep.Affricates)
	assert.Equal(t, []string{"dz"}, rep.Anomalous)
	assert.Equal(t, []string{"dʒ"}, rep.Remainder)
	assert.True(t, rep.Flagged())
}

func TestAffricateGaps_FlagsOncePerVoicedAffricate(t *testing.T) {
	// Dental and alveolar places are congruent, so dz has two voiceless
	// counterparts, each with a fricative partner.
	p := testutil.StopsAndFricatives().
		AddConsonant("t̪s", "dental", "affricate", "voiceless").
		AddConsonant("s̪", "dental", "fricative", "voiceless")
	e := New(p)

	counterparts, err := e.VoicelessCounterparts("dz", []string{"ts", "t̪s"})
	require.NoError(t, err)
	require.Equal(t, []string{"ts", "t̪s"}, counterparts)

	rep, err := e.AffricateGaps([]string{"ts", "t̪s", "dz", "s", "s̪"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dz"}, rep.Anomalous)
	assert.Empty(t, rep.Remainder)
}

func TestAffricateGaps_CounterpartWithoutFricative(t *testing.T) {
	e := New(testutil.StopsAndFricatives())

	// ts has no paired s, so dz is not flagged.
	rep, err := e.AffricateGaps([]string{"ts", "dz", "ʃ"})
	require.NoError(t, err)
	assert.Empty(t, rep.Anomalous)
	assert.Equal(t, []string{"dz"}, rep.Remainder)
	assert.False(t, rep.Flagged())
}

func TestDetect_Gates(t *testing.T) {
	e := New(testutil.StopsAndFricatives())

	rep, ok, err := e.Detect(gapInventory)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"dz"}, rep.Anomalous)

	// No voiced stops.
	_, ok, err = e.Detect([]string{"p", "t", "ts", "dz", "s"})
	require.NoError(t, err)
	assert.False(t, ok)

	// No affricate voice pair.
	_, ok, err = e.Detect([]string{"p", "b", "ts", "dʒ", "s"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDetect_WithIPAParser(t *testing.T) {
	ipa, err := feature.NewIPAParser()
	require.NoError(t, err)
	e := New(ipa)

	rep, ok, err := e.Detect([]string{"p", "b", "t", "d", "t͡s", "d͡z", "t͡ʃ", "d͡ʒ", "s", "ʃ", "ʒ", "m"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"d͡z"}, rep.Anomalous)
	assert.Equal(t, []string{"d͡ʒ"}, rep.Remainder)
}
