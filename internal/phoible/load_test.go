package phoible

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const segmentsCSV = `InventoryID,Glottocode,LanguageName,Phoneme,SegmentClass,Source
1,abcd1234,Alpha,p,consonant,spa
5,abcd1234,Alpha,p,consonant,upsid
5,abcd1234,Alpha,b,consonant,upsid
5,abcd1234,Alpha,a,vowel,upsid
2,efgh5678,Beta,t,consonant,ph
2,efgh5678,Beta,"d",consonant,ph
`

func TestLoadSegments(t *testing.T) {
	segs, err := LoadSegments(strings.NewReader(segmentsCSV))
	require.NoError(t, err)
	require.Len(t, segs, 6)
	assert.Equal(t, Segment{InventoryID: 1, Glottocode: "abcd1234", Phoneme: "p", SegmentClass: "consonant"}, segs[0])
	assert.Equal(t, "vowel", segs[3].SegmentClass)
	assert.Equal(t, "d", segs[5].Phoneme)
}

func TestLoadSegments_MissingColumn(t *testing.T) {
	_, err := LoadSegments(strings.NewReader("InventoryID,Glottocode,Phoneme\n1,x,p\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "SegmentClass")
}

func TestLoadSegments_BadID(t *testing.T) {
	_, err := LoadSegments(strings.NewReader("InventoryID,Glottocode,Phoneme,SegmentClass\nx,a,p,consonant\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoadSegments_ShortRow(t *testing.T) {
	_, err := LoadSegments(strings.NewReader("InventoryID,Glottocode,Phoneme,SegmentClass\n1,a\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "need 4")
}

func TestLoadSegments_Empty(t *testing.T) {
	_, err := LoadSegments(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read header")
}

func TestLoadContributions(t *testing.T) {
	src := "ID,Name,Description,Contributor_ID\n1,Alpha,,SPA\n5,Alpha (UPSID),desc,UPSID\n"
	got, err := LoadContributions(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, Contribution{ID: 5, Name: "Alpha (UPSID)", ContributorID: "UPSID"}, got[5])
	assert.Len(t, got, 2)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	segPath := filepath.Join(dir, "phoible.csv")
	conPath := filepath.Join(dir, "contributions.csv")
	require.NoError(t, os.WriteFile(segPath, []byte(segmentsCSV), 0644))
	require.NoError(t, os.WriteFile(conPath, []byte("ID,Name,Contributor_ID\n5,Alpha,UPSID\n"), 0644))

	segs, err := LoadSegmentsFile(segPath)
	require.NoError(t, err)
	assert.Len(t, segs, 6)

	cons, err := LoadContributionsFile(conPath)
	require.NoError(t, err)
	assert.Equal(t, "UPSID", cons[5].ContributorID)

	_, err = LoadSegmentsFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
	_, err = LoadContributionsFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
