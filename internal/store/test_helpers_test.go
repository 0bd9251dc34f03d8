package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/minopp/internal/opposition"
	"github.com/roach88/minopp/internal/survey"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSummary creates a run with one flagged language.
func createTestSummary(runID string) *survey.Summary {
	sum := &survey.Summary{
		RunID:      runID,
		Source:     "phoible",
		SampleSize: 3,
		Excluded:   1,
		Findings: []survey.Finding{{
			Glottocode:    "abcd1234",
			InventoryID:   5,
			Name:          "Alpha",
			ContributorID: "UPSID",
			Report: opposition.Report{
				Fricatives: []string{"s", "ʃ", "ʒ"},
				Affricates: []string{"t͡s", "d͡z", "t͡ʃ", "d͡ʒ"},
				Anomalous:  []string{"d͡z"},
				Remainder:  []string{"d͡ʒ"},
			},
		}},
	}
	sum.Findings[0].Digest = survey.Digest(sum.Findings[0])
	return sum
}
