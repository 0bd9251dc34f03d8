package opposition

import (
	"fmt"

	"github.com/roach88/minopp/internal/feature"
)

// Difference holds the two values of one differing feature. P2 is absent
// when the second record lacks the feature.
type Difference struct {
	P1 feature.Value `json:"p1"`
	P2 feature.Value `json:"p2"`
}

// FeatureDifference parses both descriptors and returns the features whose
// values differ exactly. See DiffRecords for the key set.
func (e *Engine) FeatureDifference(d1, d2 string) (map[string]Difference, error) {
	r1, err := e.parser.Parse(d1)
	if err != nil {
		return nil, fmt.Errorf("feature difference: %w", err)
	}
	r2, err := e.parser.Parse(d2)
	if err != nil {
		return nil, fmt.Errorf("feature difference: %w", err)
	}
	return DiffRecords(r1, r2), nil
}

// DiffRecords compares every feature of r1 except the glyph against r2.
// Congruence is not applied.
//
// Only the keys of r1 are visited: a feature present in r2 alone is not
// reported.
func DiffRecords(r1, r2 feature.Record) map[string]Difference {
	diffs := make(map[string]Difference)
	for _, k := range r1.Keys() {
		if k == feature.Glyph {
			continue
		}
		v1 := r1.Lookup(k)
		v2, ok := r2.Get(k)
		if !ok || !v1.Equal(v2) {
			diffs[k] = Difference{P1: v1, P2: v2}
		}
	}
	return diffs
}
