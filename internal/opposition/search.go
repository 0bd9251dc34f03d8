package opposition

import (
	"fmt"

	"github.com/roach88/minopp/internal/feature"
)

// Mode selects how features other than the target are treated.
type Mode int

const (
	// HoldOthers requires every other feature to be equal or congruent.
	HoldOthers Mode = iota

	// FreeOthers lets other features vary.
	FreeOthers
)

func (m Mode) String() string {
	if m == FreeOthers {
		return "free"
	}
	return "hold"
}

// Oppositions scans all pairs of positions i < j in sounds and records
// those opposed on target. Descriptors are compared by position, so a
// descriptor listed twice pairs with itself and is skipped for having equal
// values.
//
// A parse failure on any descriptor reached by the scan is returned.
func (e *Engine) Oppositions(sounds []string, target string, mode Mode) (Result, error) {
	var res Result
	recs := newLazyRecords(e.parser, sounds)
	for i := 0; i < len(sounds); i++ {
		for j := i + 1; j < len(sounds); j++ {
			r1, err := recs.at(i)
			if err != nil {
				return Result{}, fmt.Errorf("oppositions on %s: %w", target, err)
			}
			r2, err := recs.at(j)
			if err != nil {
				return Result{}, fmt.Errorf("oppositions on %s: %w", target, err)
			}
			if v, ok := Opposed(r1, r2, target, mode); ok {
				res.add(Pair{First: sounds[i], Second: sounds[j]}, v)
			}
		}
	}
	return res, nil
}

// Opposed reports whether r1 and r2 oppose on target and returns their
// target values.
func Opposed(r1, r2 feature.Record, target string, mode Mode) (Values, bool) {
	v1, ok1 := r1.Get(target)
	v2, ok2 := r2.Get(target)
	if !ok1 || !ok2 || v1.Equal(v2) {
		return Values{}, false
	}
	if mode == HoldOthers && !othersHeld(r1, r2, target) {
		return Values{}, false
	}
	return Values{First: v1, Second: v2}, true
}

// othersHeld checks every feature of r1 other than target and the glyph.
func othersHeld(r1, r2 feature.Record, target string) bool {
	for _, k := range r1.Keys() {
		if k == target || k == feature.Glyph {
			continue
		}
		a := r1.Lookup(k)
		b, ok := r2.Get(k)
		if !ok {
			return false
		}
		if feature.IsListFeature(k) {
			if !a.SameItems(b) {
				return false
			}
			continue
		}
		if a.Kind() != feature.KindScalar || b.Kind() != feature.KindScalar {
			return false
		}
		if !Congruent(a.Str(), b.Str()) {
			return false
		}
	}
	return true
}
