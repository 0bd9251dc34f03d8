package phoible

import "github.com/roach88/minopp/internal/feature"

// Inventory is the consonant set of one language.
type Inventory struct {
	Glottocode  string   `json:"glottocode"`
	InventoryID int      `json:"inventory_id"`
	Phonemes    []string `json:"phonemes"`
}

// Consonants keeps consonant rows.
func Consonants(segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if s.SegmentClass == ClassConsonant {
			out = append(out, s)
		}
	}
	return out
}

// Sample picks one inventory per glottocode, the one with the greatest
// InventoryID. Inventories are ordered by the first row of the chosen
// inventory, so rows of older inventories of a language do not affect the
// order. Phonemes keep row order. Rows without a glottocode are ignored.
func Sample(segs []Segment) []Inventory {
	best := make(map[string]int)
	for _, s := range segs {
		if s.Glottocode == "" {
			continue
		}
		if id, seen := best[s.Glottocode]; !seen || s.InventoryID > id {
			best[s.Glottocode] = s.InventoryID
		}
	}

	var order []string
	phonemes := make(map[string][]string, len(best))
	for _, s := range segs {
		id, ok := best[s.Glottocode]
		if !ok || id != s.InventoryID {
			continue
		}
		if _, started := phonemes[s.Glottocode]; !started {
			order = append(order, s.Glottocode)
		}
		phonemes[s.Glottocode] = append(phonemes[s.Glottocode], s.Phoneme)
	}

	out := make([]Inventory, 0, len(order))
	for _, code := range order {
		out = append(out, Inventory{
			Glottocode:  code,
			InventoryID: best[code],
			Phonemes:    phonemes[code],
		})
	}
	return out
}

// Parsable splits inventories into those whose every phoneme parses and
// those with at least one failure.
func Parsable(p feature.Parser, invs []Inventory) (kept, excluded []Inventory) {
	for _, inv := range invs {
		if feature.Parsable(p, inv.Phonemes) {
			kept = append(kept, inv)
		} else {
			excluded = append(excluded, inv)
		}
	}
	return kept, excluded
}
