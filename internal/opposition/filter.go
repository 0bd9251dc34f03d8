package opposition

import (
	"slices"

	"github.com/roach88/minopp/internal/feature"
)

// Manners returns the members of inventory whose manner is one of manners,
// in input order. Unparsable members are excluded.
func (e *Engine) Manners(inventory []string, manners ...string) []string {
	return e.ByFeature(inventory, feature.Manner, manners...)
}

// Voices returns the members of inventory whose voice is one of voices, in
// input order. Unparsable members are excluded.
func (e *Engine) Voices(inventory []string, voices ...string) []string {
	return e.ByFeature(inventory, feature.Voice, voices...)
}

// ByFeature keeps descriptors whose scalar value for name is in values.
// Members lacking the feature or failing to parse do not match.
func (e *Engine) ByFeature(inventory []string, name string, values ...string) []string {
	// Exclude cannot return an error.
	parsed, _ := feature.Apply(feature.ParseAll(e.parser, inventory), feature.Exclude)
	out := make([]string, 0, len(parsed))
	for _, o := range parsed {
		v, ok := o.Record.Get(name)
		if !ok || v.Kind() != feature.KindScalar {
			continue
		}
		if slices.Contains(values, v.Str()) {
			out = append(out, o.Descriptor)
		}
	}
	return out
}
