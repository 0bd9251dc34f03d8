package opposition

import (
	"encoding/json"

	"github.com/roach88/minopp/internal/feature"
)

// Pair is two descriptors in scan order: First precedes Second in the
// input.
type Pair struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// Values holds the target-feature values of a Pair, in the same order.
type Values struct {
	First  feature.Value `json:"first"`
	Second feature.Value `json:"second"`
}

// Opposition is one entry of a Result.
type Opposition struct {
	Pair   Pair   `json:"pair"`
	Values Values `json:"values"`
}

// Result maps pairs to their opposed values. Iteration follows the order
// in which pairs were first found. The zero Result is empty.
type Result struct {
	order  []Pair
	values map[Pair]Values
}

func (r *Result) add(p Pair, v Values) {
	if r.values == nil {
		r.values = make(map[Pair]Values)
	}
	if _, ok := r.values[p]; !ok {
		r.order = append(r.order, p)
	}
	r.values[p] = v
}

func (r Result) Len() int    { return len(r.order) }
func (r Result) Empty() bool { return len(r.order) == 0 }

// Get returns the values recorded for p.
func (r Result) Get(p Pair) (Values, bool) {
	v, ok := r.values[p]
	return v, ok
}

func (r Result) Has(p Pair) bool {
	_, ok := r.values[p]
	return ok
}

// Pairs returns the pairs in discovery order.
func (r Result) Pairs() []Pair {
	out := make([]Pair, len(r.order))
	copy(out, r.order)
	return out
}

// Oppositions returns the entries in discovery order.
func (r Result) Oppositions() []Opposition {
	out := make([]Opposition, len(r.order))
	for i, p := range r.order {
		out[i] = Opposition{Pair: p, Values: r.values[p]}
	}
	return out
}

// MarshalJSON encodes the result as an ordered array of oppositions.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Oppositions())
}
