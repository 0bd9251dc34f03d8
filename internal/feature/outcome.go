package feature

// Policy decides what a caller does with descriptors that fail to parse.
type Policy int

const (
	// Propagate returns the first parse failure to the caller.
	Propagate Policy = iota

	// Exclude drops failed descriptors and keeps the rest.
	Exclude
)

func (p Policy) String() string {
	switch p {
	case Propagate:
		return "propagate"
	case Exclude:
		return "exclude"
	}
	return "unknown"
}

// Outcome is the result of parsing one descriptor.
type Outcome struct {
	Descriptor string
	Record     Record
	Err        error
}

func (o Outcome) OK() bool { return o.Err == nil }

// ParseAll parses every descriptor in order. It never fails; failures are
// carried on the individual outcomes.
func ParseAll(p Parser, descriptors []string) []Outcome {
	out := make([]Outcome, len(descriptors))
	for i, d := range descriptors {
		rec, err := p.Parse(d)
		out[i] = Outcome{Descriptor: d, Record: rec, Err: err}
	}
	return out
}

// Apply resolves outcomes under the given policy. With Propagate the first
// failure is returned; with Exclude failed outcomes are removed.
func Apply(outcomes []Outcome, policy Policy) ([]Outcome, error) {
	kept := make([]Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.OK() {
			kept = append(kept, o)
			continue
		}
		if policy == Propagate {
			return nil, o.Err
		}
	}
	return kept, nil
}

// Parsable reports whether every descriptor parses.
func Parsable(p Parser, descriptors []string) bool {
	_, err := Apply(ParseAll(p, descriptors), Propagate)
	return err == nil
}
