package testutil

import (
	"sync"

	"github.com/roach88/minopp/internal/feature"
)

// StubParser is a map-backed feature.Parser for tests.
//
// Unknown descriptors fail with *feature.ParseError. Every call returns a
// freshly built record and is counted.
type StubParser struct {
	mu      sync.Mutex
	records map[string]map[string]feature.Value
	calls   map[string]int
}

// NewStubParser creates an empty stub.
func NewStubParser() *StubParser {
	return &StubParser{
		records: make(map[string]map[string]feature.Value),
		calls:   make(map[string]int),
	}
}

// Add registers descriptor with the given features. The glyph and the
// two list features are filled in when missing.
func (p *StubParser) Add(descriptor string, values map[string]feature.Value) *StubParser {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := make(map[string]feature.Value, len(values)+3)
	v[feature.Glyph] = feature.Scalar(descriptor)
	v[feature.AdditionalArticulations] = feature.List()
	v[feature.PreFeatures] = feature.List()
	for k, val := range values {
		v[k] = val
	}
	p.records[descriptor] = v
	return p
}

// AddConsonant registers a consonant with place, manner and voice. Empty
// arguments leave the feature absent.
func (p *StubParser) AddConsonant(descriptor, place, manner, voice string) *StubParser {
	v := map[string]feature.Value{}
	if place != "" {
		v[feature.Place] = feature.Scalar(place)
	}
	if manner != "" {
		v[feature.Manner] = feature.Scalar(manner)
	}
	if voice != "" {
		v[feature.Voice] = feature.Scalar(voice)
	}
	return p.Add(descriptor, v)
}

// Parse implements feature.Parser.
func (p *StubParser) Parse(descriptor string) (feature.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[descriptor]++
	v, ok := p.records[descriptor]
	if !ok {
		return feature.Record{}, &feature.ParseError{Descriptor: descriptor, Offset: -1, Reason: "not registered"}
	}
	return feature.NewRecord(v), nil
}

// Calls returns how many times descriptor was parsed.
func (p *StubParser) Calls(descriptor string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[descriptor]
}

// StopsAndFricatives returns a stub preloaded with a small consonant set:
// p b t d k g, ts dz tʃ dʒ, f v s z ʃ ʒ x, m n.
func StopsAndFricatives() *StubParser {
	return NewStubParser().
		AddConsonant("p", "bilabial", "stop", "voiceless").
		AddConsonant("b", "bilabial", "stop", "voiced").
		AddConsonant("t", "alveolar", "stop", "voiceless").
		AddConsonant("d", "alveolar", "stop", "voiced").
		AddConsonant("k", "velar", "stop", "voiceless").
		AddConsonant("g", "velar", "stop", "voiced").
		AddConsonant("ts", "alveolar", "affricate", "voiceless").
		AddConsonant("dz", "alveolar", "affricate", "voiced").
		AddConsonant("tʃ", "post-alveolar", "affricate", "voiceless").
		AddConsonant("dʒ", "post-alveolar", "affricate", "voiced").
		AddConsonant("f", "labio-dental", "fricative", "voiceless").
		AddConsonant("v", "labio-dental", "fricative", "voiced").
		AddConsonant("s", "alveolar", "fricative", "voiceless").
		AddConsonant("z", "alveolar", "fricative", "voiced").
		AddConsonant("ʃ", "post-alveolar", "fricative", "voiceless").
		AddConsonant("ʒ", "post-alveolar", "fricative", "voiced").
		AddConsonant("x", "velar", "fricative", "voiceless").
		AddConsonant("m", "bilabial", "nasal", "voiced").
		AddConsonant("n", "alveolar", "nasal", "voiced")
}
