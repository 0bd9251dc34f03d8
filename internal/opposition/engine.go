package opposition

import "github.com/roach88/minopp/internal/feature"

// Feature values used by the filters and the detector.
const (
	MannerStop      = "stop"
	MannerAffricate = "affricate"
	MannerFricative = "fricative"

	Voiced    = "voiced"
	Voiceless = "voiceless"
)

// Engine runs opposition queries over descriptors.
type Engine struct {
	parser feature.Parser
}

// New creates an engine that parses descriptors with p.
func New(p feature.Parser) *Engine {
	return &Engine{parser: p}
}

// lazyRecords parses descriptors on first use within a single query.
type lazyRecords struct {
	parser  feature.Parser
	sounds  []string
	records []*feature.Record
}

func newLazyRecords(p feature.Parser, sounds []string) *lazyRecords {
	return &lazyRecords{parser: p, sounds: sounds, records: make([]*feature.Record, len(sounds))}
}

func (l *lazyRecords) at(i int) (feature.Record, error) {
	if r := l.records[i]; r != nil {
		return *r, nil
	}
	r, err := l.parser.Parse(l.sounds[i])
	if err != nil {
		return feature.Record{}, err
	}
	l.records[i] = &r
	return r, nil
}
