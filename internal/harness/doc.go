// Package harness runs YAML scenarios against the opposition engine.
//
// A scenario fixes an inventory, runs a list of queries over it and checks
// each query's output. The ordered outputs form a trace that can be
// compared against a golden file.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario checks"
//	glyphs: path/to/glyphs.cue    # optional, relative to the scenario
//	inventory: [p, b, t, d, m, n]
//	steps:
//	  - query: oppositions
//	    feature: voice
//	    mode: hold
//	    expect:
//	      pairs: [[p, b], [t, d]]
//	  - query: difference
//	    pair: [p, b]
//	    expect:
//	      features: [voice]
//	  - query: manners
//	    values: [stop]
//	    expect:
//	      sounds: [p, b, t, d]
//	  - query: voice_opp_in
//	    values: [stop]
//	    expect:
//	      found: true
//	  - query: detect
//	    expect:
//	      gated: false
//	assertions:
//	  - type: trace_contains
//	    query: oppositions
//	    sound: p
//	  - type: trace_order
//	    queries: [oppositions, detect]
//	  - type: trace_count
//	    query: detect
//	    count: 1
//
// A step's sounds field replaces the inventory for that step. An expect
// field left out is not checked; an empty list is checked as empty.
//
// # Queries
//
//   - difference: feature names whose values differ for pair
//   - oppositions: pairs opposed on feature, mode hold (default) or free
//   - manners, voices: sounds whose manner or voice is among values
//   - voice_opp_in: voice oppositions among the manners in values
//   - detect: gated voiced-affricate report
//
// Any query may set expect.error to require that it fails, for example on
// an unparsable descriptor.
package harness
