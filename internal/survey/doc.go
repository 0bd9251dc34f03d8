// Package survey runs the voiced-affricate gap detector across a PHOIBLE
// sample.
//
// For each language the pipeline is:
//  1. require a voice opposition among stops,
//  2. require a voice opposition among affricates,
//  3. run opposition.Engine.AffricateGaps and keep languages with at least
//     one flagged affricate.
//
// Languages are analyzed independently and in parallel, bounded by
// Options.Workers. Findings are returned in sample order regardless of
// completion order.
//
// Each Finding carries a Digest of its content so the same result can be
// recognized across runs. A Surveyor given Metrics counts languages by
// outcome.
package survey
