// Package opposition finds minimal oppositions in consonant inventories.
//
// Two sounds form an opposition on a target feature when their values for
// that feature differ while every other feature is identical or congruent.
// Congruence is exact equality widened by a fixed table of near-equivalent
// places of articulation; list features are compared as multisets.
//
// The Engine works on descriptors, not records. Each query parses the
// descriptors it needs through the configured feature.Parser and never
// keeps records beyond the call.
//
// Parse failures propagate from FeatureDifference and Oppositions. The
// class filters (Manners, Voices) exclude unparsable members instead. This
// is an explicit policy per call site, see feature.Policy.
package opposition
