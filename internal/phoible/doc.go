// Package phoible loads consonant inventories from a PHOIBLE export.
//
// Two CSV files are read: the segment table (one row per phoneme per
// inventory, with Glottocode, InventoryID, Phoneme and SegmentClass
// columns) and the contributions table (ID, Name, Contributor_ID).
//
// Only consonants are kept. When a language has several inventories the
// one with the greatest InventoryID is used. Inventories with any member
// the parser rejects are excluded whole, before any query runs.
package phoible
