// Package store provides SQLite-backed storage for survey runs.
//
// A run records the dataset label, sample size and exclusion count of one
// survey; each flagged language becomes a finding row holding the report
// lists as JSON arrays and the finding's digest.
//
// # Ordering
//
//   - Runs are ordered by seq (INTEGER PRIMARY KEY), never by wall time.
//   - Findings are ordered by position, the language's index in the run's
//     sample order.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
