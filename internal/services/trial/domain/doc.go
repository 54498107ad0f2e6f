// Package domain defines the mock trial records and the invariants that hold
// for them independently of storage or transport.
//
// A Case moves draft -> ready -> in_progress -> finalized. Documents and
// arguments are attributed to exactly one Side. Verdicts are immutable and
// keyed by (case, round); round 0 is the initial verdict.
package domain
