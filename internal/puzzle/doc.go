// Package puzzle holds the state of one figurate partition puzzle: an ordered
// collection of figures, each a (kind, size) pair with a derived value, plus a
// target sum, an operation counter and an optional active selection.
//
// Invalid operations never fail. They leave the collection untouched and
// report why through an Outcome, so callers driven by user input can ignore
// stale identifiers without special handling. A Collection is owned by a
// single caller and is not safe for concurrent use.
package puzzle
