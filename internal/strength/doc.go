// Package strength implements the password evaluation engine.
//
// An evaluation combines two independent signals:
//   - Membership in a breached-password corpus (see package corpus)
//   - A complexity score derived from length and character composition
//
// The engine turns them into a model.Classification and adds a brute-force
// crack-time estimate. Every function in this package is pure: it performs
// no I/O, keeps no state between calls and is safe for concurrent use.
// Every input, including the empty string, has a defined result.
//
// # Character categories
//
// Categories are ASCII only. A symbol is any printable ASCII character that
// is neither a letter, a digit nor whitespace, so '_' counts as a symbol.
// Characters outside printable ASCII belong to no category; they still count
// toward length and uniqueness.
package strength
