// Package corpus provides the breached-password corpus used for membership
// checks, and the loader that builds it from a line-oriented word list such
// as rockyou.txt.
//
// An Index is immutable once constructed. Every method is safe for concurrent
// use, so one Index can back any number of parallel evaluations.
//
// The loader never treats a missing or empty word list as an I/O error.
// It returns a LoadResult whose Status tells the caller what happened, and
// the caller decides whether to continue. Use LoadResult.Err to turn the
// degenerate states into sentinel errors.
package corpus
