// Package batch evaluates many passwords concurrently.
//
// The Evaluator fans passwords out over an errgroup with a concurrency
// limit and returns the results in input order.
package batch
