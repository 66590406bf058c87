// Package prompt runs the interactive read-evaluate-print loop.
//
// A Session prints a prompt, reads one password per line, evaluates it and
// hands the result to a report.Writer until the exit keyword is typed, the
// input ends or the context is cancelled.
package prompt
