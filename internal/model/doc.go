// Package model defines the data structures shared by the evaluation engine,
// the report writers and the command line front end.
//
// This package contains the following main types:
//   - Classification: The ordinal strength label of a password
//   - Reason: A weakness tag produced by the complexity scorer
//   - ScoreResult: The complexity score and its reasons
//   - CrackTimeEstimate: The estimated exhaustive-search duration
//   - EvaluationResult: The complete output of one evaluation
//
// The types carry no behavior beyond formatting helpers so that the strength,
// report and batch packages can share them without import cycles.
// All of them serialize to JSON for the JSON report writer.
package model
