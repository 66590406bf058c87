// Package report renders evaluation results.
//
// This package contains writers for different output formats:
//   - TextWriter: boxed key/value output with colored classifications
//   - MarkdownWriter: tables and GitHub alerts for sharing results
//   - JSONWriter: structured output for tool integration
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
