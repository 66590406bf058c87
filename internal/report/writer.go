package report

import (
	"fmt"
	"io"

	"github.com/nao1215/pwcheck/internal/model"
)

// Output format names accepted by New.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Writer defines the interface for result output.
type Writer interface {
	// Write outputs a single evaluation.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.EvaluationResult) (int, error)

	// WriteBatch outputs several evaluations as one document, in order.
	WriteBatch(results []*model.EvaluationResult) (int, error)
}

// MultiWriter renders every result with each of its Writers in turn, e.g.
// a colored TextWriter on the terminal and a plain one for --output.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter returns a MultiWriter over writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders result with every Writer and returns the bytes written in
// total. It stops at the first failing Writer.
func (m *MultiWriter) Write(result *model.EvaluationResult) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.Write(result) })
}

// WriteBatch renders results with every Writer, stopping at the first failure.
func (m *MultiWriter) WriteBatch(results []*model.EvaluationResult) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteBatch(results) })
}

func (m *MultiWriter) each(write func(Writer) (int, error)) (int, error) {
	total := 0
	for _, w := range m.writers {
		n, err := write(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Option configures a writer. Options that do not apply to a format are ignored.
type Option func(*settings)

type settings struct {
	mask   bool
	color  bool
	pretty bool
}

// WithMaskedPassword replaces every password character with '*'.
func WithMaskedPassword(mask bool) Option {
	return func(s *settings) {
		s.mask = mask
	}
}

// WithColor enables ANSI colors in the text format.
func WithColor(enabled bool) Option {
	return func(s *settings) {
		s.color = enabled
	}
}

// WithPrettyPrint enables indented JSON.
func WithPrettyPrint() Option {
	return func(s *settings) {
		s.pretty = true
	}
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// New returns the writer for format.
func New(format string, output io.Writer, opts ...Option) (Writer, error) {
	switch format {
	case FormatText:
		return NewTextWriter(output, opts...), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output, opts...), nil
	case FormatJSON:
		return NewJSONWriter(output, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// baseWriter provides common functionality for result writers.
type baseWriter struct {
	output io.Writer
	settings
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer, opts []Option) baseWriter {
	return baseWriter{output: output, settings: newSettings(opts)}
}

// displayPassword returns the password as it should be shown.
func (b baseWriter) displayPassword(r *model.EvaluationResult) string {
	if b.mask {
		return r.MaskedPassword()
	}
	return r.Password
}

// Summary counts results per classification.
type Summary struct {
	// Total is the number of results.
	Total int `json:"total"`

	// InCorpus is the number of results found in the corpus.
	InCorpus int `json:"in_corpus"`

	// Counts maps each classification to its number of results.
	Counts map[model.Classification]int `json:"counts"`
}

// Summarize counts results per classification. Nil results are skipped.
func Summarize(results []*model.EvaluationResult) Summary {
	s := Summary{Counts: make(map[model.Classification]int, len(model.Classifications))}
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Total++
		if r.InCorpus {
			s.InCorpus++
		}
		s.Counts[r.Classification]++
	}
	return s
}

// Count returns the number of results with classification c.
func (s Summary) Count(c model.Classification) int {
	return s.Counts[c]
}

// Worst returns the lowest classification present, or false when empty.
func (s Summary) Worst() (model.Classification, bool) {
	for _, c := range model.Classifications {
		if s.Count(c) > 0 {
			return c, true
		}
	}
	return 0, false
}
