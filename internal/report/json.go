package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/pwcheck/internal/model"
)

// JSONWriter outputs results in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
// Output is compact unless WithPrettyPrint is given.
func NewJSONWriter(output io.Writer, opts ...Option) *JSONWriter {
	return &JSONWriter{
		baseWriter: newBaseWriter(output, opts),
	}
}

// JSONBatch is the document written by WriteBatch.
type JSONBatch struct {
	// Summary counts the results per classification.
	Summary Summary `json:"summary"`

	// Results holds every evaluation in input order.
	Results []*model.EvaluationResult `json:"results"`
}

// Write outputs a single result as one JSON object.
func (w *JSONWriter) Write(result *model.EvaluationResult) (int, error) {
	return w.writeJSON(w.prepare(result))
}

// WriteBatch outputs all results with a summary as one JSON object.
func (w *JSONWriter) WriteBatch(results []*model.EvaluationResult) (int, error) {
	batch := JSONBatch{
		Summary: Summarize(results),
		Results: make([]*model.EvaluationResult, 0, len(results)),
	}
	for _, r := range results {
		if r != nil {
			batch.Results = append(batch.Results, w.prepare(r))
		}
	}
	return w.writeJSON(batch)
}

// prepare returns a copy of the result with the password masked when
// masking is enabled. The caller's result is never modified.
func (w *JSONWriter) prepare(result *model.EvaluationResult) *model.EvaluationResult {
	if !w.mask {
		return result
	}
	masked := *result
	masked.Password = result.MaskedPassword()
	return &masked
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
