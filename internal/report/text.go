package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/nao1215/pwcheck/internal/model"
)

// TextWriter outputs human-readable results as a boxed key/value table.
// Colors are off unless WithColor(true) is given, so piped output stays plain.
type TextWriter struct {
	baseWriter

	palette map[model.Classification]*color.Color
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...Option) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output, opts),
		palette: map[model.Classification]*color.Color{
			model.VeryWeak:  color.New(color.FgRed, color.Bold),
			model.Weak:      color.New(color.FgRed),
			model.Fair:      color.New(color.FgYellow),
			model.Good:      color.New(color.FgGreen),
			model.Excellent: color.New(color.FgGreen, color.Bold),
		},
	}

	for _, c := range w.palette {
		if w.color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return w
}

// Write outputs a single result.
func (w *TextWriter) Write(result *model.EvaluationResult) (int, error) {
	var sb strings.Builder
	w.writeResult(&sb, result)
	return io.WriteString(w.output, sb.String())
}

// WriteBatch outputs every result followed by a summary line.
func (w *TextWriter) WriteBatch(results []*model.EvaluationResult) (int, error) {
	var sb strings.Builder
	for _, r := range results {
		if r == nil {
			continue
		}
		w.writeResult(&sb, r)
		sb.WriteString("\n")
	}
	w.writeSummary(&sb, Summarize(results))
	return io.WriteString(w.output, sb.String())
}

type textRow struct {
	key   string
	value string
	paint *color.Color
}

// writeResult renders the table and the advice for each weakness.
func (w *TextWriter) writeResult(sb *strings.Builder, r *model.EvaluationResult) {
	password := w.displayPassword(r)
	if password == "" {
		password = "(empty)"
	}

	reasons := "none"
	if len(r.Reasons) > 0 {
		reasons = model.JoinReasons(r.Reasons, ", ")
	}

	rows := []textRow{
		{key: "Password", value: password},
		{key: "In corpus", value: yesNo(r.InCorpus)},
		{key: "Classification", value: r.Classification.Label(), paint: w.palette[r.Classification]},
		{key: "Score", value: strconv.Itoa(r.Score) + "/7"},
		{key: "Weaknesses", value: reasons},
		{key: "Crack time", value: r.CrackTime.Formatted},
	}

	keyWidth, valueWidth := 0, 0
	for _, row := range rows {
		keyWidth = max(keyWidth, runewidth.StringWidth(row.key))
		valueWidth = max(valueWidth, runewidth.StringWidth(row.value))
	}

	border := "+" + strings.Repeat("-", keyWidth+2) + "+" + strings.Repeat("-", valueWidth+2) + "+\n"
	sb.WriteString(border)
	for _, row := range rows {
		value := runewidth.FillRight(row.value, valueWidth)
		if row.paint != nil {
			// Paint only the text so escape codes do not skew the padding.
			value = row.paint.Sprint(row.value) + strings.Repeat(" ", valueWidth-runewidth.StringWidth(row.value))
		}
		fmt.Fprintf(sb, "| %s | %s |\n", runewidth.FillRight(row.key, keyWidth), value)
	}
	sb.WriteString(border)

	if r.InCorpus {
		sb.WriteString("This password appears in a list of breached passwords. Never use it.\n")
	}
	for _, reason := range r.Reasons {
		if advice := reason.Advice(); advice != "" {
			fmt.Fprintf(sb, "  - %s\n", advice)
		}
	}
}

// writeSummary writes the per-classification counts of a batch.
func (w *TextWriter) writeSummary(sb *strings.Builder, s Summary) {
	fmt.Fprintf(sb, "Evaluated %d password(s), %d found in corpus\n", s.Total, s.InCorpus)
	for _, c := range model.Classifications {
		label := runewidth.FillRight(c.Label()+":", 11)
		fmt.Fprintf(sb, "  %s%d\n", w.palette[c].Sprint(label), s.Count(c))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
