package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/pwcheck/internal/model"
)

// MarkdownWriter outputs results in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...Option) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output, opts),
	}
}

// Write outputs a single result in Markdown format.
func (w *MarkdownWriter) Write(result *model.EvaluationResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Password Strength Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Password", w.passwordCell(result)},
			{"In Corpus", yesNo(result.InCorpus)},
			{"Classification", "**" + result.Classification.Label() + "**"},
			{"Score", strconv.Itoa(result.Score) + "/7"},
			{"Weaknesses", reasonsCell(result.Reasons)},
			{"Crack Time", result.CrackTime.Formatted},
		},
	})
	md.PlainText("")

	w.writeAlert(md, result.Classification, result.InCorpus)
	w.writeAdvice(md, result.Reasons)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs a summary table followed by one row per result.
func (w *MarkdownWriter) WriteBatch(results []*model.EvaluationResult) (int, error) {
	md := markdown.NewMarkdown(w.output)
	summary := Summarize(results)

	md.H1("Password Strength Report")
	md.PlainText("")

	w.writeSummary(md, summary)

	md.H2("Results")
	md.PlainText("")

	if summary.Total == 0 {
		md.PlainText("No passwords evaluated.")
		md.PlainText("")
	} else {
		rows := make([][]string, 0, summary.Total)
		for _, r := range results {
			if r == nil {
				continue
			}
			rows = append(rows, []string{
				strconv.Itoa(len(rows) + 1),
				w.passwordCell(r),
				yesNo(r.InCorpus),
				r.Classification.Label(),
				strconv.Itoa(r.Score),
				r.CrackTime.Formatted,
				reasonsCell(r.Reasons),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"#", "Password", "In Corpus", "Classification", "Score", "Crack Time", "Weaknesses"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeSummary writes counts per classification, a pie chart and an alert
// for the weakest result.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, s Summary) {
	md.H2("Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(model.Classifications)+2)
	for _, c := range model.Classifications {
		rows = append(rows, []string{c.Label(), strconv.Itoa(s.Count(c))})
	}
	rows = append(rows,
		[]string{"In Corpus", strconv.Itoa(s.InCorpus)},
		[]string{"**Total**", "**" + strconv.Itoa(s.Total) + "**"},
	)
	md.Table(markdown.TableSet{
		Header: []string{"Classification", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if s.Total > 0 {
		w.writePieChart(md, s)
	}

	if worst, ok := s.Worst(); ok {
		w.writeAlert(md, worst, s.InCorpus > 0)
	}
}

// writePieChart writes a mermaid pie chart of the classification distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Classification Distribution"),
		piechart.WithShowData(true),
	)

	for _, c := range model.Classifications {
		if n := s.Count(c); n > 0 {
			chart.LabelAndIntValue(c.Label(), uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes a GitHub alert matching the classification.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, c model.Classification, inCorpus bool) {
	switch {
	case inCorpus:
		md.Cautionf("Found in a breached password list. %s passwords must never be used.", c.Label())
	case c == model.VeryWeak:
		md.Cautionf("%s: this password can be guessed almost instantly.", c.Label())
	case c == model.Weak:
		md.Warningf("%s: add length and more character types.", c.Label())
	case c == model.Fair:
		md.Importantf("%s: acceptable, but a longer password would be much stronger.", c.Label())
	case c == model.Good:
		md.Note("Good: this password meets every complexity rule.")
	default:
		md.Tip("Excellent password.")
	}
	md.PlainText("")
}

// writeAdvice writes one bullet per remediation hint.
func (w *MarkdownWriter) writeAdvice(md *markdown.Markdown, reasons []model.Reason) {
	if len(reasons) == 0 {
		return
	}

	advice := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if a := r.Advice(); a != "" {
			advice = append(advice, a)
		}
	}
	if len(advice) == 0 {
		return
	}

	md.H2("Advice")
	md.PlainText("")
	md.BulletList(advice...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [pwcheck](https://github.com/nao1215/pwcheck)*")
}

// passwordCell returns the password as a table cell.
func (w *MarkdownWriter) passwordCell(r *model.EvaluationResult) string {
	p := w.displayPassword(r)
	if p == "" {
		return "*(empty)*"
	}
	return escapeCell(p)
}

func reasonsCell(reasons []model.Reason) string {
	if len(reasons) == 0 {
		return "none"
	}
	return escapeCell(model.JoinReasons(reasons, ", "))
}

// cellEscaper escapes characters that would break a table row, start
// inline formatting or links, or be read as an HTML entity.
var cellEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"~", `\~`,
	"[", `\[`,
	"]", `\]`,
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\n", " ",
	"\r", " ",
)

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}
