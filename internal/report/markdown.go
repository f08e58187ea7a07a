package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/pagescout/internal/model"
)

// MarkdownWriter outputs reports in GitHub-flavored Markdown for sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeKeywordSummary(md, report)
	w.writeKeywordHits(md, report)
	w.writePDFs(md, report)
	w.writeSubpages(md, report)
	w.writeSkipped(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ScanReport) {
	md.H1("pagescout Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Start URL", "`" + report.StartURL + "`"},
			{"Scan Date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Pages Scanned", strconv.Itoa(report.PagesScanned())},
			{"Pages Skipped", strconv.Itoa(report.PagesSkipped())},
			{"PDF Links", strconv.Itoa(report.PDFCount())},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.ScanReport) string {
	if report.Cancelled {
		return "⚠️ Interrupted (partial results)"
	}
	if report.ErrorMessage != "" {
		return "❌ Error - " + escapeCell(report.ErrorMessage)
	}
	return "✅ Complete"
}

// writeKeywordSummary writes one row per keyword with its page count.
func (w *MarkdownWriter) writeKeywordSummary(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Keyword Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Keywords))
	for _, kw := range report.Keywords {
		n := len(report.Hits.URLs(kw))
		mark := "❌"
		if n > 0 {
			mark = "✅"
		}
		rows = append(rows, []string{escapeCell(kw), strconv.Itoa(n), mark})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Keyword", "Pages", "Found"},
		Rows:   rows,
	})
	md.PlainText("")

	found := report.Hits.Found()
	if len(found) > 0 {
		w.writePieChart(md, found)
	}
	w.writeAlert(md, report, len(found))
}

// writePieChart writes a mermaid pie chart of pages per keyword.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, found []model.KeywordHit) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Pages per Keyword"),
		piechart.WithShowData(true),
	)
	for _, hit := range found {
		chart.LabelAndIntValue(hit.Keyword, uint64(len(hit.URLs)))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert describing the outcome of the scan.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.ScanReport, found int) {
	switch {
	case report.Cancelled:
		md.Warningf("The scan was interrupted after %d page(s). Results are partial.", len(report.Pages))
	case report.ErrorMessage != "":
		md.Cautionf("The scan stopped early: %s", report.ErrorMessage)
	case found > 0:
		md.Importantf("%d of %d keyword(s) found on the scanned pages.", found, len(report.Keywords))
	case report.PDFCount() > 0:
		md.Note("No keywords matched, but PDF links were found.")
	default:
		md.Tip("No keywords matched on any page.")
	}
	md.PlainText("")
}

// writeKeywordHits lists the pages each keyword was found on.
func (w *MarkdownWriter) writeKeywordHits(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Keyword Hits")
	md.PlainText("")

	found := report.Hits.Found()
	if len(found) == 0 {
		md.PlainText("No keywords matched on any page.")
		md.PlainText("")
		return
	}

	for _, hit := range found {
		md.PlainText("### 🔹 " + hit.Keyword)
		md.PlainText("")
		md.BulletList(hit.URLs...)
		md.PlainText("")
	}
}

// writePDFs writes a table of every PDF link with the page it was found on.
func (w *MarkdownWriter) writePDFs(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("PDF Documents")
	md.PlainText("")

	rows := make([][]string, 0, report.PDFCount())
	for _, page := range report.Pages {
		for _, pdf := range page.PDFs {
			rows = append(rows, []string{
				escapeCell(truncateString(pdf.Filename, 50)),
				escapeCell(pdf.URL),
				escapeCell(page.URL),
			})
		}
	}

	if len(rows) == 0 {
		md.PlainText("No PDF links found.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"File", "URL", "Found On"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSkipped writes the pages that could not be fetched.
func (w *MarkdownWriter) writeSkipped(md *markdown.Markdown, report *model.ScanReport) {
	if report.PagesSkipped() == 0 {
		return
	}

	md.H2("Skipped Pages")
	md.PlainText("")

	rows := make([][]string, 0, report.PagesSkipped())
	for _, page := range report.Pages {
		if page.Skipped() {
			rows = append(rows, []string{escapeCell(page.URL), escapeCell(truncateString(page.Error, 80))})
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSubpages writes the sub-pages selected for scanning.
func (w *MarkdownWriter) writeSubpages(md *markdown.Markdown, report *model.ScanReport) {
	if len(report.Subpages) == 0 {
		return
	}

	md.H2("Selected Sub-pages")
	md.PlainText("")
	md.Details("Selected sub-pages ("+strconv.Itoa(len(report.Subpages))+")", strings.Join(report.Subpages, "<br>"))
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [pagescout](https://github.com/nao1215/pagescout)*")
}

// escapeCell escapes characters that would break a table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// truncateString truncates s to maxLen runes with an ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
