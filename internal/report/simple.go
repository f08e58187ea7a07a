package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/pagescout/internal/model"
)

// summaryRule separates the summary block from the progress output.
var summaryRule = strings.Repeat("-", 50)

// SimpleWriter outputs the console summary: every keyword that was found,
// followed by the pages it was found on.
type SimpleWriter struct {
	baseWriter

	// verbose adds page and PDF counts after the keyword list.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the statistics block.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n🧾 Summary: Keywords Found\n")
	sb.WriteString(summaryRule)
	sb.WriteString("\n")

	found := report.Hits.Found()
	if len(found) == 0 {
		sb.WriteString("❌ No keywords matched on any page.\n")
	}
	for _, hit := range found {
		sb.WriteString(fmt.Sprintf("🔹 '%s' found at:\n", hit.Keyword))
		for _, u := range hit.URLs {
			sb.WriteString(fmt.Sprintf("   - %s\n", u))
		}
	}

	if w.verbose {
		w.writeStats(&sb, report)
	}

	sb.WriteString(summaryRule)
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// writeStats writes page and PDF counts.
func (w *SimpleWriter) writeStats(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Pages scanned:  %d\n", report.PagesScanned()))
	sb.WriteString(fmt.Sprintf("Pages skipped:  %d\n", report.PagesSkipped()))
	sb.WriteString(fmt.Sprintf("PDF links:      %d\n", report.PDFCount()))
	if report.Cancelled {
		sb.WriteString("Status:         INTERRUPTED (partial results)\n")
	}
}
