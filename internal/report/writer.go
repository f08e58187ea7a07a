package report

import (
	"io"

	"github.com/nao1215/pagescout/internal/model"
)

// Writer defines the interface for report output.
// Implementations write scan results in various formats.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.ScanReport) (int, error)
}

// Format identifies a report format.
type Format string

const (
	// FormatText is the console summary format.
	FormatText Format = "text"
	// FormatMarkdown is the GitHub-flavored Markdown format.
	FormatMarkdown Format = "markdown"
	// FormatJSON is the JSON format.
	FormatJSON Format = "json"
)

// NewWriter returns the writer for format. Unknown formats fall back to text.
func NewWriter(format Format, output io.Writer, version string) Writer {
	switch format {
	case FormatJSON:
		return NewFullJSONWriter(output, version, WithPrettyPrint())
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	default:
		return NewSimpleWriter(output)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
