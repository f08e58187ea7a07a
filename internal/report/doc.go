// Package report prints scan progress and writes the final report.
//
// Progress prints the per-page lines while a scan runs. The writers
// render a finished model.ScanReport:
//   - SimpleWriter: the console keyword summary (default)
//   - MarkdownWriter: a shareable Markdown document with tables and a chart
//   - JSONWriter and FullJSONWriter: structured output for other tools
//
// Writers implement the Writer interface and are picked with NewWriter.
package report
