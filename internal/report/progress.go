package report

import (
	"fmt"
	"io"

	"github.com/nao1215/pagescout/internal/model"
)

// Progress prints the human-readable lines shown while a scan runs.
// Lines are prefixed with a status marker: 🌐 🔍 📁 for information,
// ✅ 📄 for findings and ❌ for failures.
//
// A nil *Progress discards everything.
type Progress struct {
	out io.Writer
}

// NewProgress creates a Progress that writes to out.
func NewProgress(out io.Writer) *Progress {
	return &Progress{out: out}
}

func (p *Progress) printf(format string, args ...any) {
	if p == nil || p.out == nil {
		return
	}
	fmt.Fprintf(p.out, format, args...)
}

// Prompt asks for the start URL.
func (p *Progress) Prompt() {
	p.printf("🔗 Enter the full URL of the page to scan: ")
}

// InvalidURL reports a start URL without an http or https scheme.
func (p *Progress) InvalidURL() {
	p.printf("❌ Invalid URL. Please include http:// or https://\n")
}

// StartScan announces the start of a scan.
func (p *Progress) StartScan(startURL string) {
	p.printf("\n🌐 Starting scan at: %s\n", startURL)
}

// RootUnreachable reports that the start page could not be fetched.
func (p *Progress) RootUnreachable() {
	p.printf("❌ Failed to fetch the provided URL.\n")
}

// FetchError reports a page that was skipped.
func (p *Progress) FetchError(pageURL string, err error) {
	p.printf("❌ Error fetching %s: %v\n", pageURL, err)
}

// Scanning announces a successfully fetched page.
func (p *Progress) Scanning(pageURL string) {
	p.printf("\n🔍 Scanning: %s\n", pageURL)
}

// KeywordFound reports one keyword match.
func (p *Progress) KeywordFound(kw, pageURL string) {
	p.printf("   ✅ Found keyword: '%s' at → %s\n", kw, pageURL)
}

// PDFsFound lists the PDF links of a page.
func (p *Progress) PDFsFound(pdfs []model.PDFLink) {
	p.printf("   📄 Found %d PDF(s):\n", len(pdfs))
	for _, pdf := range pdfs {
		p.printf("      - %s → %s\n", pdf.Filename, pdf.URL)
	}
}

// NoMatches reports a page with neither keywords nor PDF links.
func (p *Progress) NoMatches() {
	p.printf("   ❌ No matching keywords or PDFs found.\n")
}

// Subpages announces how many sub-pages will be scanned.
func (p *Progress) Subpages(n int) {
	p.printf("\n📁 Found %d subpages to scan...\n\n", n)
}

// Interrupted reports that the scan was cancelled.
func (p *Progress) Interrupted() {
	p.printf("\n❌ Scan interrupted; results below are partial.\n")
}
