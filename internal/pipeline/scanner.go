package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/nao1215/pagescout/internal/crawler"
	"github.com/nao1215/pagescout/internal/keyword"
	"github.com/nao1215/pagescout/internal/model"
	"github.com/nao1215/pagescout/internal/report"
)

// PageFetcher retrieves and parses a single page.
// *crawler.Fetcher is the production implementation.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*model.Page, error)
}

// PageScanner fetches one URL, looks for keywords and PDF links on it,
// prints what it finds and records the result in the report.
type PageScanner struct {
	fetcher  PageFetcher
	matcher  *keyword.Matcher
	progress *report.Progress
	logger   *slog.Logger
}

// ScannerOption configures a PageScanner.
type ScannerOption func(*PageScanner)

// WithScannerProgress sets where per-page progress lines are printed.
func WithScannerProgress(progress *report.Progress) ScannerOption {
	return func(s *PageScanner) {
		s.progress = progress
	}
}

// WithScannerLogger sets a custom logger for the scanner.
func WithScannerLogger(logger *slog.Logger) ScannerOption {
	return func(s *PageScanner) {
		s.logger = logger
	}
}

// NewPageScanner creates a PageScanner. Progress output is discarded
// unless WithScannerProgress is given.
func NewPageScanner(fetcher PageFetcher, matcher *keyword.Matcher, opts ...ScannerOption) *PageScanner {
	s := &PageScanner{
		fetcher:  fetcher,
		matcher:  matcher,
		progress: report.NewProgress(io.Discard),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan scans pageURL and appends a PageResult to r.
//
// A fetch failure is printed, recorded in the PageResult and returned;
// no hits are recorded for that page. Callers scanning sub-pages ignore
// the error and move on.
func (s *PageScanner) Scan(ctx context.Context, pageURL string, r *model.ScanReport) (*model.Page, error) {
	page, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		s.logger.Debug("fetch failed", "url", pageURL, "error", err)
		s.progress.FetchError(pageURL, err)
		r.AddPage(&model.PageResult{URL: pageURL, Error: err.Error()})
		return nil, err
	}

	s.progress.Scanning(pageURL)

	result := &model.PageResult{
		URL:      pageURL,
		Title:    page.Title,
		Keywords: s.matcher.Match(page.Text),
	}
	for _, kw := range result.Keywords {
		s.progress.KeywordFound(kw, pageURL)
	}

	if parser, perr := crawler.NewParser(pageURL); perr == nil && page.Document != nil {
		result.PDFs = parser.PDFLinks(page.Document)
	}
	if len(result.PDFs) > 0 {
		s.progress.PDFsFound(result.PDFs)
	}

	if !result.Matched() {
		s.progress.NoMatches()
	}

	s.logger.Debug("page scanned",
		"url", pageURL,
		"keywords", len(result.Keywords),
		"pdfs", len(result.PDFs),
	)

	r.AddPage(result)
	return page, nil
}
