package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nao1215/pagescout/internal/crawler"
	"github.com/nao1215/pagescout/internal/keyword"
	"github.com/nao1215/pagescout/internal/model"
	"github.com/nao1215/pagescout/internal/report"
)

// Startup errors. Either one ends the run before any sub-page is scanned.
var (
	// ErrInvalidStartURL is returned when the start URL does not begin with "http".
	ErrInvalidStartURL = errors.New("invalid start URL: must begin with http:// or https://")

	// ErrRootUnreachable is returned when the start page cannot be fetched.
	ErrRootUnreachable = errors.New("failed to fetch the start page")
)

// ValidateURLStep rejects start URLs that do not begin with "http".
// It makes no network request.
type ValidateURLStep struct {
	progress *report.Progress
}

// NewValidateURLStep creates a new URL validation step.
func NewValidateURLStep(progress *report.Progress) *ValidateURLStep {
	return &ValidateURLStep{progress: progress}
}

// Name returns the step name.
func (s *ValidateURLStep) Name() string {
	return "validate_url"
}

// Do executes the validation step.
func (s *ValidateURLStep) Do(_ context.Context, r *model.ScanReport) error {
	if !strings.HasPrefix(r.StartURL, "http") {
		s.progress.InvalidURL()
		return ErrInvalidStartURL
	}
	s.progress.StartScan(r.StartURL)
	return nil
}

// ScanRootStep fetches and scans the start page once and keeps it in the
// report for link extraction.
type ScanRootStep struct {
	scanner  *PageScanner
	progress *report.Progress
}

// NewScanRootStep creates a new start page scanning step.
func NewScanRootStep(scanner *PageScanner, progress *report.Progress) *ScanRootStep {
	return &ScanRootStep{scanner: scanner, progress: progress}
}

// Name returns the step name.
func (s *ScanRootStep) Name() string {
	return "scan_root"
}

// Do executes the start page scan.
func (s *ScanRootStep) Do(ctx context.Context, r *model.ScanReport) error {
	page, err := s.scanner.Scan(ctx, r.StartURL, r)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.progress.RootUnreachable()
		return fmt.Errorf("%w: %w", ErrRootUnreachable, err)
	}
	r.Root = page
	return nil
}

// ExtractLinksStep collects the same-site links of the start page.
type ExtractLinksStep struct {
	logger *slog.Logger
}

// NewExtractLinksStep creates a new link extraction step.
func NewExtractLinksStep(logger *slog.Logger) *ExtractLinksStep {
	return &ExtractLinksStep{logger: logger}
}

// Name returns the step name.
func (s *ExtractLinksStep) Name() string {
	return "extract_links"
}

// Do executes the link extraction.
func (s *ExtractLinksStep) Do(_ context.Context, r *model.ScanReport) error {
	if r.Root == nil || r.Root.Document == nil {
		return ErrRootUnreachable
	}

	parser, err := crawler.NewParser(r.StartURL)
	if err != nil {
		return fmt.Errorf("failed to parse start URL: %w", err)
	}

	r.InternalLinks = parser.InternalLinks(r.Root.Document)
	s.logger.Debug("internal links extracted", "count", len(r.InternalLinks))
	return nil
}

// FilterLinksStep selects the internal links that are scanned as sub-pages.
type FilterLinksStep struct {
	filters  []string
	progress *report.Progress
}

// NewFilterLinksStep creates a new sub-page filtering step.
func NewFilterLinksStep(filters []string, progress *report.Progress) *FilterLinksStep {
	return &FilterLinksStep{filters: filters, progress: progress}
}

// Name returns the step name.
func (s *FilterLinksStep) Name() string {
	return "filter_links"
}

// Do executes the filtering.
func (s *FilterLinksStep) Do(_ context.Context, r *model.ScanReport) error {
	r.Subpages = crawler.FilterSubpages(r.InternalLinks, s.filters)
	s.progress.Subpages(len(r.Subpages))
	return nil
}

// ScanSubpagesStep scans every selected sub-page, one at a time.
// A page that cannot be fetched is skipped.
type ScanSubpagesStep struct {
	scanner *PageScanner
}

// NewScanSubpagesStep creates a new sub-page scanning step.
func NewScanSubpagesStep(scanner *PageScanner) *ScanSubpagesStep {
	return &ScanSubpagesStep{scanner: scanner}
}

// Name returns the step name.
func (s *ScanSubpagesStep) Name() string {
	return "scan_subpages"
}

// Do executes the sub-page scans.
func (s *ScanSubpagesStep) Do(ctx context.Context, r *model.ScanReport) error {
	for _, link := range r.Subpages {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Fetch errors are already printed and recorded by the scanner.
		_, _ = s.scanner.Scan(ctx, link, r)
	}
	return ctx.Err()
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// SubpageFilters selects which internal links are scanned.
	SubpageFilters []string

	// Progress receives the console progress lines.
	Progress *report.Progress
}

// DefaultPipelineOption configures DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineSubpageFilters sets the sub-page filters.
func WithPipelineSubpageFilters(filters []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.SubpageFilters = filters
	}
}

// WithPipelineProgress sets the progress printer.
func WithPipelineProgress(progress *report.Progress) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Progress = progress
	}
}

// DefaultPipeline creates the standard scan pipeline:
// validate_url, scan_root, extract_links, filter_links, scan_subpages.
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPipelineSubpageFilters, etc).
func DefaultPipeline(fetcher PageFetcher, matcher *keyword.Matcher, pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		SubpageFilters: []string{"/organization/", "/schemes/"},
		Progress:       report.NewProgress(io.Discard),
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	scanner := NewPageScanner(fetcher, matcher,
		WithScannerProgress(cfg.Progress),
		WithScannerLogger(p.logger),
	)

	p.AddSteps(
		NewValidateURLStep(cfg.Progress),
		NewScanRootStep(scanner, cfg.Progress),
		NewExtractLinksStep(p.logger),
		NewFilterLinksStep(cfg.SubpageFilters, cfg.Progress),
		NewScanSubpagesStep(scanner),
	)

	return p
}
