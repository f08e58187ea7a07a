package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout is the per-request timeout used when fetching a page.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent is the User-Agent header sent with every request.
	// Some government portals reject requests without a browser-like agent.
	DefaultUserAgent = "Mozilla/5.0"

	// DefaultMaxBodySize limits how much of a response body is read.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// AppName is the application name used for XDG directory paths.
	AppName = "pagescout"
)

// defaultKeywords is the built-in keyword list searched on every page.
// Latin and Devanagari phrases are mixed on purpose; matching is
// case-insensitive and works on the raw page text.
var defaultKeywords = []string{
	"meri yojana",
	"मेरी योजना",
	"प्रथम संस्करण",
	"first edition",
	"द्वितीय संस्करण",
	"second edition",
	"केन्द्र सरकार",
	"central government",
	"खंड",
	"भाग",
}

// defaultSubpageFilters selects which internal links of the start page
// are scanned as sub-pages.
var defaultSubpageFilters = []string{
	"/organization/",
	"/schemes/",
}

// DefaultKeywords returns a copy of the built-in keyword list.
func DefaultKeywords() []string {
	return append([]string(nil), defaultKeywords...)
}

// DefaultSubpageFilters returns a copy of the built-in sub-page filters.
func DefaultSubpageFilters() []string {
	return append([]string(nil), defaultSubpageFilters...)
}

// Config holds all configuration options for a single scan run.
// It is populated from CLI flags and the optional configuration file,
// then passed down explicitly instead of living in global state.
type Config struct {
	// StartURL is the page where the scan begins.
	// It must start with "http"; anything else aborts the run before
	// any request is made.
	StartURL string

	// Timeout is the timeout for each HTTP request.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// Keywords is the ordered list of phrases searched on every page.
	Keywords []string

	// SubpageFilters are path fragments; an internal link is scanned as a
	// sub-page when it contains at least one of them.
	SubpageFilters []string

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// JSONReport selects the JSON report instead of the console summary.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects the Markdown report instead of the console summary.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When empty, the report is written to stdout.
	ReportFile string

	// Verbose enables debug logging.
	Verbose bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
		MaxBodySize:    DefaultMaxBodySize,
		Keywords:       DefaultKeywords(),
		SubpageFilters: DefaultSubpageFilters(),
	}
}

// XDGConfigDir returns the XDG config directory for pagescout.
// On Linux: ~/.config/pagescout
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
//
// StartURL is deliberately not checked here: an unusable start URL is
// reported to the user as part of the scan itself.
func (c *Config) Validate() error {
	if len(c.Keywords) == 0 {
		return ErrNoKeywords
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}

// ApplySite copies the non-zero values of a site configuration into c.
func (c *Config) ApplySite(sc SiteConfig) {
	if len(sc.Keywords) > 0 {
		c.Keywords = append([]string(nil), sc.Keywords...)
	}
	if len(sc.SubpageFilters) > 0 {
		c.SubpageFilters = append([]string(nil), sc.SubpageFilters...)
	}
	if sc.UserAgent != "" {
		c.UserAgent = sc.UserAgent
	}
	if sc.Timeout > 0 {
		c.Timeout = sc.Timeout
	}
	if sc.MaxBodySize > 0 {
		c.MaxBodySize = sc.MaxBodySize
	}
}
