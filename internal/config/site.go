package config

import (
	"net/url"
	"strings"
	"time"
)

// SiteConfig holds scan settings that can be set in the configuration file,
// either as defaults or for a single host.
type SiteConfig struct {
	// Keywords replaces the built-in keyword list.
	Keywords []string `yaml:"keywords,omitempty"`

	// SubpageFilters replaces the built-in sub-page filters.
	SubpageFilters []string `yaml:"subpageFilters,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Timeout overrides the per-request timeout (e.g. "15s").
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// MaxBodySize overrides the response body limit in bytes.
	MaxBodySize int64 `yaml:"maxBodySize,omitempty"`
}

// File represents the structure of the .pagescout configuration file.
type File struct {
	// Defaults apply to every scan.
	Defaults SiteConfig `yaml:"defaults,omitempty"`

	// Sites maps a host name (e.g. "www.example.gov.in") to settings
	// that override Defaults when the start URL points at that host.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`
}

// GetSiteConfig returns the settings for the host of startURL,
// merged on top of the defaults.
func (cf *File) GetSiteConfig(startURL string) SiteConfig {
	result := cf.Defaults

	siteConfig, ok := cf.Sites[siteKey(startURL)]
	if !ok {
		return result
	}

	if len(siteConfig.Keywords) > 0 {
		result.Keywords = siteConfig.Keywords
	}
	if len(siteConfig.SubpageFilters) > 0 {
		result.SubpageFilters = siteConfig.SubpageFilters
	}
	if siteConfig.UserAgent != "" {
		result.UserAgent = siteConfig.UserAgent
	}
	if siteConfig.Timeout > 0 {
		result.Timeout = siteConfig.Timeout
	}
	if siteConfig.MaxBodySize > 0 {
		result.MaxBodySize = siteConfig.MaxBodySize
	}
	return result
}

// siteKey extracts the lowercased host of a URL. Inputs without a scheme
// are treated as bare host names.
func siteKey(raw string) string {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return strings.ToLower(u.Hostname())
	}
	host, _, _ := strings.Cut(raw, "/")
	return strings.ToLower(host)
}
