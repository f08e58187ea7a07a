package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoKeywords is returned when the keyword list is empty.
	ErrNoKeywords = errors.New("no keywords configured: at least one keyword is required")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the max body size is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")
)
