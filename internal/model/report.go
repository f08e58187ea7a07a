package model

import (
	"time"
)

// ScanReport is the result of one scan run.
// It is built up step by step by the pipeline and handed to a report writer.
// Nothing in it outlives the run.
type ScanReport struct {
	// StartURL is the URL the user asked to scan.
	StartURL string `json:"start_url"`

	// DateScanned is the timestamp when the scan started.
	DateScanned time.Time `json:"date_scanned"`

	// Keywords is the normalized keyword list used for matching.
	Keywords []string `json:"keywords"`

	// Hits maps every keyword to the pages it was found on.
	Hits *KeywordHits `json:"hits"`

	// Pages holds one result per scanned URL in scan order.
	// The start page comes first.
	Pages []*PageResult `json:"pages"`

	// InternalLinks are the same-site links found on the start page.
	InternalLinks []string `json:"internal_links,omitempty"`

	// Subpages are the internal links selected by the sub-page filters.
	Subpages []string `json:"subpages,omitempty"`

	// Root is the fetched start page. Nil if it could not be fetched.
	Root *Page `json:"-"`

	// PerformedSteps lists the pipeline steps that completed.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Cancelled is true if the run was interrupted before it finished.
	Cancelled bool `json:"cancelled"`

	// Error contains the error that stopped the run, if any.
	Error error `json:"-"`

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewScanReport creates a new report for startURL with an empty hit set
// for every keyword.
func NewScanReport(startURL string, keywords []string) *ScanReport {
	hits := NewKeywordHits(keywords)
	return &ScanReport{
		StartURL:    startURL,
		DateScanned: time.Now(),
		Keywords:    hits.Keywords(),
		Hits:        hits,
		Pages:       make([]*PageResult, 0),
	}
}

// AddPage appends a page result and records its keywords as hits.
func (r *ScanReport) AddPage(result *PageResult) {
	r.Pages = append(r.Pages, result)
	for _, kw := range result.Keywords {
		r.Hits.Record(kw, result.URL)
	}
}

// PagesScanned returns the number of pages that were fetched successfully.
func (r *ScanReport) PagesScanned() int {
	n := 0
	for _, p := range r.Pages {
		if !p.Skipped() {
			n++
		}
	}
	return n
}

// PagesSkipped returns the number of pages skipped because of fetch errors.
func (r *ScanReport) PagesSkipped() int {
	return len(r.Pages) - r.PagesScanned()
}

// PDFCount returns the total number of PDF links found across all pages.
func (r *ScanReport) PDFCount() int {
	n := 0
	for _, p := range r.Pages {
		n += len(p.PDFs)
	}
	return n
}

// SetError records the error that stopped the run.
func (r *ScanReport) SetError(err error) {
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}
