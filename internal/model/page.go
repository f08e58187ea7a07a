package model

import "github.com/PuerkitoBio/goquery"

// Page represents a fetched web page with its parsed content.
type Page struct {
	// URL is the URL that was requested.
	URL string `json:"url"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// ContentType is the MIME type of the response.
	ContentType string `json:"content_type"`

	// Title is the page title extracted from the <title> tag.
	Title string `json:"title,omitempty"`

	// Document is the parsed HTML tree. Link and PDF extraction run on it.
	Document *goquery.Document `json:"-"`

	// Text is the visible text of the page, one space between text nodes.
	// Keyword matching runs on it.
	Text string `json:"-"`
}

// PDFLink is an anchor on a page whose href ends in ".pdf".
type PDFLink struct {
	// Filename is the last path segment of the href as written in the page.
	Filename string `json:"filename"`

	// URL is the href resolved against the page URL.
	URL string `json:"url"`
}

// PageResult is the outcome of scanning a single URL.
type PageResult struct {
	// URL is the scanned URL.
	URL string `json:"url"`

	// Title is the page title, if the page could be fetched.
	Title string `json:"title,omitempty"`

	// Keywords lists the keywords found on the page, in keyword-list order.
	Keywords []string `json:"keywords,omitempty"`

	// PDFs lists the PDF links found on the page, in document order.
	PDFs []PDFLink `json:"pdfs,omitempty"`

	// Error is set when the page could not be fetched and was skipped.
	Error string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// Matched reports whether any keyword or PDF link was found on the page.
func (r *PageResult) Matched() bool {
	return len(r.Keywords) > 0 || len(r.PDFs) > 0
}

// Skipped reports whether the page was skipped because of a fetch error.
func (r *PageResult) Skipped() bool {
	return r.Error != ""
}
