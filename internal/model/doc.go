// Package model defines the core data structures used throughout pagescout.
//
// This package contains the following main types:
//   - Page: a fetched web page with its parsed document and text
//   - PDFLink: a link to a PDF document found on a page
//   - PageResult: the keywords and PDF links found on one scanned URL
//   - KeywordHits: the ordered keyword to URL-set map of a run
//   - ScanReport: the full result of one scan run
//
// The crawler, pipeline and report packages all use these types, so they
// live in their own package.
package model
