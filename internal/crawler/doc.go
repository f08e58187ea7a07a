// Package crawler fetches pages and extracts what pagescout looks for in them.
//
// # Components
//
//   - Fetcher: issues one GET per page and parses the body with goquery
//   - Parser: extracts same-site links and PDF links from a parsed page
//   - ExtractText: returns the visible text used for keyword matching
//   - FilterSubpages: selects the internal links that are scanned as sub-pages
//
// # Usage
//
//	fetcher := crawler.NewFetcher(crawler.WithTimeout(10 * time.Second))
//	page, err := fetcher.Fetch(ctx, "https://www.example.gov.in/")
//	parser, _ := crawler.NewParser(page.URL)
//	links := parser.InternalLinks(page.Document)
//	pdfs := parser.PDFLinks(page.Document)
//
// Requests are made one at a time. A failed fetch is returned to the caller,
// which decides whether to skip the page.
package crawler
