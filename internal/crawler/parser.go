package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/pagescout/internal/model"
	"golang.org/x/net/html"
)

// Parser extracts links from a parsed page.
type Parser struct {
	// raw is the base URL as given, used for the textual "is internal" test.
	raw string

	// baseURL is the parsed base URL, used for resolving relative URLs.
	baseURL *url.URL
}

// NewParser creates a new parser with the given base URL.
// The base URL is used to resolve relative links.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{raw: baseURL, baseURL: u}, nil
}

// InternalLinks returns the absolute URLs of all anchors that point to the
// same scheme and host as the base URL.
//
// An href is a candidate when it starts with "/" or contains the base URL
// text anywhere, including in a query string. Candidates are resolved and
// kept only if the resolved URL is on the base scheme and host. The result
// has no duplicates and keeps first-seen order.
func (p *Parser) InternalLinks(doc *goquery.Document) []string {
	links := make([]string, 0)
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if href == "" {
			return
		}
		if !strings.HasPrefix(href, "/") && !strings.Contains(href, p.raw) {
			return
		}

		resolved, ok := p.resolveURL(href)
		if !ok || !p.sameSite(resolved) {
			return
		}

		link := resolved.String()
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})

	return links
}

// PDFLinks returns one entry per anchor whose href ends with ".pdf",
// ignoring case, in document order. Duplicates are kept. The filename is
// taken from the href text, so escapes and non-ASCII names are left as
// written.
func (p *Parser) PDFLinks(doc *goquery.Document) []model.PDFLink {
	pdfs := make([]model.PDFLink, 0)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if !strings.HasSuffix(strings.ToLower(href), ".pdf") {
			return
		}

		link := model.PDFLink{Filename: pdfFilename(href), URL: href}
		if u, err := url.Parse(href); err == nil {
			link.URL = p.baseURL.ResolveReference(u).String()
		}
		pdfs = append(pdfs, link)
	})

	return pdfs
}

// resolveURL resolves href against the base URL.
func (p *Parser) resolveURL(href string) (*url.URL, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	return p.baseURL.ResolveReference(u), true
}

// sameSite reports whether u has the same scheme and host as the base URL.
func (p *Parser) sameSite(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, p.baseURL.Scheme) &&
		strings.EqualFold(u.Host, p.baseURL.Host)
}

// pdfFilename returns the last path segment of href exactly as written.
// The fragment and query are cut off first.
func pdfFilename(href string) string {
	path, _, _ := strings.Cut(href, "#")
	path, _, _ = strings.Cut(path, "?")
	return lastSegment(path)
}

// lastSegment returns the part of path after the final "/".
func lastSegment(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}

// skippedTextElements are elements whose text is never rendered.
var skippedTextElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// ExtractText returns all visible text nodes of doc joined by single spaces.
func ExtractText(doc *goquery.Document) string {
	parts := make([]string, 0)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if skippedTextElements[n.Data] {
				return
			}
		case html.TextNode:
			parts = append(parts, n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range doc.Nodes {
		walk(n)
	}

	return strings.Join(parts, " ")
}

// FilterSubpages returns the links that contain at least one of filters,
// preserving order.
func FilterSubpages(links, filters []string) []string {
	out := make([]string, 0, len(links))
	for _, link := range links {
		for _, f := range filters {
			if strings.Contains(link, f) {
				out = append(out, link)
				break
			}
		}
	}
	return out
}
