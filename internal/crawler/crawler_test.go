package crawler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// mustDoc parses an HTML string into a goquery document.
func mustDoc(t *testing.T, content string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		t.Fatalf("failed to parse HTML: %v", err)
	}
	return doc
}

// mustParser creates a parser for baseURL.
func mustParser(t *testing.T, baseURL string) *Parser {
	t.Helper()

	parser, err := NewParser(baseURL)
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}
	return parser
}

// TestParserInternalLinks tests same-site link extraction.
func TestParserInternalLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves root-relative links", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body>
			<a href="/organization/a">A</a>
			<a href="/about">About</a>
		</body></html>`)

		got := mustParser(t, "https://site.org/").InternalLinks(doc)
		want := []string{"https://site.org/organization/a", "https://site.org/about"}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("keeps absolute links containing the base url", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<a href="https://site.org/schemes/b">B</a>`)

		got := mustParser(t, "https://site.org/").InternalLinks(doc)
		if !slices.Equal(got, []string{"https://site.org/schemes/b"}) {
			t.Errorf("unexpected links: %v", got)
		}
	})

	t.Run("base url in a query string does not leak a foreign host", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<a href="https://evil.example/redirect?to=https://site.org/">X</a>`)

		got := mustParser(t, "https://site.org/").InternalLinks(doc)
		if len(got) != 0 {
			t.Errorf("expected no internal links, got %v", got)
		}
	})

	t.Run("ignores relative links without leading slash", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<a href="schemes/c">C</a><a href="page.html">P</a>`)

		got := mustParser(t, "https://site.org/").InternalLinks(doc)
		if len(got) != 0 {
			t.Errorf("expected no internal links, got %v", got)
		}
	})

	t.Run("leading whitespace is not a root-relative link", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<a href=" /organization/x">X</a>`)

		got := mustParser(t, "https://site.org/").InternalLinks(doc)
		if len(got) != 0 {
			t.Errorf("expected no internal links, got %v", got)
		}
	})

	t.Run("drops protocol-relative links to other hosts", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<a href="//cdn.example/organization/x">X</a>`)

		got := mustParser(t, "https://site.org/").InternalLinks(doc)
		if len(got) != 0 {
			t.Errorf("expected no internal links, got %v", got)
		}
	})

	t.Run("drops links with a different scheme", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<a href="http://site.org/organization/x?ref=https://site.org/">X</a>`)

		got := mustParser(t, "https://site.org/").InternalLinks(doc)
		if len(got) != 0 {
			t.Errorf("expected no internal links, got %v", got)
		}
	})

	t.Run("collapses duplicates", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<a href="/a">1</a><a href="/a">2</a><a href="https://site.org/a">3</a>`)

		got := mustParser(t, "https://site.org/").InternalLinks(doc)
		if !slices.Equal(got, []string{"https://site.org/a"}) {
			t.Errorf("expected one link, got %v", got)
		}
	})

	t.Run("anchors without href are ignored", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<a name="top">Top</a><a href="">Empty</a>`)

		got := mustParser(t, "https://site.org/").InternalLinks(doc)
		if len(got) != 0 {
			t.Errorf("expected no links, got %v", got)
		}
	})
}

// TestParserPDFLinks tests PDF link extraction.
func TestParserPDFLinks(t *testing.T) {
	t.Parallel()

	t.Run("upper case extension is matched", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<a href="/docs/report.PDF">Report</a>`)

		got := mustParser(t, "http://127.0.0.1:8080").PDFLinks(doc)
		if len(got) != 1 {
			t.Fatalf("expected 1 PDF, got %d", len(got))
		}
		if got[0].Filename != "report.PDF" {
			t.Errorf("expected filename 'report.PDF', got %q", got[0].Filename)
		}
		if got[0].URL != "http://127.0.0.1:8080/docs/report.PDF" {
			t.Errorf("unexpected URL %q", got[0].URL)
		}
	})

	t.Run("one entry per anchor in document order", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<html><body>
			<a href="b.pdf">B</a>
			<a href="/a.html">not a pdf</a>
			<a href="https://other.example/files/a.pdf">A</a>
			<a href="b.pdf">B again</a>
		</body></html>`)

		got := mustParser(t, "https://site.org/dir/page.html").PDFLinks(doc)
		if len(got) != 3 {
			t.Fatalf("expected 3 PDFs, got %d: %v", len(got), got)
		}

		wantURLs := []string{
			"https://site.org/dir/b.pdf",
			"https://other.example/files/a.pdf",
			"https://site.org/dir/b.pdf",
		}
		for i, want := range wantURLs {
			if got[i].URL != want {
				t.Errorf("entry %d: expected URL %q, got %q", i, want, got[i].URL)
			}
		}
		if got[1].Filename != "a.pdf" {
			t.Errorf("expected filename 'a.pdf', got %q", got[1].Filename)
		}
	})

	t.Run("resolves parent-relative references", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<a href="../files/x.pdf">X</a>`)

		got := mustParser(t, "https://site.org/a/b/c.html").PDFLinks(doc)
		if len(got) != 1 || got[0].URL != "https://site.org/a/files/x.pdf" {
			t.Errorf("unexpected PDFs: %v", got)
		}
	})

	t.Run("filename is the last segment as written", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			href string
			want string
		}{
			{name: "escaped characters are kept", href: "/docs/annual%20report.pdf", want: "annual%20report.pdf"},
			{name: "space is not escaped", href: "/docs/annual report.pdf", want: "annual report.pdf"},
			{name: "devanagari is not escaped", href: "/docs/योजना.pdf", want: "योजना.pdf"},
			{name: "absolute url", href: "https://other.example/files/सूची.pdf", want: "सूची.pdf"},
			{name: "query is dropped", href: "/get?file=a.pdf", want: "get"},
			{name: "fragment is dropped", href: "/docs/a.pdf#page=2.pdf", want: "a.pdf"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				doc := mustDoc(t, `<a href="`+tt.href+`">X</a>`)

				got := mustParser(t, "https://site.org/").PDFLinks(doc)
				if len(got) != 1 {
					t.Fatalf("expected 1 PDF, got %d", len(got))
				}
				if got[0].Filename != tt.want {
					t.Errorf("expected filename %q, got %q", tt.want, got[0].Filename)
				}
			})
		}
	})

	t.Run("unparseable href is kept as is", func(t *testing.T) {
		t.Parallel()

		doc := mustDoc(t, `<a href="http://[bad/x.pdf">X</a>`)

		got := mustParser(t, "https://site.org/").PDFLinks(doc)
		if len(got) != 1 {
			t.Fatalf("expected 1 PDF, got %d", len(got))
		}
		if got[0].Filename != "x.pdf" || got[0].URL != "http://[bad/x.pdf" {
			t.Errorf("unexpected PDF: %+v", got[0])
		}
	})

	t.Run("no anchors yields empty result", func(t *testing.T) {
		t.Parallel()

		got := mustParser(t, "https://site.org/").PDFLinks(mustDoc(t, `<p>nothing</p>`))
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty slice, got %v", got)
		}
	})
}

// TestExtractText tests visible text extraction.
func TestExtractText(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, `<html><head><title>Title</title>
		<script>var hidden = "meri yojana";</script>
		<style>.x { color: red }</style></head>
		<body><p>first</p><p>second</p><!-- comment text --></body></html>`)

	text := ExtractText(doc)

	if !strings.Contains(text, "first second") {
		t.Errorf("expected text nodes joined by a space, got %q", text)
	}
	if !strings.Contains(text, "Title") {
		t.Errorf("expected title text, got %q", text)
	}
	if strings.Contains(text, "meri yojana") {
		t.Error("expected script content to be skipped")
	}
	if strings.Contains(text, "color") {
		t.Error("expected style content to be skipped")
	}
	if strings.Contains(text, "comment text") {
		t.Error("expected comments to be skipped")
	}
}

// TestFilterSubpages tests sub-page selection.
func TestFilterSubpages(t *testing.T) {
	t.Parallel()

	t.Run("keeps organization and schemes links", func(t *testing.T) {
		t.Parallel()

		links := []string{
			"https://site.org/organization/A",
			"https://site.org/about",
			"https://site.org/schemes/B",
		}
		got := FilterSubpages(links, []string{"/organization/", "/schemes/"})
		want := []string{"https://site.org/organization/A", "https://site.org/schemes/B"}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("link matching two filters appears once", func(t *testing.T) {
		t.Parallel()

		got := FilterSubpages([]string{"https://site.org/organization/schemes/x"}, []string{"/organization/", "/schemes/"})
		if len(got) != 1 {
			t.Errorf("expected 1 link, got %v", got)
		}
	})

	t.Run("no filters selects nothing", func(t *testing.T) {
		t.Parallel()

		if got := FilterSubpages([]string{"https://site.org/schemes/x"}, nil); len(got) != 0 {
			t.Errorf("expected no links, got %v", got)
		}
	})
}

// TestFetcher tests page fetching.
func TestFetcher(t *testing.T) {
	t.Parallel()

	t.Run("fetches and parses page", func(t *testing.T) {
		t.Parallel()

		uaCh := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uaCh <- r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><head><title> Test </title></head><body>मेरी योजना</body></html>`)) //nolint:errcheck
		}))
		defer server.Close()

		page, err := NewFetcher().Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotUA := <-uaCh; gotUA != "Mozilla/5.0" {
			t.Errorf("expected User-Agent 'Mozilla/5.0', got %q", gotUA)
		}
		if page.Title != "Test" {
			t.Errorf("expected title 'Test', got %q", page.Title)
		}
		if page.StatusCode != http.StatusOK {
			t.Errorf("expected status 200, got %d", page.StatusCode)
		}
		if !strings.Contains(page.Text, "मेरी योजना") {
			t.Errorf("expected Devanagari text, got %q", page.Text)
		}
		if page.Document == nil {
			t.Error("expected parsed document")
		}
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		uaCh := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uaCh <- r.Header.Get("User-Agent")
			_, _ = w.Write([]byte(`<html></html>`)) //nolint:errcheck
		}))
		defer server.Close()

		if _, err := NewFetcher(WithUserAgent("pagescout-test")).Fetch(context.Background(), server.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotUA := <-uaCh; gotUA != "pagescout-test" {
			t.Errorf("expected custom User-Agent, got %q", gotUA)
		}
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewFetcher().Fetch(context.Background(), server.URL)
		if !errors.Is(err, ErrUnexpectedStatus) {
			t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
		}
		if !strings.Contains(err.Error(), "500") {
			t.Errorf("expected status code in error, got %v", err)
		}
	})

	t.Run("timeout is an error", func(t *testing.T) {
		t.Parallel()

		done := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-done:
			}
		}))
		defer server.Close()
		defer close(done)

		_, err := NewFetcher(WithTimeout(50*time.Millisecond)).Fetch(context.Background(), server.URL)
		if err == nil {
			t.Fatal("expected timeout error")
		}
	})

	t.Run("connection refused is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		addr := server.URL
		server.Close()

		if _, err := NewFetcher().Fetch(context.Background(), addr); err == nil {
			t.Fatal("expected connection error")
		}
	})

	t.Run("decodes legacy charset", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			// "Café" in ISO-8859-1
			_, _ = w.Write([]byte("<html><body>Caf\xe9</body></html>")) //nolint:errcheck
		}))
		defer server.Close()

		page, err := NewFetcher().Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(page.Text, "Café") {
			t.Errorf("expected decoded text, got %q", page.Text)
		}
	})

	t.Run("body is truncated at max size", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>" + strings.Repeat("a", 100) + "TAIL</body></html>")) //nolint:errcheck
		}))
		defer server.Close()

		page, err := NewFetcher(WithMaxBodySize(64)).Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(page.Text, "TAIL") {
			t.Error("expected body to be truncated")
		}
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewFetcher().Fetch(ctx, server.URL)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
