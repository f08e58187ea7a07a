package model

import (
	"encoding/json"
	"slices"
	"testing"
)

// TestNewKeywordHits tests construction of the hit map.
func TestNewKeywordHits(t *testing.T) {
	t.Parallel()

	t.Run("every keyword starts with an empty set", func(t *testing.T) {
		t.Parallel()

		h := NewKeywordHits([]string{"first edition", "खंड"})
		for _, kw := range []string{"first edition", "खंड"} {
			urls := h.URLs(kw)
			if urls == nil || len(urls) != 0 {
				t.Errorf("expected empty URL set for %q, got %v", kw, urls)
			}
		}
		if !h.Empty() {
			t.Error("expected Empty() to be true")
		}
	})

	t.Run("duplicate keywords collapse", func(t *testing.T) {
		t.Parallel()

		h := NewKeywordHits([]string{"a", "b", "a"})
		if got := h.Keywords(); !slices.Equal(got, []string{"a", "b"}) {
			t.Errorf("expected [a b], got %v", got)
		}
	})
}

// TestKeywordHitsRecord tests recording hits.
func TestKeywordHitsRecord(t *testing.T) {
	t.Parallel()

	t.Run("same url is recorded once", func(t *testing.T) {
		t.Parallel()

		h := NewKeywordHits([]string{"meri yojana"})
		h.Record("meri yojana", "https://example.com/")
		h.Record("meri yojana", "https://example.com/")

		if got := h.URLs("meri yojana"); len(got) != 1 {
			t.Errorf("expected 1 URL, got %v", got)
		}
	})

	t.Run("urls keep insertion order", func(t *testing.T) {
		t.Parallel()

		h := NewKeywordHits([]string{"भाग"})
		h.Record("भाग", "https://example.com/b")
		h.Record("भाग", "https://example.com/a")
		h.Record("भाग", "https://example.com/b")

		want := []string{"https://example.com/b", "https://example.com/a"}
		if got := h.URLs("भाग"); !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("unknown keyword is ignored", func(t *testing.T) {
		t.Parallel()

		h := NewKeywordHits([]string{"a"})
		h.Record("b", "https://example.com/")

		if !h.Empty() {
			t.Error("expected Empty() to be true")
		}
		if len(h.Keywords()) != 1 {
			t.Errorf("expected keyword set to stay unchanged, got %v", h.Keywords())
		}
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		t.Parallel()

		h := NewKeywordHits([]string{"a"})
		h.Record("a", "https://example.com/")

		urls := h.URLs("a")
		urls[0] = "changed"
		if h.URLs("a")[0] != "https://example.com/" {
			t.Error("expected internal state to be unchanged")
		}
	})
}

// TestKeywordHitsFound tests that only keywords with hits are returned.
func TestKeywordHitsFound(t *testing.T) {
	t.Parallel()

	h := NewKeywordHits([]string{"a", "b", "c"})
	h.Record("c", "https://example.com/1")
	h.Record("a", "https://example.com/2")

	found := h.Found()
	if len(found) != 2 {
		t.Fatalf("expected 2 found keywords, got %d", len(found))
	}
	if found[0].Keyword != "a" || found[1].Keyword != "c" {
		t.Errorf("expected keyword order [a c], got [%s %s]", found[0].Keyword, found[1].Keyword)
	}
	if h.Empty() {
		t.Error("expected Empty() to be false")
	}
}

// TestKeywordHitsMarshalJSON tests the ordered JSON encoding.
func TestKeywordHitsMarshalJSON(t *testing.T) {
	t.Parallel()

	h := NewKeywordHits([]string{"second edition", "central government"})
	h.Record("central government", "https://example.com/")

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `[{"keyword":"second edition","urls":[]},{"keyword":"central government","urls":["https://example.com/"]}]`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}
