package collector

import (
	"testing"

	"github.com/rkaplan/x987scout/internal/models"
)

func TestValidateURLsKeepsOnlyHTTP(t *testing.T) {
	in := []string{"https://autotempest.com/results?q=cayman", "ftp://bad.example", "not a url at all", "http://cars.com/search"}
	out := validateURLs(in)
	if len(out) != 2 {
		t.Fatalf("validateURLs = %v, want 2 http(s) urls", out)
	}
}

func TestSourceNameRecognizesKnownHosts(t *testing.T) {
	cases := map[string]string{
		"https://www.autotempest.com/results":    "AutoTempest",
		"https://www.cars.com/shopping/results":  "Cars.com",
		"https://www.cargurus.com/Cars/l-Search": "CarGurus",
		"https://www.truecar.com/used-cars":      "TrueCar",
		"https://www.carmax.com/cars":            "CarMax",
		"https://unknown-aggregator.example.com": "Unknown Source",
	}
	for url, want := range cases {
		if got := sourceName(url); got != want {
			t.Errorf("sourceName(%q) = %q, want %q", url, got, want)
		}
	}
}

func TestHostOfLowercasesAndHandlesBadURL(t *testing.T) {
	if got := hostOf("https://WWW.AutoTempest.com/results"); got != "www.autotempest.com" {
		t.Errorf("hostOf = %q, want lowercased host", got)
	}
	if got := hostOf("://not a valid url"); got != "://not a valid url" {
		t.Errorf("hostOf(invalid) = %q, want the raw input back", got)
	}
}

func TestDedupeByListingURLKeepsFirstAndDropsEmpty(t *testing.T) {
	in := []models.CollectedListing{
		{ListingURL: "https://a.com/1", Title: "first"},
		{ListingURL: "https://a.com/1", Title: "duplicate"},
		{ListingURL: ""},
		{ListingURL: "https://a.com/2", Title: "second"},
	}
	out := dedupeByListingURL(in)
	if len(out) != 2 {
		t.Fatalf("dedupeByListingURL returned %d listings, want 2", len(out))
	}
	if out[0].Title != "first" {
		t.Errorf("first-occurrence-wins violated: got %q", out[0].Title)
	}
}

func TestNormalizeListingURLResolvesRelativeHref(t *testing.T) {
	got := normalizeListingURL("https://www.autotempest.com/results?q=cayman", "/details/listing/123")
	want := "https://www.autotempest.com/details/listing/123"
	if got != want {
		t.Errorf("normalizeListingURL = %q, want %q", got, want)
	}
}

func TestNormalizeListingURLFixesDoubleDomainArtifact(t *testing.T) {
	got := normalizeListingURL("https://www.autotempest.com/results", "/www.autotempest.com/listing/1")
	want := "https://www.autotempest.com/listing/1"
	if got != want {
		t.Errorf("normalizeListingURL = %q, want the double-domain artifact stripped to %q", got, want)
	}
}

func TestNormalizeListingURLEmptyHref(t *testing.T) {
	if got := normalizeListingURL("https://www.autotempest.com/results", ""); got != "" {
		t.Errorf("normalizeListingURL(empty href) = %q, want empty", got)
	}
}

func TestBacktickQuoteEscapesSingleQuotesAndBackslashes(t *testing.T) {
	got := backtickQuote(`a\b'c`)
	want := `'a\\b\'c'`
	if got != want {
		t.Errorf("backtickQuote = %q, want %q", got, want)
	}
}
