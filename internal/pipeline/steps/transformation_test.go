package steps

import (
	"strings"
	"testing"

	"github.com/rkaplan/x987scout/internal/models"
)

func TestListingTextPrefersDOMTextThenSections(t *testing.T) {
	page := &models.ScrapedPage{
		RawDOMText: "dom blob",
		RawSections: map[string]string{
			models.SectionPageTitle: "2012 Porsche Cayman S",
			models.SectionPrice:     "$32,000",
		},
	}
	text := listingText(page)

	if want := "dom blob\n"; text[:len(want)] != want {
		t.Errorf("listingText did not lead with DOM text: %q", text)
	}
	for _, want := range []string{"2012 Porsche Cayman S", "$32,000"} {
		if !strings.Contains(text, want) {
			t.Errorf("listingText missing section content %q in %q", want, text)
		}
	}
}

func TestListingTextSkipsEmptySections(t *testing.T) {
	page := &models.ScrapedPage{
		RawSections: map[string]string{
			models.SectionPageTitle: "",
			models.SectionPrice:     "$1",
		},
	}
	text := listingText(page)
	if text != "$1\n" {
		t.Errorf("listingText = %q, want only the non-empty section", text)
	}
}

func TestOptionsDisplayListJoinsDisplayNames(t *testing.T) {
	opts := models.ListingOptions{
		Detected: []models.DetectedOption{
			{Display: "Sport Chrono"},
			{Display: "PASM"},
		},
	}
	if got := optionsDisplayList(opts); got != "Sport Chrono, PASM" {
		t.Errorf("optionsDisplayList = %q, want %q", got, "Sport Chrono, PASM")
	}
}

func TestOptionsDisplayListEmpty(t *testing.T) {
	if got := optionsDisplayList(models.ListingOptions{}); got != "" {
		t.Errorf("optionsDisplayList(empty) = %q, want empty string", got)
	}
}
