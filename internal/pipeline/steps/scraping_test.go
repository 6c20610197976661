package steps

import (
	"testing"
	"time"

	"github.com/rkaplan/x987scout/internal/models"
)

func TestValidateScrapedResultsFailedWhenNotSuccess(t *testing.T) {
	results := []ScrapedResult{
		{Page: nil},
		{Page: &models.ScrapedPage{Status: models.ScrapeError}},
	}
	validateScrapedResults(results)
	for i, r := range results {
		if r.ValidationStatus != "failed" {
			t.Errorf("results[%d].ValidationStatus = %q, want failed", i, r.ValidationStatus)
		}
	}
}

func TestValidateScrapedResultsValidWithNonEmptySections(t *testing.T) {
	results := []ScrapedResult{
		{Page: &models.ScrapedPage{
			Status: models.ScrapeSuccess,
			RawSections: map[string]string{
				models.SectionPageTitle: "2012 Cayman S",
				models.SectionPrice:     "$32,000",
			},
		}},
	}
	validateScrapedResults(results)
	r := results[0]
	if r.ValidationStatus != "valid" {
		t.Errorf("ValidationStatus = %q, want valid", r.ValidationStatus)
	}
	wantScore := 2.0 / float64(len(models.AllSections))
	if r.ValidationScore != wantScore {
		t.Errorf("ValidationScore = %v, want %v", r.ValidationScore, wantScore)
	}
}

func TestValidateScrapedResultsInvalidWhenEmpty(t *testing.T) {
	results := []ScrapedResult{
		{Page: &models.ScrapedPage{Status: models.ScrapeSuccess}},
	}
	validateScrapedResults(results)
	if results[0].ValidationStatus != "invalid" {
		t.Errorf("ValidationStatus = %q, want invalid", results[0].ValidationStatus)
	}
}

func TestValidateScrapedResultsValidWithDOMTextOnly(t *testing.T) {
	results := []ScrapedResult{
		{Page: &models.ScrapedPage{Status: models.ScrapeSuccess, RawDOMText: "some text"}},
	}
	validateScrapedResults(results)
	if results[0].ValidationStatus != "valid" {
		t.Errorf("ValidationStatus = %q, want valid", results[0].ValidationStatus)
	}
}

func TestScrapedTimeStatusFieldHandleNilPage(t *testing.T) {
	r := ScrapedResult{Page: nil}
	if got := scrapedTime(r); got != "" {
		t.Errorf("scrapedTime(nil page) = %q, want empty", got)
	}
	if got := scrapedStatus(r); got != string(models.ScrapeFailed) {
		t.Errorf("scrapedStatus(nil page) = %q, want %q", got, models.ScrapeFailed)
	}
	if got := scrapedField(r, func(p *models.ScrapedPage) string { return p.RawHTMLPath }); got != "" {
		t.Errorf("scrapedField(nil page) = %q, want empty", got)
	}
}

func TestScrapedTimeStatusFieldWithPage(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := ScrapedResult{Page: &models.ScrapedPage{
		Status:       models.ScrapeSuccess,
		ScrapingTime: ts,
		RawHTMLPath:  "/tmp/raw.html",
	}}
	if got := scrapedTime(r); got != ts.Format(time.RFC3339) {
		t.Errorf("scrapedTime = %q, want %q", got, ts.Format(time.RFC3339))
	}
	if got := scrapedStatus(r); got != string(models.ScrapeSuccess) {
		t.Errorf("scrapedStatus = %q, want %q", got, models.ScrapeSuccess)
	}
	if got := scrapedField(r, func(p *models.ScrapedPage) string { return p.RawHTMLPath }); got != "/tmp/raw.html" {
		t.Errorf("scrapedField = %q, want /tmp/raw.html", got)
	}
}
