package steps

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rkaplan/x987scout/internal/csvio"
	"github.com/rkaplan/x987scout/internal/logging"
	"github.com/rkaplan/x987scout/internal/models"
	"github.com/rkaplan/x987scout/internal/pipeline"
	"github.com/rkaplan/x987scout/internal/ratelimit"
)

var scrapingLog = logging.New("pipeline.scraping")

// ScrapedResult pairs a scraped page with the collection metadata that
// produced it, for the detailed CSV artifact.
type ScrapedResult struct {
	ScrapingID           int
	CollectedListing     models.CollectedListing
	Page                 *models.ScrapedPage
	ValidationStatus     string
	ValidationScore      float64
}

// ScrapingData is the output of the scraping stage.
type ScrapingData struct {
	Results []ScrapedResult
}

// ScrapingStep fetches every collected listing's VDP via the universal
// scraper (spec §4.2).
type ScrapingStep struct{}

func (ScrapingStep) Name() string             { return "scraping" }
func (ScrapingStep) Description() string      { return "Scrapes vehicle data from collected listing URLs" }
func (ScrapingStep) Dependencies() []string   { return []string{"collection"} }
func (ScrapingStep) RequiredConfig() []string { return []string{"scraping"} }

func (ScrapingStep) Run(rc *pipeline.RunContext, previous map[string]*pipeline.Result) (any, error) {
	collectionResult, ok := previous["collection"]
	if !ok || !collectionResult.IsSuccess() {
		return nil, fmt.Errorf("collection step must complete successfully before scraping")
	}
	collectionData, _ := collectionResult.Data.(CollectionData)

	if len(collectionData.Listings) == 0 {
		scrapingLog.Warn("no collected listings to scrape")
		return ScrapingData{}, nil
	}

	concurrency := rc.Config.Scraping.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	delay := time.Duration(rc.Config.Scraping.PoliteDelayMS) * time.Millisecond

	var results []ScrapedResult
	if concurrency > 1 {
		results = scrapeConcurrent(rc, collectionData.Listings, concurrency, delay)
	} else {
		results = scrapeSequential(rc, collectionData.Listings, delay)
	}

	validateScrapedResults(results)

	if err := saveScrapingResults(rc, results); err != nil {
		scrapingLog.Warn("failed to persist scraping artifacts: %v", err)
	}

	return ScrapingData{Results: results}, nil
}

func scrapeSequential(rc *pipeline.RunContext, listings []models.CollectedListing, delay time.Duration) []ScrapedResult {
	pacer := ratelimit.NewPacer(delay)
	results := make([]ScrapedResult, 0, len(listings))
	for i, listing := range listings {
		scrapingLog.Info("scraping %d/%d: %s", i+1, len(listings), listing.ListingURL)
		page := rc.Scraper.Scrape(rc.Ctx, listing.ListingURL)
		results = append(results, ScrapedResult{ScrapingID: i + 1, CollectedListing: listing, Page: page})
		if i < len(listings)-1 {
			_ = pacer.Wait(rc.Ctx)
		}
	}
	return results
}

// scrapeConcurrent runs N cooperative workers sharing the scraper's browser
// context via a counting semaphore of size concurrency (spec §4.2
// Concurrency, §5's "each task owns its page exclusively").
func scrapeConcurrent(rc *pipeline.RunContext, listings []models.CollectedListing, concurrency int, delay time.Duration) []ScrapedResult {
	sem := make(chan struct{}, concurrency)
	pacer := ratelimit.NewPacer(delay)

	results := make([]ScrapedResult, len(listings))
	var wg sync.WaitGroup
	for i, listing := range listings {
		wg.Add(1)
		go func(i int, listing models.CollectedListing) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			_ = pacer.Wait(rc.Ctx)
			scrapingLog.Info("scraping (concurrent) %s", listing.ListingURL)
			page := rc.Scraper.Scrape(rc.Ctx, listing.ListingURL)
			results[i] = ScrapedResult{ScrapingID: i + 1, CollectedListing: listing, Page: page}
		}(i, listing)
	}
	wg.Wait()
	return results
}

func validateScrapedResults(results []ScrapedResult) {
	for i := range results {
		r := &results[i]
		if r.Page == nil || r.Page.Status != models.ScrapeSuccess {
			r.ValidationStatus = "failed"
			continue
		}
		nonEmpty := 0
		for _, section := range models.AllSections {
			if r.Page.RawSections[section] != "" {
				nonEmpty++
			}
		}
		r.ValidationScore = float64(nonEmpty) / float64(len(models.AllSections))
		if nonEmpty > 0 || r.Page.RawDOMText != "" {
			r.ValidationStatus = "valid"
		} else {
			r.ValidationStatus = "invalid"
		}
	}
}

func saveScrapingResults(rc *pipeline.RunContext, results []ScrapedResult) error {
	dir := rc.Config.Pipeline.OutputDirectory
	ts := rc.Timestamp

	if rc.Config.Scraping.CaptureRawHTML || rc.Config.Scraping.CaptureDOMText {
		persistRawArtifacts(rc, results)
	}

	detailedPath := csvio.ArtifactPath(dir, "scraping_detailed", ts)
	detailedCols := []csvio.Column[ScrapedResult]{
		{Name: "scraping_id", Value: func(r ScrapedResult) string { return fmt.Sprintf("%d", r.ScrapingID) }},
		{Name: "source_url", Value: func(r ScrapedResult) string { return r.CollectedListing.SourceURL }},
		{Name: "listing_url", Value: func(r ScrapedResult) string { return r.CollectedListing.ListingURL }},
		{Name: "title", Value: func(r ScrapedResult) string { return r.CollectedListing.Title }},
		{Name: "collection_timestamp", Value: func(r ScrapedResult) string { return r.CollectedListing.CollectionTime.Format(time.RFC3339) }},
		{Name: "scraping_timestamp", Value: func(r ScrapedResult) string { return scrapedTime(r) }},
		{Name: "scraping_status", Value: func(r ScrapedResult) string { return scrapedStatus(r) }},
		{Name: "validation_status", Value: func(r ScrapedResult) string { return r.ValidationStatus }},
		{Name: "validation_score", Value: func(r ScrapedResult) string { return csvio.Float(r.ValidationScore, 2) }},
		{Name: "raw_html_path", Value: func(r ScrapedResult) string { return scrapedField(r, func(p *models.ScrapedPage) string { return p.RawHTMLPath }) }},
		{Name: "raw_text_path", Value: func(r ScrapedResult) string { return scrapedField(r, func(p *models.ScrapedPage) string { return p.RawTextPath }) }},
	}
	if err := csvio.WriteStructs(detailedPath, results, detailedCols); err != nil {
		return fmt.Errorf("writing %s: %w", detailedPath, err)
	}

	summaryPath := csvio.ArtifactPath(dir, "scraping_summary", ts)
	summaryCols := []csvio.Column[ScrapedResult]{
		{Name: "scraping_id", Value: func(r ScrapedResult) string { return fmt.Sprintf("%d", r.ScrapingID) }},
		{Name: "source_url", Value: func(r ScrapedResult) string { return r.CollectedListing.SourceURL }},
		{Name: "scraping_status", Value: func(r ScrapedResult) string { return scrapedStatus(r) }},
		{Name: "validation_status", Value: func(r ScrapedResult) string { return r.ValidationStatus }},
		{Name: "validation_score", Value: func(r ScrapedResult) string { return csvio.Float(r.ValidationScore, 2) }},
	}
	if err := csvio.WriteStructs(summaryPath, results, summaryCols); err != nil {
		return fmt.Errorf("writing %s: %w", summaryPath, err)
	}

	scrapingLog.Info("scraped %d pages; wrote %s and %s", len(results), detailedPath, summaryPath)
	return nil
}

func persistRawArtifacts(rc *pipeline.RunContext, results []ScrapedResult) {
	dir := rc.Config.Pipeline.OutputDirectory + "/artifacts"
	for i := range results {
		r := &results[i]
		if r.Page == nil {
			continue
		}
		if rc.Config.Scraping.CaptureRawHTML && r.Page.RawHTML != "" {
			path := fmt.Sprintf("%s/raw_%d_%s.html", dir, r.ScrapingID, rc.Timestamp)
			if err := writeArtifact(path, r.Page.RawHTML); err == nil {
				r.Page.RawHTMLPath = path
			}
		}
		if rc.Config.Scraping.CaptureDOMText && r.Page.RawDOMText != "" {
			path := fmt.Sprintf("%s/text_%d_%s.txt", dir, r.ScrapingID, rc.Timestamp)
			if err := writeArtifact(path, r.Page.RawDOMText); err == nil {
				r.Page.RawTextPath = path
			}
		}
	}
}

func scrapedTime(r ScrapedResult) string {
	if r.Page == nil {
		return ""
	}
	return r.Page.ScrapingTime.Format(time.RFC3339)
}

func scrapedStatus(r ScrapedResult) string {
	if r.Page == nil {
		return string(models.ScrapeFailed)
	}
	return string(r.Page.Status)
}

func scrapedField(r ScrapedResult, f func(*models.ScrapedPage) string) string {
	if r.Page == nil {
		return ""
	}
	return f(r.Page)
}

func writeArtifact(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
