// Package steps implements the eight named pipeline stages of spec §4
// (collection, scraping, transformation, deduplication, fair_value,
// ranking, view, catalog) as pipeline.Step values, one file each, grounded
// on original_source/x987-app/x987/pipeline/steps/*.py.
package steps

import (
	"fmt"
	"time"

	"github.com/rkaplan/x987scout/internal/csvio"
	"github.com/rkaplan/x987scout/internal/logging"
	"github.com/rkaplan/x987scout/internal/models"
	"github.com/rkaplan/x987scout/internal/pipeline"
)

var collectionLog = logging.New("pipeline.collection")

// CollectionData is the output of the collection stage.
type CollectionData struct {
	Listings []models.CollectedListing
	Errors   []error
}

// CollectionStep enumerates candidate listing URLs from every configured
// search source (spec §4.9).
type CollectionStep struct{}

func (CollectionStep) Name() string             { return "collection" }
func (CollectionStep) Description() string      { return "Enumerates candidate vehicle listing URLs from configured meta-search pages" }
func (CollectionStep) Dependencies() []string   { return nil }
func (CollectionStep) RequiredConfig() []string { return []string{"search"} }

func (CollectionStep) Run(rc *pipeline.RunContext, previous map[string]*pipeline.Result) (any, error) {
	urls := rc.Config.Search.URLs
	collectionLog.Info("collecting from %d configured search urls", len(urls))

	if len(urls) == 0 {
		collectionLog.Warn("no search.urls configured; nothing to collect")
		return CollectionData{}, nil
	}

	listings, errs := rc.Collector.CollectAll(rc.Ctx, urls)
	for _, err := range errs {
		collectionLog.Warn("collection error: %v", err)
	}

	if rc.SeenCache != nil {
		previouslySeen := 0
		for _, l := range listings {
			seen, err := rc.SeenCache.IsSeen(l.ListingURL)
			if err != nil {
				collectionLog.Warn("seen-cache lookup failed for %s: %v", l.ListingURL, err)
				continue
			}
			if seen {
				previouslySeen++
			}
		}
		if previouslySeen > 0 {
			collectionLog.Info("%d of %d collected listings were seen in a prior run", previouslySeen, len(listings))
		}
	}

	if err := saveCollectionResults(rc, listings); err != nil {
		collectionLog.Warn("failed to persist collection artifacts: %v", err)
	}

	return CollectionData{Listings: listings, Errors: errs}, nil
}

func saveCollectionResults(rc *pipeline.RunContext, listings []models.CollectedListing) error {
	dir := rc.Config.Pipeline.OutputDirectory
	ts := rc.Timestamp

	detailedPath := csvio.ArtifactPath(dir, "collection_detailed", ts)
	detailedCols := []csvio.Column[models.CollectedListing]{
		{Name: "source_url", Value: func(l models.CollectedListing) string { return l.SourceURL }},
		{Name: "listing_url", Value: func(l models.CollectedListing) string { return l.ListingURL }},
		{Name: "title", Value: func(l models.CollectedListing) string { return l.Title }},
		{Name: "collection_timestamp", Value: func(l models.CollectedListing) string { return l.CollectionTime.Format(time.RFC3339) }},
		{Name: "scraping_method", Value: func(l models.CollectedListing) string { return l.ScrapingMethod }},
	}
	if err := csvio.WriteStructs(detailedPath, listings, detailedCols); err != nil {
		return fmt.Errorf("writing %s: %w", detailedPath, err)
	}

	bySource := map[string]int{}
	for _, l := range listings {
		bySource[l.SourceURL]++
	}
	summaryPath := csvio.ArtifactPath(dir, "collection_summary", ts)
	rows := make([][]string, 0, len(bySource))
	for source, count := range bySource {
		rows = append(rows, []string{source, fmt.Sprintf("%d", count)})
	}
	if err := csvio.WriteRecords(summaryPath, []string{"source_url", "listings_collected"}, rows); err != nil {
		return fmt.Errorf("writing %s: %w", summaryPath, err)
	}

	collectionLog.Info("collected %d listings total; wrote %s and %s", len(listings), detailedPath, summaryPath)
	return nil
}
