package steps

import (
	"fmt"
	"time"

	"github.com/rkaplan/x987scout/internal/csvio"
	"github.com/rkaplan/x987scout/internal/logging"
	"github.com/rkaplan/x987scout/internal/models"
	"github.com/rkaplan/x987scout/internal/pipeline"
)

var deduplicationLog = logging.New("pipeline.deduplication")

// dedupeCriteria is the composite-key priority list: the first non-empty
// field determines which listings collide.
var dedupeCriteria = []string{"vin", "listing_url", "source_url", "year", "model", "trim", "model_trim"}

// DeduplicationData is the output of the deduplication stage.
type DeduplicationData struct {
	Listings []models.NormalizedListing
	Summary  models.DeduplicationSummary
}

// DeduplicationStep removes duplicate listings by composite key (spec §4.6).
type DeduplicationStep struct{}

func (DeduplicationStep) Name() string             { return "deduplication" }
func (DeduplicationStep) Description() string      { return "Removes duplicate vehicle listings based on VIN and other criteria" }
func (DeduplicationStep) Dependencies() []string   { return []string{"transformation"} }
func (DeduplicationStep) RequiredConfig() []string { return []string{"pipeline"} }

func (DeduplicationStep) Run(rc *pipeline.RunContext, previous map[string]*pipeline.Result) (any, error) {
	transformResult, ok := previous["transformation"]
	if !ok || !transformResult.IsSuccess() {
		return nil, fmt.Errorf("transformation step must complete successfully before deduplication")
	}
	transformData, _ := transformResult.Data.(TransformationData)

	original := transformData.Listings
	if len(original) == 0 {
		deduplicationLog.Warn("no transformed data to deduplicate")
		return DeduplicationData{Summary: models.DeduplicationSummary{}}, nil
	}

	deduped := deduplicateListings(original)
	summary := models.DeduplicationSummary{
		OriginalCount:     len(original),
		FinalCount:        len(deduped),
		DuplicatesRemoved: len(original) - len(deduped),
	}
	if summary.OriginalCount > 0 {
		summary.DuplicateRate = float64(summary.DuplicatesRemoved) / float64(summary.OriginalCount)
		summary.RetentionRate = float64(summary.FinalCount) / float64(summary.OriginalCount)
	}

	if rc.SeenCache != nil {
		now := time.Now()
		for _, l := range deduped {
			if err := rc.SeenCache.MarkSeen(l.ListingURL, l.ListingURL, l.SourceURL, now); err != nil {
				deduplicationLog.Warn("failed to record seen listing %s: %v", l.ListingURL, err)
			}
		}
	}

	if err := saveDeduplicationResults(rc, deduped, summary); err != nil {
		deduplicationLog.Warn("failed to persist deduplication artifacts: %v", err)
	}

	deduplicationLog.Info("deduplication complete: %d -> %d listings (%d removed)",
		summary.OriginalCount, summary.FinalCount, summary.DuplicatesRemoved)

	return DeduplicationData{Listings: deduped, Summary: summary}, nil
}

// deduplicateListings keeps the first occurrence of each composite key,
// mirroring the original's set-based first-wins dedup.
func deduplicateListings(listings []models.NormalizedListing) []models.NormalizedListing {
	seen := make(map[string]bool, len(listings))
	result := make([]models.NormalizedListing, 0, len(listings))

	for _, l := range listings {
		key := compositeKey(l)
		if seen[key] {
			deduplicationLog.Debug("duplicate found: %s", key)
			continue
		}
		seen[key] = true
		result = append(result, l)
	}
	return result
}

func compositeKey(l models.NormalizedListing) string {
	year := ""
	if l.Year != nil {
		year = fmt.Sprintf("%d", *l.Year)
	}
	values := []string{l.VIN, l.ListingURL, l.SourceURL, year, l.Model, l.Trim, l.ModelTrim}
	for i, field := range dedupeCriteria {
		if values[i] != "" {
			return field + ":" + values[i]
		}
	}
	return "unknown"
}

func saveDeduplicationResults(rc *pipeline.RunContext, listings []models.NormalizedListing, summary models.DeduplicationSummary) error {
	dir := rc.Config.Pipeline.OutputDirectory
	ts := rc.Timestamp

	dataPath := csvio.ArtifactPath(dir, "deduplicated_data", ts)
	cols := []csvio.Column[models.NormalizedListing]{
		{Name: "listing_url", Value: func(l models.NormalizedListing) string { return l.ListingURL }},
		{Name: "source_url", Value: func(l models.NormalizedListing) string { return l.SourceURL }},
		{Name: "source", Value: func(l models.NormalizedListing) string { return l.Source }},
		{Name: "year", Value: func(l models.NormalizedListing) string { return csvio.IntOrBlank(l.Year) }},
		{Name: "model", Value: func(l models.NormalizedListing) string { return l.Model }},
		{Name: "trim", Value: func(l models.NormalizedListing) string { return l.Trim }},
		{Name: "model_trim", Value: func(l models.NormalizedListing) string { return l.ModelTrim }},
		{Name: "mileage", Value: func(l models.NormalizedListing) string { return csvio.IntOrBlank(l.Mileage) }},
		{Name: "asking_price_usd", Value: func(l models.NormalizedListing) string { return csvio.IntOrBlank(l.AskingPrice) }},
		{Name: "exterior", Value: func(l models.NormalizedListing) string { return l.Exterior }},
		{Name: "interior", Value: func(l models.NormalizedListing) string { return l.Interior }},
		{Name: "data_quality_score", Value: func(l models.NormalizedListing) string { return csvio.Float(l.DataQualityScore, 2) }},
	}
	if err := csvio.WriteStructs(dataPath, listings, cols); err != nil {
		return fmt.Errorf("writing %s: %w", dataPath, err)
	}

	summaryPath := csvio.ArtifactPath(dir, "deduplication_summary", ts)
	rows := [][]string{
		{"original_count", fmt.Sprintf("%d", summary.OriginalCount)},
		{"final_count", fmt.Sprintf("%d", summary.FinalCount)},
		{"duplicates_removed", fmt.Sprintf("%d", summary.DuplicatesRemoved)},
		{"duplicate_rate", csvio.Float(summary.DuplicateRate, 4)},
		{"retention_rate", csvio.Float(summary.RetentionRate, 4)},
	}
	if err := csvio.WriteRecords(summaryPath, []string{"metric", "value"}, rows); err != nil {
		return fmt.Errorf("writing %s: %w", summaryPath, err)
	}

	deduplicationLog.Info("wrote %s and %s", dataPath, summaryPath)
	return nil
}
