package steps

import (
	"fmt"
	"strings"

	"github.com/rkaplan/x987scout/internal/config"
	"github.com/rkaplan/x987scout/internal/csvio"
	"github.com/rkaplan/x987scout/internal/extractors"
	"github.com/rkaplan/x987scout/internal/logging"
	"github.com/rkaplan/x987scout/internal/models"
	"github.com/rkaplan/x987scout/internal/pipeline"
)

var fairValueLog = logging.New("pipeline.fair_value")

// FairValueData is the output of the fair-value stage.
type FairValueData struct {
	Listings []models.ValuedListing
}

// FairValueStep computes a fair-value estimate and deal delta for each
// deduplicated listing (spec §4.7).
type FairValueStep struct{}

func (FairValueStep) Name() string             { return "fair_value" }
func (FairValueStep) Description() string      { return "Computes fair value estimates and deal quality for each listing" }
func (FairValueStep) Dependencies() []string   { return []string{"deduplication"} }
func (FairValueStep) RequiredConfig() []string { return []string{"fair_value"} }

func (FairValueStep) Run(rc *pipeline.RunContext, previous map[string]*pipeline.Result) (any, error) {
	dedupResult, ok := previous["deduplication"]
	if !ok || !dedupResult.IsSuccess() {
		return nil, fmt.Errorf("deduplication step must complete successfully before fair value")
	}
	dedupData, _ := dedupResult.Data.(DeduplicationData)

	if len(dedupData.Listings) == 0 {
		fairValueLog.Warn("no deduplicated data to value")
		return FairValueData{}, nil
	}

	if rc.Config.PricingMode == config.PricingMSRPOnly {
		fairValueLog.Info("pricing_mode=msrp_only; skipping fair value computation")
		valued := make([]models.ValuedListing, len(dedupData.Listings))
		for i, l := range dedupData.Listings {
			valued[i] = models.ValuedListing{NormalizedListing: l, DealQuality: models.DealUnknown}
		}
		if err := saveFairValueResults(rc, valued); err != nil {
			fairValueLog.Warn("failed to persist fair value artifacts: %v", err)
		}
		return FairValueData{Listings: valued}, nil
	}

	valued := make([]models.ValuedListing, 0, len(dedupData.Listings))
	for _, l := range dedupData.Listings {
		fv := computeFairValue(rc.Config.FairValue, l)
		delta := extractors.CalculateDealDelta(fv, l.AskingPrice)
		valued = append(valued, models.ValuedListing{
			NormalizedListing: l,
			FairValueUSD:      fv,
			DealDeltaUSD:      delta,
			DealQuality:       extractors.DealQualityFor(delta),
		})
	}

	if err := saveFairValueResults(rc, valued); err != nil {
		fairValueLog.Warn("failed to persist fair value artifacts: %v", err)
	}

	fairValueLog.Info("computed fair value for %d listings", len(valued))
	return FairValueData{Listings: valued}, nil
}

// computeFairValue implements spec §4.7's base + year + trim + mileage +
// color adjustment formula. Returns nil when year is unknown, since the
// year step is load-bearing for every other term.
func computeFairValue(cfg config.FairValueConfig, l models.NormalizedListing) *int {
	if l.Year == nil {
		return nil
	}

	value := cfg.BaseValueUSD
	value += cfg.YearStepUSD * (2012 - *l.Year)

	if isSTrim(l) {
		value += cfg.SPremiumUSD
	}
	if premium, ok := cfg.SpecialTrimPremiums[strings.ToLower(l.Trim)]; ok {
		value += premium
	}

	value += mileageAdjustment(l.Mileage)
	value += colorPremium(cfg.ExteriorColorUSD, l.Exterior)
	value += colorPremium(cfg.InteriorColorUSD, l.Interior)

	return &value
}

func isSTrim(l models.NormalizedListing) bool {
	if strings.EqualFold(l.Trim, "S") {
		return true
	}
	return strings.Contains(strings.ToUpper(l.Model), " S")
}

func mileageAdjustment(mileage *int) int {
	if mileage == nil {
		return 0
	}
	switch {
	case *mileage < 30000:
		return 1000
	case *mileage < 50000:
		return 0
	case *mileage < 75000:
		return -500
	default:
		return -1500
	}
}

func colorPremium(table map[string]int, color string) int {
	if color == "" || color == "Unknown" {
		return 0
	}
	lower := strings.ToLower(color)
	for name, premium := range table {
		if strings.Contains(lower, strings.ToLower(name)) {
			return premium
		}
	}
	return 0
}

func saveFairValueResults(rc *pipeline.RunContext, listings []models.ValuedListing) error {
	dir := rc.Config.Pipeline.OutputDirectory
	ts := rc.Timestamp

	detailedPath := csvio.ArtifactPath(dir, "fair_value_detailed", ts)
	cols := []csvio.Column[models.ValuedListing]{
		{Name: "listing_url", Value: func(l models.ValuedListing) string { return l.ListingURL }},
		{Name: "source_url", Value: func(l models.ValuedListing) string { return l.SourceURL }},
		{Name: "year", Value: func(l models.ValuedListing) string { return csvio.IntOrBlank(l.Year) }},
		{Name: "model", Value: func(l models.ValuedListing) string { return l.Model }},
		{Name: "trim", Value: func(l models.ValuedListing) string { return l.Trim }},
		{Name: "mileage", Value: func(l models.ValuedListing) string { return csvio.IntOrBlank(l.Mileage) }},
		{Name: "exterior", Value: func(l models.ValuedListing) string { return l.Exterior }},
		{Name: "interior", Value: func(l models.ValuedListing) string { return l.Interior }},
		{Name: "asking_price_usd", Value: func(l models.ValuedListing) string { return csvio.IntOrBlank(l.AskingPrice) }},
		{Name: "fair_value_usd", Value: func(l models.ValuedListing) string { return csvio.IntOrBlank(l.FairValueUSD) }},
		{Name: "deal_delta_usd", Value: func(l models.ValuedListing) string { return csvio.IntOrBlank(l.DealDeltaUSD) }},
		{Name: "deal_quality", Value: func(l models.ValuedListing) string { return string(l.DealQuality) }},
	}
	if err := csvio.WriteStructs(detailedPath, listings, cols); err != nil {
		return fmt.Errorf("writing %s: %w", detailedPath, err)
	}

	summaryPath := csvio.ArtifactPath(dir, "fair_value_summary", ts)
	summaryCols := []csvio.Column[models.ValuedListing]{
		{Name: "source_url", Value: func(l models.ValuedListing) string { return l.SourceURL }},
		{Name: "year", Value: func(l models.ValuedListing) string { return csvio.IntOrBlank(l.Year) }},
		{Name: "model", Value: func(l models.ValuedListing) string { return l.Model }},
		{Name: "trim", Value: func(l models.ValuedListing) string { return l.Trim }},
		{Name: "fair_value_usd", Value: func(l models.ValuedListing) string { return csvio.IntOrBlank(l.FairValueUSD) }},
		{Name: "asking_price_usd", Value: func(l models.ValuedListing) string { return csvio.IntOrBlank(l.AskingPrice) }},
		{Name: "deal_delta_usd", Value: func(l models.ValuedListing) string { return csvio.IntOrBlank(l.DealDeltaUSD) }},
		{Name: "deal_quality", Value: func(l models.ValuedListing) string { return string(l.DealQuality) }},
	}
	if err := csvio.WriteStructs(summaryPath, listings, summaryCols); err != nil {
		return fmt.Errorf("writing %s: %w", summaryPath, err)
	}

	fairValueLog.Info("wrote %s and %s", detailedPath, summaryPath)
	return nil
}
