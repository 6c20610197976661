package steps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rkaplan/x987scout/internal/csvio"
	"github.com/rkaplan/x987scout/internal/extractors"
	"github.com/rkaplan/x987scout/internal/logging"
	"github.com/rkaplan/x987scout/internal/models"
	"github.com/rkaplan/x987scout/internal/options"
	"github.com/rkaplan/x987scout/internal/pipeline"
)

var transformationLog = logging.New("pipeline.transformation")

// TransformationData is the output of the transformation stage.
type TransformationData struct {
	Listings []models.NormalizedListing
}

// TransformationStep extracts structured fields and detects options from
// every scraped page, producing NormalizedListing records (spec §4.5).
type TransformationStep struct{}

func (TransformationStep) Name() string             { return "transformation" }
func (TransformationStep) Description() string      { return "Extracts fields and detects options from scraped listing text" }
func (TransformationStep) Dependencies() []string   { return []string{"scraping"} }
func (TransformationStep) RequiredConfig() []string { return []string{"pipeline"} }

func (TransformationStep) Run(rc *pipeline.RunContext, previous map[string]*pipeline.Result) (any, error) {
	scrapingResult, ok := previous["scraping"]
	if !ok || !scrapingResult.IsSuccess() {
		return nil, fmt.Errorf("scraping step must complete successfully before transformation")
	}
	scrapingData, _ := scrapingResult.Data.(ScrapingData)

	if len(scrapingData.Results) == 0 {
		transformationLog.Warn("no scraped data to transform")
		return TransformationData{}, nil
	}

	registry := extractors.Default()
	msrpCatalog := rc.Config.OptionsV2.MSRPCatalog

	listings := make([]models.NormalizedListing, 0, len(scrapingData.Results))
	for _, sr := range scrapingData.Results {
		if sr.Page == nil || sr.Page.Status != models.ScrapeSuccess {
			continue
		}
		text := listingText(sr.Page)

		fields := registry.ExtractAll(text, sr.CollectedListing.ListingURL)

		model, trim := fields.Model, fields.Trim
		if rc.Catalog != nil {
			if m, t := rc.Catalog.DetectModelAndTrim(text, fields.Year); m != "" {
				model, trim = m, t
			}
		}
		modelTrim := model
		if trim != "" && trim != "Base" {
			modelTrim = model + " " + trim
		}

		year := 0
		if fields.Year != nil {
			year = *fields.Year
		}

		var opts models.ListingOptions
		if rc.Config.OptionsV2.Enabled {
			opts = options.Detect(text, trim, model, year, rc.OptionsRegistry, rc.Catalog, rc.Overrides, msrpCatalog)
		}

		listing := models.NormalizedListing{
			ListingURL:       sr.CollectedListing.ListingURL,
			SourceURL:        sr.CollectedListing.SourceURL,
			Source:           fields.Source,
			Year:             fields.Year,
			Model:            model,
			Trim:             trim,
			ModelTrim:        modelTrim,
			Mileage:          fields.Mileage,
			AskingPrice:      fields.PriceUSD,
			Exterior:         fields.Exterior,
			Interior:         fields.Interior,
			RawText:          text,
			Confidence:       fields.Confidence,
			Options:          opts,
		}
		listing.DataQualityScore = extractors.DataQualityScore(listing.Confidence)
		listings = append(listings, listing)
	}

	if err := saveTransformationResults(rc, listings); err != nil {
		transformationLog.Warn("failed to persist transformation artifacts: %v", err)
	}

	transformationLog.Info("transformed %d of %d scraped listings", len(listings), len(scrapingData.Results))
	return TransformationData{Listings: listings}, nil
}

// listingText concatenates a scraped page's sections into the single blob
// every extractor runs against, preferring the DOM text capture when
// present (it tends to carry more of the spec sheet than any one section).
func listingText(page *models.ScrapedPage) string {
	var b strings.Builder
	if page.RawDOMText != "" {
		b.WriteString(page.RawDOMText)
		b.WriteString("\n")
	}
	for _, section := range models.AllSections {
		if v := page.RawSections[section]; v != "" {
			b.WriteString(v)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func saveTransformationResults(rc *pipeline.RunContext, listings []models.NormalizedListing) error {
	dir := rc.Config.Pipeline.OutputDirectory
	ts := rc.Timestamp

	base := rc.Config.Pipeline.TransformedCSVName
	if base == "" {
		base = "transformed_data"
	}
	path := csvio.ArtifactPath(dir, base, ts)
	cols := []csvio.Column[models.NormalizedListing]{
		{Name: "listing_url", Value: func(l models.NormalizedListing) string { return l.ListingURL }},
		{Name: "source_url", Value: func(l models.NormalizedListing) string { return l.SourceURL }},
		{Name: "source", Value: func(l models.NormalizedListing) string { return l.Source }},
		{Name: "year", Value: func(l models.NormalizedListing) string { return csvio.IntOrBlank(l.Year) }},
		{Name: "year_confidence", Value: func(l models.NormalizedListing) string { return csvio.Float(l.Confidence["year"], 2) }},
		{Name: "model", Value: func(l models.NormalizedListing) string { return l.Model }},
		{Name: "trim", Value: func(l models.NormalizedListing) string { return l.Trim }},
		{Name: "model_trim", Value: func(l models.NormalizedListing) string { return l.ModelTrim }},
		{Name: "mileage", Value: func(l models.NormalizedListing) string { return csvio.IntOrBlank(l.Mileage) }},
		{Name: "mileage_confidence", Value: func(l models.NormalizedListing) string { return csvio.Float(l.Confidence["mileage"], 2) }},
		{Name: "asking_price_usd", Value: func(l models.NormalizedListing) string { return csvio.IntOrBlank(l.AskingPrice) }},
		{Name: "price_confidence", Value: func(l models.NormalizedListing) string { return csvio.Float(l.Confidence["price"], 2) }},
		{Name: "exterior", Value: func(l models.NormalizedListing) string { return l.Exterior }},
		{Name: "interior", Value: func(l models.NormalizedListing) string { return l.Interior }},
		{Name: "data_quality_score", Value: func(l models.NormalizedListing) string { return csvio.Float(l.DataQualityScore, 2) }},
		{Name: "total_options", Value: func(l models.NormalizedListing) string { return fmt.Sprintf("%d", len(l.Options.Detected)) }},
		{Name: "total_options_value_usd", Value: func(l models.NormalizedListing) string { return fmt.Sprintf("%d", l.Options.TotalValueUSD) }},
		{Name: "total_options_msrp_usd", Value: func(l models.NormalizedListing) string { return fmt.Sprintf("%d", l.Options.TotalMSRPUSD) }},
		{Name: "options_list", Value: func(l models.NormalizedListing) string { return optionsDisplayList(l.Options) }},
	}
	if err := csvio.WriteStructs(path, listings, cols); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	optionsBase := rc.Config.Pipeline.OptionsCSVName
	if optionsBase == "" {
		optionsBase = "options_detected"
	}
	optionsPath := csvio.ArtifactPath(dir, optionsBase, ts)
	if err := saveDetectedOptions(optionsPath, listings); err != nil {
		return fmt.Errorf("writing %s: %w", optionsPath, err)
	}

	transformationLog.Info("wrote %s and %s", path, optionsPath)
	return nil
}

type detectedOptionRow struct {
	ListingURL string
	Option     models.DetectedOption
}

func saveDetectedOptions(path string, listings []models.NormalizedListing) error {
	var rows []detectedOptionRow
	for _, l := range listings {
		for _, o := range l.Options.Detected {
			rows = append(rows, detectedOptionRow{ListingURL: l.ListingURL, Option: o})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ListingURL < rows[j].ListingURL })

	cols := []csvio.Column[detectedOptionRow]{
		{Name: "listing_url", Value: func(r detectedOptionRow) string { return r.ListingURL }},
		{Name: "option_id", Value: func(r detectedOptionRow) string { return r.Option.ID }},
		{Name: "display", Value: func(r detectedOptionRow) string { return r.Option.Display }},
		{Name: "category", Value: func(r detectedOptionRow) string { return r.Option.Category }},
		{Name: "value_usd", Value: func(r detectedOptionRow) string { return fmt.Sprintf("%d", r.Option.ValueUSD) }},
		{Name: "msrp_usd", Value: func(r detectedOptionRow) string { return fmt.Sprintf("%d", r.Option.MSRPUSD) }},
	}
	return csvio.WriteStructs(path, rows, cols)
}

func optionsDisplayList(opts models.ListingOptions) string {
	names := make([]string, 0, len(opts.Detected))
	for _, o := range opts.Detected {
		names = append(names, o.Display)
	}
	return strings.Join(names, ", ")
}
