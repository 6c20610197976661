package extractors

import "github.com/rkaplan/x987scout/internal/models"

// AllFieldsResult is the combined output of running every field extractor
// over a listing's text, the Go equivalent of UnifiedExtractor.extract_all.
type AllFieldsResult struct {
	Year       *int
	PriceUSD   *int
	Mileage    *int
	Model      string
	Trim       string
	Exterior   string
	Interior   string
	Source     string
	Confidence map[string]float64
}

// ExtractAll runs every field extractor over text (and url, when present,
// for source resolution), producing the combined record the
// transformation stage normalizes into a NormalizedListing (spec §4.5
// steps 1-2). Missing categorical values become "Unknown" (except trim,
// which defaults to "Base"); missing numeric values stay nil; either way
// confidence is recorded as 0.0.
func (r *Registry) ExtractAll(text, url string) AllFieldsResult {
	res := AllFieldsResult{Confidence: make(map[string]float64, len(models.FieldSet))}

	if yr := r.year.Extract(text, nil); yr != nil {
		v := yr.Value
		res.Year = &v
		res.Confidence["year"] = yr.Confidence
	} else {
		res.Confidence["year"] = 0.0
	}

	if pr := r.price.Extract(text, nil); pr != nil {
		v := pr.Value
		res.PriceUSD = &v
		res.Confidence["price"] = pr.Confidence
	} else {
		res.Confidence["price"] = 0.0
	}

	if mi := r.mileage.Extract(text, nil); mi != nil {
		v := mi.Value
		res.Mileage = &v
		res.Confidence["mileage"] = mi.Confidence
	} else {
		res.Confidence["mileage"] = 0.0
	}

	model, trim := r.modelTrim.ExtractSeparate(text)
	res.Model = model
	res.Trim = trim
	modelConfidence := 0.0
	if model != "Unknown" {
		modelConfidence = 1.0
	}
	res.Confidence["model"] = modelConfidence
	res.Confidence["trim"] = modelConfidence

	exterior, interior := r.colors.ExtractColors(text)
	if exterior == "" {
		exterior = "Unknown"
		res.Confidence["exterior"] = 0.0
	} else {
		res.Confidence["exterior"] = 1.0
	}
	if interior == "" {
		interior = "Unknown"
		res.Confidence["interior"] = 0.0
	} else {
		res.Confidence["interior"] = 1.0
	}
	res.Exterior = exterior
	res.Interior = interior

	var source string
	if url != "" {
		source = r.source.ExtractFromURL(url)
	} else {
		source = r.source.ExtractFromText(text)
	}
	if source == "" || source == "unknown" {
		source = "Unknown"
	}
	res.Source = source
	if source != "Unknown" {
		res.Confidence["source"] = 1.0
	} else {
		res.Confidence["source"] = 0.0
	}

	return res
}

// DataQualityScore aggregates field presence into a single [0,1] score,
// the fraction of FieldSet with nonzero confidence (spec §4.3).
func DataQualityScore(confidence map[string]float64) float64 {
	if len(confidence) == 0 {
		return 0
	}
	present := 0
	for _, f := range models.FieldSet {
		if confidence[f] > 0 {
			present++
		}
	}
	return float64(present) / float64(len(models.FieldSet))
}
