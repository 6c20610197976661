package options

import (
	"sort"
	"strings"

	"github.com/rkaplan/x987scout/internal/models"
)

// Detect runs the full registry against text/trim in "catalog mode" (spec
// §4.5 step 3): every present, non-standard option is valued via
// ResolveValue and the results are aggregated into ListingOptions.
func Detect(text, trim, model string, year int, registry *Registry, resolver GenerationResolver, overrides OverrideTable, msrpCatalog map[string]int) models.ListingOptions {
	if registry == nil {
		registry = Default()
	}

	var detected []models.DetectedOption
	for _, d := range registry.All() {
		if !d.IsPresent(text, trim) {
			continue
		}
		value := ResolveValue(d.ID(), model, year, resolver, overrides, msrpCatalog)
		detected = append(detected, models.DetectedOption{
			ID:       d.ID(),
			Display:  d.Display(),
			Category: d.Category(),
			ValueUSD: d.ValueUSD(),
			MSRPUSD:  value,
		})
	}

	sort.SliceStable(detected, func(i, j int) bool {
		if detected[i].MSRPUSD != detected[j].MSRPUSD {
			return detected[i].MSRPUSD > detected[j].MSRPUSD
		}
		return strings.ToLower(detected[i].Display) < strings.ToLower(detected[j].Display)
	})

	byCategory := make(map[string][]models.DetectedOption)
	totalValue, totalMSRP := 0, 0
	for _, opt := range detected {
		byCategory[opt.Category] = append(byCategory[opt.Category], opt)
		totalValue += opt.ValueUSD
		totalMSRP += opt.MSRPUSD
	}

	return models.ListingOptions{
		Detected:      detected,
		ByCategory:    byCategory,
		TotalValueUSD: totalValue,
		TotalMSRPUSD:  totalMSRP,
	}
}
