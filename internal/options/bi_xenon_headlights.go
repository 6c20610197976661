package options

// Bi-Xenon with Dynamic Cornering (601 / PDLS / 8JU / 8IS).
func biXenonHeadlights() *Detector {
	return NewDetector(Definition{
		ID:       "Bi-Xenon",
		Display:  "Bi-Xenon Headlights with Dynamic Cornering",
		Category: CategoryExterior,
		ValueUSD: 250,
		Patterns: []string{
			`\bbi[-\s]?xenon\b`,
			`\bxenon\s+headlights\b`,
			`\bxenon\s+lighting\b`,
			`\bprojector\s+beam\s+headlights\b`,
			`\bdynamic\s+cornering\b`,
			`\bpdls\b`,
			`\b601\b`,
			`\b8ju\b`,
			`\b8is\b`,
		},
	})
}
