package options

// X51 Power Kit — value is supplied entirely through per-generation MSRP
// overrides or the catalog, never the spec default.
func x51PowerKit() *Detector {
	return NewDetector(Definition{
		ID:       "X51",
		Display:  "X51 Power Kit",
		Category: CategoryPerformance,
		ValueUSD: 0,
		Patterns: []string{
			`\bx51\b`,
			`\bpower\s+kit\b`,
			`\bx51\s+power\s+kit\b`,
		},
	})
}
