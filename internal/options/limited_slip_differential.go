package options

// Limited Slip Differential (LSD / 220).
func limitedSlipDifferential() *Detector {
	return NewDetector(Definition{
		ID:       "LSD",
		Display:  "Limited Slip Differential (LSD)",
		Category: CategoryPerformance,
		ValueUSD: 1200,
		Patterns: []string{
			`\blsd\b`,
			`\blimited\s+slip\b`,
			`\blimited\s+slip\s+differential\b`,
			`\b220\b`,
			`\bself[-\s]?locking\s+differential\b`,
			`\btorque\s+vectoring\b`,
		},
	})
}
