package options

// Sport Chrono Package Plus.
func sportChrono() *Detector {
	return NewDetector(Definition{
		ID:       "639/640",
		Display:  "Sport Chrono Package Plus",
		Category: CategoryPerformance,
		ValueUSD: 1000,
		Patterns: []string{
			`\bsport\s+chrono\b`,
			`\bchrono\s+package\b`,
			`\bchrono\s+plus\b`,
			`\bsport\s+chrono\s+plus\b`,
			`\bchrono\s+package\s+plus\b`,
			`\bsport\s+chrono\s+package\b`,
			`\bchrono\b`,
			`\bsport\s+chrono\s+package\s+plus\b`,
		},
	})
}
