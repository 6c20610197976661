package options

// Park Assist.
func parkAssist() *Detector {
	return NewDetector(Definition{
		ID:       "Park Assist",
		Display:  "Park Assist",
		Category: CategoryConvenience,
		ValueUSD: 200,
		Patterns: []string{
			`\bpark\s+assist\b`,
			`\bparking\s+assist\b`,
			`\bparking\s+aid\b`,
			`\bparking\s+sensors\b`,
		},
	})
}
