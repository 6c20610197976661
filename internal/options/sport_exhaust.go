package options

// Sport Exhaust (PSE / XLF / 0P9).
func sportExhaust() *Detector {
	return NewDetector(Definition{
		ID:       "PSE",
		Display:  "Sport Exhaust (PSE)",
		Category: CategoryPerformance,
		ValueUSD: 800,
		Patterns: []string{
			`\bpse\b`,
			`\bsport\s+exhaust\b`,
			`\bsport\s+exhaust\s+system\b`,
			`\bxlf\b`,
			`\b0p9\b`,
			`\bdual\s+exhaust\b`,
			`\bstainless\s+steel\s+dual\s+exhaust\b`,
			`\bsport\s+exhaust\s+with\s+dual\s+tailpipes\b`,
		},
	})
}
