package options

// PASM — Porsche Active Suspension Management.
func pasm() *Detector {
	return NewDetector(Definition{
		ID:       "PASM",
		Display:  "PASM",
		Category: CategoryPerformance,
		ValueUSD: 800,
		Patterns: []string{
			`\bpasm\b`,
			`\badaptive\s+suspension\b`,
			`\bactive\s+suspension\b`,
			`\badaptive\s+damping\b`,
			`\bporsche\s+active\s+suspension\s+management\b`,
			`\badaptive\s+sport\s+suspension\b`,
			`\bsport\s+suspension\b`,
		},
	})
}
