package options

// Short Shifter (X97/X98).
func shortShifter() *Detector {
	return NewDetector(Definition{
		ID:       "SHORT_SHIFTER",
		Display:  "Short Shifter",
		Category: CategoryPerformance,
		ValueUSD: 0,
		Patterns: []string{
			`\bshort\s+shifter\b`,
			`\bx97\b`,
			`\bx98\b`,
		},
	})
}
