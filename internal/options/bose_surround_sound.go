package options

// BOSE Surround Sound (680 / 9VL).
func boseSurroundSound() *Detector {
	return NewDetector(Definition{
		ID:       "BOSE",
		Display:  "BOSE Surround Sound",
		Category: CategoryTechnology,
		ValueUSD: 300,
		Patterns: []string{
			`\bbose\b`,
			`\bbose\s+surround\s+sound\b`,
			`\bbose\s+sound\s+system\b`,
			`\bpremium\s+sound\s+system\b`,
			`\b680\b`,
			`\b9vl\b`,
		},
	})
}
