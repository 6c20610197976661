package options

// 18-19" Upgraded Wheels (including codes 404/405/446).
func upgradedWheels() *Detector {
	return NewDetector(Definition{
		ID:       "Wheels",
		Display:  "18-19\" Upgraded Wheels",
		Category: CategoryExterior,
		ValueUSD: 400,
		Patterns: []string{
			`\b19\s*inch\b`,
			`\b19\s*"\b`,
			`\b19\s*x\s*\d+\s*inch\b`,
			`\b19\s*x\s*\d+\s*"\b`,
			`\b18\s*inch\b`,
			`\b18\s*"\b`,
			`\b18\s*x\s*\d+\s*inch\b`,
			`\b18\s*x\s*\d+\s*"\b`,
			`\b18\s*(?:in(?:ch(?:es)?)?|")?\s*(?:Cayman|Boxster)\s*S?\s*wheels\b`,
			`\b1[89]\s*(?:in(?:ch(?:es)?)?|")\s*wheels\b`,
			`\balloy\s+wheels\b`,
			`\bupgraded\s+wheels\b`,
			`\bpremium\s+wheels\b`,
			`\bsport\s+wheels\b`,
			`\b19\s*inch\s+alloy\s+wheels\b`,
			`\b18\s*inch\s+alloy\s+wheels\b`,
			`\b404\b`,
			`\b405\b`,
			`\b446\b`,
		},
	})
}
