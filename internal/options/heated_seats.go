package options

// Heated Seats (342 / 4A3).
func heatedSeats() *Detector {
	return NewDetector(Definition{
		ID:       "Heated Seats",
		Display:  "Heated Seats",
		Category: CategorySeating,
		ValueUSD: 150,
		Patterns: []string{
			`\bheated\s+seats\b`,
			`\b342\b`,
			`\b4a3\b`,
			`\bheated\s+front\s+seats\b`,
			`\bheated\s+driver\s+seat\b`,
			`\bheated\s+passenger\s+seat\b`,
		},
	})
}
