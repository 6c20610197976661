package options

// Sport Seats / Adaptive Sport Seats (P01 / 982 / Q2J / Q1J).
func sportSeats() *Detector {
	return NewDetector(Definition{
		ID:       "Sport Seats",
		Display:  "Sport Seats / Adaptive Sport Seats",
		Category: CategorySeating,
		ValueUSD: 500,
		Patterns: []string{
			`\bsport\s+seats\b`,
			`\badaptive\s+sport\s+seats\b`,
			`\bsport\s+bucket\s+seats\b`,
			`\badaptive\s+sport\s+bucket\s+seats\b`,
			`\bp01\b`,
			`\b982\b`,
			`\bq2j\b`,
			`\bq1j\b`,
		},
	})
}

// Ventilated Seats.
func ventilatedSeats() *Detector {
	return NewDetector(Definition{
		ID:       "Ventilated Seats",
		Display:  "Ventilated Seat",
		Category: CategorySeating,
		ValueUSD: 150,
		Patterns: []string{
			`\bventilated\s+seats\b`,
			`\bventilated\s+seating\b`,
			`\bseat\s+ventilation\b`,
			`\bperforated\s+leather\s+seats\b`,
			`\bventilated\s+leather\b`,
		},
	})
}
