package options

// Porsche Active Ride (Adaptive Suspension) — value via MSRP
// overrides/catalog fallback, same pattern as X51.
func activeRide() *Detector {
	return NewDetector(Definition{
		ID:       "ACTIVE_RIDE",
		Display:  "Porsche Active Ride (Adaptive Suspension)",
		Category: CategoryPerformance,
		ValueUSD: 0,
		Patterns: []string{
			`\bactive\s+ride\b`,
			`\bporsche\s+active\s+ride\b`,
		},
	})
}
