package options

// Auto-dim mirrors & Rain Sensor (635).
func autoDimRainSensor() *Detector {
	return NewDetector(Definition{
		ID:       "DIM_RAIN",
		Display:  "Auto-dim Mirrors & Rain Sensor",
		Category: CategoryComfort,
		ValueUSD: 0,
		Patterns: []string{
			`\bauto[-\s]?dim\b`,
			`\brain\s+sensor\b`,
			`\bauto[-\s]?dimming\s+mirrors\b`,
			`\b635\b`,
		},
	})
}
