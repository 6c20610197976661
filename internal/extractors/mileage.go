package extractors

import (
	"math"
	"strconv"
	"strings"
)

var mileagePatterns = []string{
	`(\d{1,6}(?:,\d{3})*)\s*(?:miles?|mi)\b`,        // 103617 miles / 103,720 miles / 103617 mi
	`Mileage\s*:?\s*(\d{1,6}(?:,\d{3})*)`,           // Mileage 103617 / Mileage: 103,720
	`(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*k\s*miles?\b`, // 30.5k miles
	`(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*k\s*mi\b`,     // 30.5k mi
	`(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*K\b`,          // 142.4K
	`(\d{1,3}(?:,\d{3})*)\s*km\b`,                   // 30,500 km (convert to miles)
}

const kmToMiles = 0.621371

// NewMileageExtractor matches spec §4.3's mileage patterns, expanding
// k-notation ("142.4k miles" -> 142400) by a factor of 1000, converting km
// to miles with the 0.621371 factor, and validating [0, 500000].
func NewMileageExtractor() *FieldExtractor[int] {
	return newFieldExtractor("mileage", mileagePatterns, func(m []string, raw string, ctx map[string]string) (int, bool) {
		if len(m) < 2 {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			return 0, false
		}

		switch lower := strings.ToLower(raw); {
		case strings.Contains(lower, "km"):
			f *= kmToMiles
		case strings.Contains(lower, "k"):
			f *= 1000
		}

		n := int(math.Round(f))
		if n < 0 || n > 500000 {
			return 0, false
		}
		return n, true
	})
}
