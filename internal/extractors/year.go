package extractors

import "strconv"

var yearPatterns = []string{
	`\b(19[9][0-9]|20[0-2][0-9])\b`, // 1990-2029
	`Year\s*:?\s*(\d{4})`,           // Year: 2010
	`(\d{4})\s*Porsche`,             // 2010 Porsche
	`Porsche\s*(\d{4})`,             // Porsche 2010
}

// NewYearExtractor matches spec §4.3's year patterns, validating the
// 1990-2029 range.
func NewYearExtractor() *FieldExtractor[int] {
	return newFieldExtractor("year", yearPatterns, func(m []string, raw string, ctx map[string]string) (int, bool) {
		if len(m) < 2 {
			return 0, false
		}
		y, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		if y < 1990 || y > 2029 {
			return 0, false
		}
		return y, true
	})
}
