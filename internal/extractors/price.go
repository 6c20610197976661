package extractors

import (
	"strconv"
	"strings"
)

var pricePatterns = []string{
	`\$(\d{1,3}(?:,\d{3})*)`,                 // $30,500
	`Price\s*:?\s*\$?(\d{1,3}(?:,\d{3})*)`,   // Price: $30,500
	`Asking\s*:?\s*\$?(\d{1,3}(?:,\d{3})*)`,  // Asking: $30,500
	`Listed\s*:?\s*\$?(\d{1,3}(?:,\d{3})*)`,  // Listed: $30,500
	`(\d{1,3}(?:,\d{3})*)\s*USD`,             // 30,500 USD
	`(\d{1,3}(?:,\d{3})*)\s*dollars`,         // 30,500 dollars
}

// NewPriceExtractor matches spec §4.3's price patterns, validating
// [1000, 500000]. Ranges such as "$30,000 - $35,000" take the lower bound
// because the pattern matches the first dollar amount in the text.
func NewPriceExtractor() *FieldExtractor[int] {
	return newFieldExtractor("price_usd", pricePatterns, func(m []string, raw string, ctx map[string]string) (int, bool) {
		if len(m) < 2 {
			return 0, false
		}
		p, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			return 0, false
		}
		if p < 1000 || p > 500000 {
			return 0, false
		}
		return p, true
	})
}
