package extractors

import (
	"strconv"

	"github.com/rkaplan/x987scout/internal/models"
)

// CalculateDealDelta computes fair_value - asking_price, or nil if either
// input is unknown.
func CalculateDealDelta(fairValueUSD, askingPriceUSD *int) *int {
	if fairValueUSD == nil || askingPriceUSD == nil {
		return nil
	}
	d := *fairValueUSD - *askingPriceUSD
	return &d
}

// DealQualityFor classifies a deal delta per spec §4.3.
func DealQualityFor(dealDeltaUSD *int) models.DealQuality {
	if dealDeltaUSD == nil {
		return models.DealUnknown
	}
	switch {
	case *dealDeltaUSD >= 5000:
		return models.DealExcellent
	case *dealDeltaUSD >= 2000:
		return models.DealGood
	case *dealDeltaUSD >= 0:
		return models.DealFair
	case *dealDeltaUSD >= -2000:
		return models.DealOverpriced
	default:
		return models.DealVeryOverpriced
	}
}

// DealPercentage expresses a deal delta as a percentage of asking price,
// rounded to one decimal place.
func DealPercentage(dealDeltaUSD, askingPriceUSD *int) *float64 {
	if dealDeltaUSD == nil || askingPriceUSD == nil || *askingPriceUSD == 0 {
		return nil
	}
	pct := (float64(*dealDeltaUSD) / float64(*askingPriceUSD)) * 100
	rounded := float64(int(pct*10+sign(pct)*0.5)) / 10
	return &rounded
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}

// FormatDealDelta renders a deal delta for display, e.g. "+$5,000",
// "-$1,200", or "N/A" when unknown.
func FormatDealDelta(dealDeltaUSD *int) string {
	if dealDeltaUSD == nil {
		return "N/A"
	}
	switch {
	case *dealDeltaUSD > 0:
		return "+$" + commaInt(*dealDeltaUSD)
	case *dealDeltaUSD < 0:
		return "-$" + commaInt(-*dealDeltaUSD)
	default:
		return "$0"
	}
}

func commaInt(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	out = append(out, s[:lead]...)
	for i := lead; i < len(s); i += 3 {
		out = append(out, ',')
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
