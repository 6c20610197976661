package extractors

import (
	"testing"

	"github.com/rkaplan/x987scout/internal/models"
)

func dp(v int) *int { return &v }

func TestCalculateDealDelta(t *testing.T) {
	if got := CalculateDealDelta(nil, dp(100)); got != nil {
		t.Errorf("CalculateDealDelta(nil, x) = %v, want nil", got)
	}
	if got := CalculateDealDelta(dp(100), nil); got != nil {
		t.Errorf("CalculateDealDelta(x, nil) = %v, want nil", got)
	}
	got := CalculateDealDelta(dp(32000), dp(29000))
	if got == nil || *got != 3000 {
		t.Errorf("CalculateDealDelta(32000, 29000) = %v, want 3000", got)
	}
}

func TestDealQualityForThresholds(t *testing.T) {
	cases := []struct {
		delta *int
		want  models.DealQuality
	}{
		{nil, models.DealUnknown},
		{dp(5000), models.DealExcellent},
		{dp(2000), models.DealGood},
		{dp(1999), models.DealFair},
		{dp(0), models.DealFair},
		{dp(-1), models.DealOverpriced},
		{dp(-2000), models.DealOverpriced},
		{dp(-2001), models.DealVeryOverpriced},
	}
	for _, c := range cases {
		if got := DealQualityFor(c.delta); got != c.want {
			t.Errorf("DealQualityFor(%v) = %q, want %q", c.delta, got, c.want)
		}
	}
}

func TestFormatDealDelta(t *testing.T) {
	if got := FormatDealDelta(nil); got != "N/A" {
		t.Errorf("FormatDealDelta(nil) = %q, want N/A", got)
	}
	if got := FormatDealDelta(dp(5000)); got != "+$5,000" {
		t.Errorf("FormatDealDelta(5000) = %q, want +$5,000", got)
	}
	if got := FormatDealDelta(dp(-1200)); got != "-$1,200" {
		t.Errorf("FormatDealDelta(-1200) = %q, want -$1,200", got)
	}
	if got := FormatDealDelta(dp(0)); got != "$0" {
		t.Errorf("FormatDealDelta(0) = %q, want $0", got)
	}
}
