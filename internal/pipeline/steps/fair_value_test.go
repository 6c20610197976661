package steps

import (
	"testing"

	"github.com/rkaplan/x987scout/internal/config"
	"github.com/rkaplan/x987scout/internal/models"
)

func testFairValueConfig() config.FairValueConfig {
	return config.FairValueConfig{
		BaseValueUSD: 30500,
		YearStepUSD:  500,
		SPremiumUSD:  7000,
		ExteriorColorUSD: map[string]int{
			"guards red": 500,
			"black":      300,
		},
		InteriorColorUSD: map[string]int{
			"black": 200,
		},
		SpecialTrimPremiums: map[string]int{
			"gts": 10000,
		},
	}
}

func TestComputeFairValueNilYear(t *testing.T) {
	l := models.NormalizedListing{Model: "911"}
	if v := computeFairValue(testFairValueConfig(), l); v != nil {
		t.Errorf("computeFairValue with nil year = %v, want nil", v)
	}
}

func TestComputeFairValueBaseline(t *testing.T) {
	l := models.NormalizedListing{Year: intp(2012), Model: "Cayman", Mileage: intp(60000)}
	v := computeFairValue(testFairValueConfig(), l)
	if v == nil {
		t.Fatal("computeFairValue = nil, want a value")
	}
	// base 30500, year delta 0, no S premium, mileage 60k bucket -500.
	want := 30500 - 500
	if *v != want {
		t.Errorf("computeFairValue = %d, want %d", *v, want)
	}
}

func TestComputeFairValueSTrimPremium(t *testing.T) {
	l := models.NormalizedListing{Year: intp(2012), Model: "911", Trim: "S", Mileage: intp(40000)}
	v := computeFairValue(testFairValueConfig(), l)
	want := 30500 + 7000 // mileage 40k bucket is 0
	if v == nil || *v != want {
		t.Errorf("computeFairValue = %v, want %d", v, want)
	}
}

func TestComputeFairValueYearStepOlderAndNewer(t *testing.T) {
	cfg := testFairValueConfig()
	older := models.NormalizedListing{Year: intp(2008), Mileage: intp(40000)}
	newer := models.NormalizedListing{Year: intp(2016), Mileage: intp(40000)}

	vOlder := computeFairValue(cfg, older)
	vNewer := computeFairValue(cfg, newer)
	if vOlder == nil || vNewer == nil {
		t.Fatal("computeFairValue returned nil")
	}
	// 2012 - 2008 = 4 steps of +500 vs 2012 - 2016 = -4 steps of +500.
	if *vOlder-*vNewer != 8*cfg.YearStepUSD {
		t.Errorf("year step spread = %d, want %d", *vOlder-*vNewer, 8*cfg.YearStepUSD)
	}
}

func TestMileageAdjustmentBuckets(t *testing.T) {
	cases := []struct {
		mileage int
		want    int
	}{
		{20000, 1000},
		{49999, 0},
		{74999, -500},
		{100000, -1500},
	}
	for _, c := range cases {
		if got := mileageAdjustment(intp(c.mileage)); got != c.want {
			t.Errorf("mileageAdjustment(%d) = %d, want %d", c.mileage, got, c.want)
		}
	}
	if got := mileageAdjustment(nil); got != 0 {
		t.Errorf("mileageAdjustment(nil) = %d, want 0", got)
	}
}

func TestColorPremiumCaseInsensitiveSubstring(t *testing.T) {
	table := map[string]int{"guards red": 500}
	if got := colorPremium(table, "Guards Red Metallic"); got != 500 {
		t.Errorf("colorPremium = %d, want 500", got)
	}
	if got := colorPremium(table, "Black"); got != 0 {
		t.Errorf("colorPremium unmatched = %d, want 0", got)
	}
	if got := colorPremium(table, "Unknown"); got != 0 {
		t.Errorf("colorPremium(Unknown) = %d, want 0", got)
	}
}

func TestIsSTrim(t *testing.T) {
	if !isSTrim(models.NormalizedListing{Trim: "S"}) {
		t.Error("isSTrim(Trim=S) = false, want true")
	}
	if !isSTrim(models.NormalizedListing{Model: "911 S"}) {
		t.Error("isSTrim(Model contains S) = false, want true")
	}
	if isSTrim(models.NormalizedListing{Trim: "Base", Model: "911"}) {
		t.Error("isSTrim(Base) = true, want false")
	}
}
