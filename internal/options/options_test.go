package options

import "testing"

func testDetector() *Detector {
	return NewDetector(Definition{
		ID:              "test_opt",
		Display:         "Test Option",
		Category:        CategoryPerformance,
		ValueUSD:        1000,
		Patterns:        []string{`\bfoo\s+bar\b`},
		StandardOnTrims: []string{"GTS"},
	})
}

func TestIsStandardOnCaseInsensitive(t *testing.T) {
	d := testDetector()
	if !d.IsStandardOn("gts") {
		t.Error("IsStandardOn(gts) = false, want true (case-insensitive match)")
	}
	if d.IsStandardOn("Base") {
		t.Error("IsStandardOn(Base) = true, want false")
	}
	if d.IsStandardOn("") {
		t.Error("IsStandardOn(\"\") = true, want false")
	}
}

func TestIsPresentMatchesPattern(t *testing.T) {
	d := testDetector()
	if !d.IsPresent("this has a foo bar in it", "Base") {
		t.Error("IsPresent() = false, want true for matching text")
	}
	if d.IsPresent("no match here", "Base") {
		t.Error("IsPresent() = true, want false for non-matching text")
	}
	if d.IsPresent("", "Base") {
		t.Error("IsPresent(\"\") = true, want false")
	}
}

func TestIsPresentSuppressedOnStandardTrim(t *testing.T) {
	d := testDetector()
	if d.IsPresent("this has a foo bar in it", "GTS") {
		t.Error("IsPresent() = true, want false when the option is standard on this trim")
	}
}

func TestResolveValueFallsBackToMSRPCatalog(t *testing.T) {
	got := ResolveValue("sport_chrono", "Cayman", 2011, nil, nil, map[string]int{"sport_chrono": 1850})
	if got != 1850 {
		t.Errorf("ResolveValue = %d, want 1850 from the MSRP catalog", got)
	}
}

func TestResolveValueFallsBackToDefault(t *testing.T) {
	got := ResolveValue("unknown_option", "Cayman", 2011, nil, nil, nil)
	if got != DefaultOptionValueUSD {
		t.Errorf("ResolveValue = %d, want default %d", got, DefaultOptionValueUSD)
	}
}

type stubResolver struct{ code string }

func (s stubResolver) GenerationCode(model string, year int) string { return s.code }

func TestResolveValuePrefersPerGenerationOverride(t *testing.T) {
	overrides := OverrideTable{
		"Cayman": {"987.2": {"sport_chrono": 2200}},
	}
	got := ResolveValue("sport_chrono", "Cayman", 2011, stubResolver{code: "987.2"}, overrides, map[string]int{"sport_chrono": 1850})
	if got != 2200 {
		t.Errorf("ResolveValue = %d, want 2200 from the per-generation override", got)
	}
}

func TestResolveValueSkipsOverrideTierWithoutModelOrYear(t *testing.T) {
	overrides := OverrideTable{
		"Cayman": {"987.2": {"sport_chrono": 2200}},
	}
	got := ResolveValue("sport_chrono", "", 2011, stubResolver{code: "987.2"}, overrides, map[string]int{"sport_chrono": 1850})
	if got != 1850 {
		t.Errorf("ResolveValue = %d, want the MSRP-catalog tier when model is unknown", got)
	}
}

func TestDetectAggregatesPresentOptions(t *testing.T) {
	text := "Loaded with Sport Chrono package and PASM suspension."
	got := Detect(text, "S", "Cayman", 2011, Default(), stubResolver{code: "987.2"}, nil, map[string]int{"639/640": 1850})

	if len(got.Detected) < 2 {
		t.Fatalf("Detected = %+v, want at least Sport Chrono and PASM", got.Detected)
	}
	var sawChrono bool
	for _, o := range got.Detected {
		if o.ID == "639/640" {
			sawChrono = true
			if o.MSRPUSD != 1850 {
				t.Errorf("Sport Chrono MSRPUSD = %d, want 1850 from the catalog", o.MSRPUSD)
			}
		}
	}
	if !sawChrono {
		t.Error("Detect() did not find the Sport Chrono package in matching text")
	}
	if got.TotalValueUSD == 0 {
		t.Error("TotalValueUSD = 0, want a positive sum across detected options")
	}
}

func TestDetectEmptyTextFindsNothing(t *testing.T) {
	got := Detect("", "Base", "Cayman", 2011, Default(), nil, nil, nil)
	if len(got.Detected) != 0 {
		t.Errorf("Detect(\"\") found %d options, want 0", len(got.Detected))
	}
}

func TestRegistryLookups(t *testing.T) {
	r := Default()
	if r.Count() == 0 {
		t.Fatal("Default() registry has no detectors")
	}
	d := r.ByID("639/640")
	if d == nil || d.Display() != "Sport Chrono Package Plus" {
		t.Errorf("ByID(639/640) = %v, want the Sport Chrono detector", d)
	}
	if r.ByID("does-not-exist") != nil {
		t.Error("ByID(unknown) = non-nil, want nil")
	}
	perf := r.ByCategory(CategoryPerformance)
	if len(perf) == 0 {
		t.Error("ByCategory(performance) = empty, want at least Sport Chrono")
	}
}
