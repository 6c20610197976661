package steps

import (
	"testing"

	"github.com/rkaplan/x987scout/internal/vehicles"
)

func testCatalog() *vehicles.Catalog {
	return vehicles.New([]vehicles.Model{
		{
			Name: "Cayman",
			Generations: []vehicles.Generation{
				{
					Code:    "987.2",
					MinYear: 2009,
					MaxYear: 2012,
					Trims:   []vehicles.Trim{{Name: "Base"}, {Name: "S"}},
				},
			},
		},
	})
}

func TestBuildGenerationCatalogWithoutOverrides(t *testing.T) {
	out := buildGenerationCatalog(testCatalog(), nil, nil)
	if len(out.Models) != 1 || out.Models[0].Name != "Cayman" {
		t.Fatalf("unexpected models: %+v", out.Models)
	}
	gen := out.Models[0].Generations[0]
	if gen.Key != "Cayman-987.2" {
		t.Errorf("Key = %q, want Cayman-987.2", gen.Key)
	}
	if gen.YearsMin != 2009 || gen.YearsMax != 2012 {
		t.Errorf("year range = [%d,%d], want [2009,2012]", gen.YearsMin, gen.YearsMax)
	}
	if len(gen.Trims) != 2 || gen.Trims[0] != "Base" || gen.Trims[1] != "S" {
		t.Errorf("Trims = %v, want [Base S]", gen.Trims)
	}
	if !gen.OptionsDefault {
		t.Error("OptionsDefault = false, want true when no overrides configured")
	}
	if len(gen.Options) != 0 {
		t.Errorf("Options = %v, want empty", gen.Options)
	}
}

func TestBuildGenerationCatalogWithOverrides(t *testing.T) {
	overrides := map[string]map[string]map[string]int{
		"Cayman": {"987.2": {"sport_chrono": 1850}},
	}
	idToDisplay := map[string]string{"sport_chrono": "Sport Chrono Package"}

	out := buildGenerationCatalog(testCatalog(), overrides, idToDisplay)
	gen := out.Models[0].Generations[0]

	if gen.OptionsDefault {
		t.Error("OptionsDefault = true, want false when overrides are present")
	}
	if len(gen.Options) != 1 {
		t.Fatalf("Options = %v, want 1 entry", gen.Options)
	}
	opt := gen.Options[0]
	if opt.ID != "sport_chrono" || opt.Display != "Sport Chrono Package" {
		t.Errorf("option = %+v, want sport_chrono/Sport Chrono Package", opt)
	}
	if opt.MSRP == nil || *opt.MSRP != 1850 {
		t.Errorf("MSRP = %v, want 1850", opt.MSRP)
	}
}

func TestBuildGenerationCatalogFallsBackToIDWhenDisplayMissing(t *testing.T) {
	overrides := map[string]map[string]map[string]int{
		"Cayman": {"987.2": {"unknown_option": 500}},
	}
	out := buildGenerationCatalog(testCatalog(), overrides, nil)
	opt := out.Models[0].Generations[0].Options[0]
	if opt.Display != "unknown_option" {
		t.Errorf("Display = %q, want fallback to ID", opt.Display)
	}
}
