package config

import "testing"

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsUnknownPricingMode(t *testing.T) {
	cfg := Default()
	cfg.PricingMode = "made_up_mode"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil, want an error for an unrecognized pricing_mode")
	}
}

func TestValidateRejectsInvertedYearRange(t *testing.T) {
	cfg := Default()
	cfg.Vehicles.Models = map[string]VehicleModelConfig{
		"cayman": {
			Name: "Cayman",
			Generations: []GenerationConfig{
				{Code: "987.2", Years: YearRangeConfig{Min: 2012, Max: 2009}},
			},
		},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil, want an error when years.min > years.max")
	}
}

func TestValidateAllowsUnboundedYearRange(t *testing.T) {
	cfg := Default()
	cfg.Vehicles.Models = map[string]VehicleModelConfig{
		"911": {
			Name: "911",
			Generations: []GenerationConfig{
				{Code: "992", Years: YearRangeConfig{Min: 2020, Max: 0}},
			},
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for an open-ended (max=0) generation", err)
	}
}

func TestBuildCatalogUsesKeyWhenNameMissing(t *testing.T) {
	cfg := Default()
	cfg.Vehicles.Models = map[string]VehicleModelConfig{
		"cayman": {
			Synonyms: []string{"Cayman"},
			Generations: []GenerationConfig{
				{Code: "987.2", Years: YearRangeConfig{Min: 2009, Max: 2012},
					Trims: []TrimConfig{{Name: "S", Synonyms: []string{"S"}}}},
			},
		},
	}
	catalog := cfg.BuildCatalog()
	models := catalog.Models()
	if len(models) != 1 || models[0].Name != "cayman" {
		t.Fatalf("BuildCatalog() models = %+v, want name to fall back to the map key", models)
	}
	if got := models[0].Generations[0].MinYear; got != 2009 {
		t.Errorf("MinYear = %d, want 2009", got)
	}
	if len(models[0].Generations[0].Trims) != 1 || models[0].Generations[0].Trims[0].Name != "S" {
		t.Errorf("Trims = %+v, want [S]", models[0].Generations[0].Trims)
	}
}

func TestBuildCatalogPrefersExplicitName(t *testing.T) {
	cfg := Default()
	cfg.Vehicles.Models = map[string]VehicleModelConfig{
		"cayman": {Name: "Cayman"},
	}
	models := cfg.BuildCatalog().Models()
	if models[0].Name != "Cayman" {
		t.Errorf("Name = %q, want explicit Cayman over the map key", models[0].Name)
	}
}

func TestBuildCatalogEmptyWhenNoModelsConfigured(t *testing.T) {
	cfg := Default()
	if got := cfg.BuildCatalog().Models(); len(got) != 0 {
		t.Errorf("BuildCatalog() = %v, want empty when vehicles.models is unset", got)
	}
}

func TestBuildOverrideTableConvertsNestedMSRP(t *testing.T) {
	cfg := Default()
	cfg.OptionsPerGeneration = map[string]map[string]GenerationOverrides{
		"Cayman": {
			"987.2": {MSRP: map[string]int{"sport_chrono": 1850}},
		},
	}
	table := cfg.BuildOverrideTable()
	if got := table["Cayman"]["987.2"]["sport_chrono"]; got != 1850 {
		t.Errorf("table[Cayman][987.2][sport_chrono] = %d, want 1850", got)
	}
}

func TestBuildOverrideTableEmptyWhenUnconfigured(t *testing.T) {
	cfg := Default()
	if got := cfg.BuildOverrideTable(); len(got) != 0 {
		t.Errorf("BuildOverrideTable() = %v, want empty", got)
	}
}
