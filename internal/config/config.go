// Package config defines the TOML-backed configuration schema (spec §6) and
// loads it the way the teacher's internal/config/config.go loads
// config.json: an always-populated Default(), a Load(path) that decodes on
// top of it, and an explicit Validate() called once at CLI startup.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/rkaplan/x987scout/internal/options"
	"github.com/rkaplan/x987scout/internal/vehicles"
)

// PricingMode selects whether the fair_value stage runs.
type PricingMode string

const (
	PricingMSRPOnly PricingMode = "msrp_only"
	PricingCurrent  PricingMode = "current"
)

// Config is the full decoded x987scout.toml document.
type Config struct {
	PricingMode PricingMode `toml:"pricing_mode"`

	Search             SearchConfig                       `toml:"search"`
	Scraping           ScrapingConfig                      `toml:"scraping"`
	FairValue          FairValueConfig                     `toml:"fair_value"`
	OptionsV2          OptionsV2Config                      `toml:"options_v2"`
	OptionsPerGeneration map[string]map[string]GenerationOverrides `toml:"options_per_generation"`
	Vehicles           VehiclesConfig                       `toml:"vehicles"`
	Pipeline           PipelineConfig                       `toml:"pipeline"`
}

// SearchConfig is the collection stage's input.
type SearchConfig struct {
	URLs []string `toml:"urls"`
}

// ScrapingConfig controls the universal VDP scraper and collection browser.
type ScrapingConfig struct {
	Concurrency     int  `toml:"concurrency"`
	PoliteDelayMS   int  `toml:"polite_delay_ms"`
	CapListings     int  `toml:"cap_listings"`
	TimeoutSeconds  int  `toml:"timeout_seconds"`
	Headful         bool `toml:"headful"`
	CaptureRawHTML  bool `toml:"capture_raw_html"`
	CaptureDOMText  bool `toml:"capture_dom_text"`
	ChromePath      string `toml:"chrome_path"`
	UserAgent       string `toml:"user_agent"`
}

// FairValueConfig is the pricing-model input to the fair_value stage.
type FairValueConfig struct {
	BaseValueUSD          int            `toml:"base_value_usd"`
	YearStepUSD           int            `toml:"year_step_usd"`
	SPremiumUSD           int            `toml:"s_premium_usd"`
	ExteriorColorUSD      map[string]int `toml:"exterior_color_usd"`
	InteriorColorUSD      map[string]int `toml:"interior_color_usd"`
	SpecialTrimPremiums   map[string]int `toml:"special_trim_premiums"`
}

// OptionsV2Config drives the option detector/valuation stage.
type OptionsV2Config struct {
	Enabled              bool           `toml:"enabled"`
	ConfidenceThreshold  float64        `toml:"confidence_threshold"`
	MaxOptionsDisplay    int            `toml:"max_options_display"`
	MSRPCatalog          map[string]int `toml:"msrp_catalog"`
}

// GenerationOverrides is one `options_per_generation.<Model>.<Code>` table.
type GenerationOverrides struct {
	MSRP map[string]int `toml:"msrp"`
}

// VehiclesConfig carries the configurable model/generation/trim taxonomy.
type VehiclesConfig struct {
	Models map[string]VehicleModelConfig `toml:"models"`
}

type VehicleModelConfig struct {
	Name        string                    `toml:"name"`
	Synonyms    []string                  `toml:"synonyms"`
	Trims       []TrimConfig              `toml:"trims"`
	Generations []GenerationConfig        `toml:"generations"`
}

type TrimConfig struct {
	Name     string   `toml:"name"`
	Synonyms []string `toml:"synonyms"`
}

type GenerationConfig struct {
	Code  string          `toml:"code"`
	Years YearRangeConfig `toml:"years"`
	Trims []TrimConfig    `toml:"trims"`
}

type YearRangeConfig struct {
	Min int `toml:"min"`
	Max int `toml:"max"`
}

// PipelineConfig controls artifact output.
type PipelineConfig struct {
	OutputDirectory      string `toml:"output_directory"`
	CreateSeparateFiles  bool   `toml:"create_separate_files"`
	RawCSVName           string `toml:"raw_csv_name"`
	TransformedCSVName   string `toml:"transformed_csv_name"`
	OptionsCSVName       string `toml:"options_csv_name"`
}

// Default returns a fully populated Config before any file is read,
// mirroring the teacher's config.GetDefaultConfig().
func Default() *Config {
	return &Config{
		PricingMode: PricingCurrent,
		Search:      SearchConfig{URLs: nil},
		Scraping: ScrapingConfig{
			Concurrency:    1,
			PoliteDelayMS:  1000,
			CapListings:    0,
			TimeoutSeconds: 45,
			Headful:        true,
		},
		FairValue: FairValueConfig{
			BaseValueUSD: 30500,
			YearStepUSD:  500,
			SPremiumUSD:  7000,
			ExteriorColorUSD: map[string]int{
				"guards red": 500,
				"black":      300,
				"white":      200,
			},
			InteriorColorUSD: map[string]int{
				"black": 200,
				"red":   300,
			},
		},
		OptionsV2: OptionsV2Config{
			Enabled:             true,
			ConfidenceThreshold: 0.5,
			MaxOptionsDisplay:   10,
			MSRPCatalog:         map[string]int{},
		},
		Vehicles: VehiclesConfig{Models: map[string]VehicleModelConfig{}},
		Pipeline: PipelineConfig{
			OutputDirectory:     "x987-data/results",
			CreateSeparateFiles: true,
			RawCSVName:          "scraping_detailed",
			TransformedCSVName:  "transformed_data",
			OptionsCSVName:      "options_detected",
		},
	}
}

// Load decodes path on top of Default(), then applies .env overrides from
// the current working directory (if present) the way the original's config/manager.py
// layers environment variables over file defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides reads an optional .env file (godotenv) and layers a
// small set of X987_-prefixed environment variables over the TOML-decoded
// config, with environment always winning - the override order A.3
// describes.
func applyEnvOverrides(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("X987_CHROME_PATH"); v != "" {
		cfg.Scraping.ChromePath = v
	}
	if v := os.Getenv("X987_HEADFUL"); v == "1" || v == "true" {
		cfg.Scraping.Headful = true
	} else if v == "0" || v == "false" {
		cfg.Scraping.Headful = false
	}
	if v := os.Getenv("X987_OUTPUT_DIR"); v != "" {
		cfg.Pipeline.OutputDirectory = v
	}
}

// Validate checks the config shape the original's schema.py enforces before
// any stage runs (SPEC_FULL §C.4): a recognized pricing_mode and a
// structurally sound vehicle taxonomy.
func (c *Config) Validate() error {
	switch c.PricingMode {
	case PricingMSRPOnly, PricingCurrent:
	default:
		return fmt.Errorf("invalid pricing_mode %q: must be %q or %q", c.PricingMode, PricingMSRPOnly, PricingCurrent)
	}

	for name, m := range c.Vehicles.Models {
		for _, g := range m.Generations {
			if g.Years.Min != 0 && g.Years.Max != 0 && g.Years.Min > g.Years.Max {
				return fmt.Errorf("vehicles.models.%s generation %s: years.min > years.max", name, g.Code)
			}
		}
	}

	return nil
}

// BuildCatalog converts the decoded vehicle taxonomy into a
// *vehicles.Catalog, falling back to an empty catalog when no
// `[vehicles.models]` table is configured.
func (c *Config) BuildCatalog() *vehicles.Catalog {
	models := make([]vehicles.Model, 0, len(c.Vehicles.Models))
	for key, m := range c.Vehicles.Models {
		name := m.Name
		if name == "" {
			name = key
		}
		vm := vehicles.Model{
			Name:     name,
			Synonyms: m.Synonyms,
			Trims:    convertTrims(m.Trims),
		}
		for _, g := range m.Generations {
			vm.Generations = append(vm.Generations, vehicles.Generation{
				Code:    g.Code,
				MinYear: g.Years.Min,
				MaxYear: g.Years.Max,
				Trims:   convertTrims(g.Trims),
			})
		}
		models = append(models, vm)
	}
	return vehicles.New(models)
}

func convertTrims(in []TrimConfig) []vehicles.Trim {
	out := make([]vehicles.Trim, 0, len(in))
	for _, t := range in {
		out = append(out, vehicles.Trim{Name: t.Name, Synonyms: t.Synonyms})
	}
	return out
}

// BuildOverrideTable converts options_per_generation into the
// options.OverrideTable shape.
func (c *Config) BuildOverrideTable() options.OverrideTable {
	table := make(options.OverrideTable, len(c.OptionsPerGeneration))
	for model, gens := range c.OptionsPerGeneration {
		genMap := make(map[string]map[string]int, len(gens))
		for code, overrides := range gens {
			genMap[code] = overrides.MSRP
		}
		table[model] = genMap
	}
	return table
}
