package vehicles

import "testing"

func testCatalogFixture() *Catalog {
	return New([]Model{
		{
			Name:     "Cayman",
			Synonyms: []string{"Cayman"},
			Generations: []Generation{
				{
					Code:    "987.1",
					MinYear: 2006,
					MaxYear: 2008,
					Trims:   []Trim{{Name: "Base"}, {Name: "S", Synonyms: []string{"S"}}},
				},
				{
					Code:    "987.2",
					MinYear: 2009,
					MaxYear: 2012,
					Trims:   []Trim{{Name: "Base"}, {Name: "S", Synonyms: []string{"S"}}},
				},
			},
		},
		{
			Name:     "911",
			Synonyms: []string{"911", "Carrera"},
			Generations: []Generation{
				{
					Code:    "997.2",
					MinYear: 2009,
					MaxYear: 2012,
					Trims:   []Trim{{Name: "Carrera"}, {Name: "Carrera 4S", Synonyms: []string{"Carrera 4S", "4S"}}},
				},
			},
		},
	})
}

func TestDetectModelAndTrimMatchesModelAndYearScopedTrim(t *testing.T) {
	c := testCatalogFixture()
	model, trim := c.DetectModelAndTrim("2011 Porsche Cayman S low miles", intp(2011))
	if model != "Cayman" || trim != "S" {
		t.Errorf("DetectModelAndTrim = (%q, %q), want (Cayman, S)", model, trim)
	}
}

func TestDetectModelAndTrimPrefersLongerSynonym(t *testing.T) {
	c := testCatalogFixture()
	model, trim := c.DetectModelAndTrim("2011 Porsche 911 Carrera 4S", intp(2011))
	if model != "911" || trim != "Carrera 4S" {
		t.Errorf("DetectModelAndTrim = (%q, %q), want (911, Carrera 4S)", model, trim)
	}
}

func TestDetectModelAndTrimNoMatch(t *testing.T) {
	c := testCatalogFixture()
	model, trim := c.DetectModelAndTrim("a sedan with four doors", intp(2011))
	if model != "" || trim != "" {
		t.Errorf("DetectModelAndTrim = (%q, %q), want empty/empty", model, trim)
	}
}

func TestDetectModelAndTrimEmptyText(t *testing.T) {
	c := testCatalogFixture()
	model, trim := c.DetectModelAndTrim("", intp(2011))
	if model != "" || trim != "" {
		t.Errorf("DetectModelAndTrim(\"\") = (%q, %q), want empty/empty", model, trim)
	}
}

func TestDetectModelAndTrimFallsBackWhenYearOutOfRange(t *testing.T) {
	c := testCatalogFixture()
	model, trim := c.DetectModelAndTrim("Porsche Cayman S", intp(1999))
	if model != "Cayman" || trim != "S" {
		t.Errorf("DetectModelAndTrim = (%q, %q), want (Cayman, S) from the generation union fallback", model, trim)
	}
}

func TestGenerationCodeResolvesYearRange(t *testing.T) {
	c := testCatalogFixture()
	if got := c.GenerationCode("Cayman", 2010); got != "987.2" {
		t.Errorf("GenerationCode(Cayman, 2010) = %q, want 987.2", got)
	}
	if got := c.GenerationCode("Cayman", 2007); got != "987.1" {
		t.Errorf("GenerationCode(Cayman, 2007) = %q, want 987.1", got)
	}
}

func TestGenerationCodeUnknownModelOrYear(t *testing.T) {
	c := testCatalogFixture()
	if got := c.GenerationCode("Boxster", 2010); got != "" {
		t.Errorf("GenerationCode(unknown model) = %q, want empty", got)
	}
	if got := c.GenerationCode("Cayman", 1990); got != "" {
		t.Errorf("GenerationCode(out-of-range year) = %q, want empty", got)
	}
	if got := c.GenerationCode("", 2010); got != "" {
		t.Errorf("GenerationCode(empty model) = %q, want empty", got)
	}
	if got := c.GenerationCode("Cayman", 0); got != "" {
		t.Errorf("GenerationCode(zero year) = %q, want empty", got)
	}
}

func TestGenerationCodeIsCaseInsensitive(t *testing.T) {
	c := testCatalogFixture()
	if got := c.GenerationCode("cayman", 2010); got != "987.2" {
		t.Errorf("GenerationCode(lowercase model) = %q, want 987.2", got)
	}
}

func TestModelNames(t *testing.T) {
	c := testCatalogFixture()
	got := c.ModelNames()
	if len(got) != 2 || got[0] != "Cayman" || got[1] != "911" {
		t.Errorf("ModelNames() = %v, want [Cayman 911] in declaration order", got)
	}
}

func intp(v int) *int { return &v }
