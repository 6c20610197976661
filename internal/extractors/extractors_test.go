package extractors

import "testing"

func TestYearExtractorRange(t *testing.T) {
	ye := NewYearExtractor()

	cases := []struct {
		text string
		want *int
	}{
		{"This is a 2010 Porsche Cayman S", intp(2010)},
		{"Year: 2015", intp(2015)},
		{"Porsche 2007 Boxster", intp(2007)},
		{"Built in 1989, a classic", nil}, // below range
		{"The year 2030 model", nil},      // above range
	}

	for _, c := range cases {
		res := ye.Extract(c.text, nil)
		if c.want == nil {
			if res != nil {
				t.Errorf("Extract(%q) = %d, want nil", c.text, res.Value)
			}
			continue
		}
		if res == nil || res.Value != *c.want {
			t.Errorf("Extract(%q) = %v, want %d", c.text, res, *c.want)
		}
	}
}

func TestPriceExtractorRangeAndLowerBound(t *testing.T) {
	pe := NewPriceExtractor()

	res := pe.Extract("Asking $30,000 - $35,000 OBO", nil)
	if res == nil || res.Value != 30000 {
		t.Fatalf("Extract range = %v, want 30000", res)
	}

	if res := pe.Extract("just $500 firm", nil); res != nil {
		t.Errorf("Extract below range = %v, want nil", res)
	}
	if res := pe.Extract("a $900,000 supercar", nil); res != nil {
		t.Errorf("Extract above range = %v, want nil", res)
	}
}

func TestMileageExtractorKmConversion(t *testing.T) {
	me := NewMileageExtractor()

	res := me.Extract("Odometer reads 50,000 km", nil)
	if res == nil {
		t.Fatal("Extract km = nil")
	}
	want := 31069 // 50,000 km * 0.621371 = 31068.55, rounded
	if res.Value != want {
		t.Errorf("Extract km = %d, want %d", res.Value, want)
	}

	res2 := me.Extract("103,617 miles on it", nil)
	if res2 == nil || res2.Value != 103617 {
		t.Errorf("Extract miles = %v, want 103617", res2)
	}
}

func TestModelTrimExtractorDefensive2Door(t *testing.T) {
	mte := NewModelTrimExtractor()

	model, trim := mte.ExtractSeparate("2010 Cayman 2dr Coupe")
	if model != "Cayman" || trim != "Base" {
		t.Errorf("ExtractSeparate 2dr = (%q, %q), want (Cayman, Base)", model, trim)
	}

	model, trim = mte.ExtractSeparate("Beautiful Cayman S with low miles")
	if model != "Cayman" || trim != "S" {
		t.Errorf("ExtractSeparate Cayman S = (%q, %q), want (Cayman, S)", model, trim)
	}

	model, trim = mte.ExtractSeparate("no vehicle info here")
	if model != "Unknown" || trim != "Base" {
		t.Errorf("ExtractSeparate no match = (%q, %q), want (Unknown, Base)", model, trim)
	}
}

func TestColorsExtractorLabeledAndFallback(t *testing.T) {
	ce := NewColorsExtractor()

	ext, intr := ce.ExtractColors("Exterior color: Guards Red\nInterior color: Black Leather\nOther stuff")
	if ext != "Guards Red" {
		t.Errorf("exterior = %q, want Guards Red", ext)
	}
	if intr != "Black" {
		t.Errorf("interior = %q, want Black", intr)
	}

	// The single-word fallback pattern list is tried before the compound
	// "Arctic Silver"-style list, so a plain color word wins when both
	// could match.
	ext2, intr2 := ce.ExtractColors("A stunning Arctic Silver example with Tan seats")
	if ext2 != "Silver" {
		t.Errorf("fallback exterior = %q, want Silver", ext2)
	}
	if intr2 != "Tan" {
		t.Errorf("fallback interior = %q, want Tan", intr2)
	}
}

func TestSourceExtractorURLMapping(t *testing.T) {
	se := NewSourceExtractor()

	if got := se.ExtractFromURL("https://www.cars.com/vehicledetail/123"); got != "Cars.com" {
		t.Errorf("ExtractFromURL cars.com = %q, want Cars.com", got)
	}
	if got := se.ExtractFromURL("https://www.someobscuresite.biz/listing"); got != "Someobscuresite.Biz" {
		t.Errorf("ExtractFromURL fallback = %q, want title-cased hostname", got)
	}
	// The "Listed on" pattern's capture group is greedy over letters and
	// spaces, so it picks up the rest of the sentence rather than just the
	// site name - this mirrors the original pattern's behavior.
	if got := se.ExtractFromText("Listed on Carvana"); got != "Carvana" {
		t.Errorf("ExtractFromText = %q, want Carvana", got)
	}
}

func TestDealQualityBuckets(t *testing.T) {
	cases := []struct {
		delta int
		want  string
	}{
		{5000, "Excellent"},
		{2000, "Good"},
		{0, "Fair"},
		{-1999, "Overpriced"},
		{-2001, "Very Overpriced"},
	}
	for _, c := range cases {
		d := c.delta
		got := DealQualityFor(&d)
		if string(got) != c.want {
			t.Errorf("DealQualityFor(%d) = %s, want %s", c.delta, got, c.want)
		}
	}
	if got := DealQualityFor(nil); string(got) != "Unknown" {
		t.Errorf("DealQualityFor(nil) = %s, want Unknown", got)
	}
}

func intp(v int) *int { return &v }
