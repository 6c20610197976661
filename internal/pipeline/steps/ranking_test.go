package steps

import (
	"testing"

	"github.com/rkaplan/x987scout/internal/models"
)

func TestCompositeScoreBaseTerms(t *testing.T) {
	v := models.ValuedListing{
		NormalizedListing: models.NormalizedListing{Year: intp(2012), Mileage: intp(50000), Model: "Cayman"},
		DealDeltaUSD:      intp(3000),
	}
	got := compositeScore(v)
	want := 0.1*3000 + 0.01*2012 + 0.0001*(100000-50000)
	if diff := got - want; diff > 0.001 || diff < -0.001 {
		t.Errorf("compositeScore = %v, want %v", got, want)
	}
}

func TestCompositeScoreSModelAndManualBonus(t *testing.T) {
	base := models.ValuedListing{NormalizedListing: models.NormalizedListing{Model: "Cayman", ModelTrim: "Cayman"}}
	sModel := models.ValuedListing{NormalizedListing: models.NormalizedListing{Model: "Cayman", Trim: "S", ModelTrim: "Cayman S"}}
	manual := models.ValuedListing{NormalizedListing: models.NormalizedListing{Model: "Cayman", ModelTrim: "Cayman", Transmission: "6-Speed Manual"}}

	if got := compositeScore(sModel) - compositeScore(base); got != 1000 {
		t.Errorf("S-model bonus = %v, want 1000", got)
	}
	if got := compositeScore(manual) - compositeScore(base); got != 500 {
		t.Errorf("manual-transmission bonus = %v, want 500", got)
	}
}

func TestCompositeScoreBareModelWithLowercaseSGetsNoBonus(t *testing.T) {
	v := models.ValuedListing{NormalizedListing: models.NormalizedListing{Model: "Boxster", ModelTrim: "Boxster"}}
	if got := compositeScore(v); got != 0 {
		t.Errorf("compositeScore(base Boxster) = %v, want 0 (no case-insensitive S match on bare model)", got)
	}
}

func TestCompositeScoreNilFieldsContributeNothing(t *testing.T) {
	v := models.ValuedListing{NormalizedListing: models.NormalizedListing{Model: "Boxster"}}
	if got := compositeScore(v); got != 0 {
		t.Errorf("compositeScore with all nils = %v, want 0", got)
	}
}

func rankedFromDelta(url string, delta, year, mileage int) models.RankedListing {
	return models.RankedListing{ValuedListing: models.ValuedListing{
		NormalizedListing: models.NormalizedListing{ListingURL: url, Year: intp(year), Mileage: intp(mileage)},
		DealDeltaUSD:      intp(delta),
	}}
}

func TestIdentifyTopDealsOverallCappedAtFive(t *testing.T) {
	ranked := make([]models.RankedListing, 0, 8)
	for i := 0; i < 8; i++ {
		ranked = append(ranked, rankedFromDelta("u", 1000, 2010, 40000))
	}
	top := identifyTopDeals(ranked)
	if len(top.Overall) != 5 {
		t.Errorf("top.Overall has %d entries, want 5", len(top.Overall))
	}
}

func TestIdentifyTopDealsBestDealIsHighestDelta(t *testing.T) {
	ranked := []models.RankedListing{
		rankedFromDelta("low", 500, 2010, 40000),
		rankedFromDelta("high", 9000, 2010, 40000),
		rankedFromDelta("mid", 3000, 2010, 40000),
	}
	top := identifyTopDeals(ranked)
	if top.BestDeal == nil || top.BestDeal.ListingURL != "high" {
		t.Errorf("BestDeal = %v, want the 9000-delta listing", top.BestDeal)
	}
}

func TestIdentifyTopDealsManualAndAutomaticPicks(t *testing.T) {
	manual := rankedFromDelta("manual-car", 1000, 2011, 40000)
	manual.Transmission = "6-Speed Manual"
	auto := rankedFromDelta("auto-car", 1000, 2011, 40000)
	auto.Transmission = "PDK Automatic"

	top := identifyTopDeals([]models.RankedListing{manual, auto})
	if top.BestManual == nil || top.BestManual.ListingURL != "manual-car" {
		t.Errorf("BestManual = %v, want manual-car", top.BestManual)
	}
	if top.BestAutomatic == nil || top.BestAutomatic.ListingURL != "auto-car" {
		t.Errorf("BestAutomatic = %v, want auto-car", top.BestAutomatic)
	}
}

func TestCategoryRankingsOrdering(t *testing.T) {
	ranked := []models.RankedListing{
		rankedFromDelta("a", 1000, 2005, 80000),
		rankedFromDelta("b", 2000, 2015, 10000),
	}
	byCat := categoryRankings(ranked)

	if byCat["year"][0].ListingURL != "b" {
		t.Errorf("byYear[0] = %q, want b (newest first)", byCat["year"][0].ListingURL)
	}
	if byCat["mileage"][0].ListingURL != "b" {
		t.Errorf("byMileage[0] = %q, want b (lowest first)", byCat["mileage"][0].ListingURL)
	}
	if byCat["deal_delta"][0].ListingURL != "b" {
		t.Errorf("byDealDelta[0] = %q, want b (highest delta first)", byCat["deal_delta"][0].ListingURL)
	}
}

func TestScoreDistributionRowsBuckets(t *testing.T) {
	ranked := []models.RankedListing{
		{CompositeScore: 9000},
		{CompositeScore: 6500},
		{CompositeScore: 4500},
		{CompositeScore: 2500},
		{CompositeScore: 100},
	}
	rows := scoreDistributionRows(ranked)
	want := map[string]string{
		"Excellent": "1", "Very Good": "1", "Good": "1", "Fair": "1", "Poor": "1",
	}
	for _, row := range rows {
		if want[row[0]] != row[1] {
			t.Errorf("bucket %q = %q, want %q", row[0], row[1], want[row[0]])
		}
	}
}
