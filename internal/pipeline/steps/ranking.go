package steps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rkaplan/x987scout/internal/csvio"
	"github.com/rkaplan/x987scout/internal/logging"
	"github.com/rkaplan/x987scout/internal/models"
	"github.com/rkaplan/x987scout/internal/pipeline"
)

var rankingLog = logging.New("pipeline.ranking")

// RankingData is the output of the ranking stage.
type RankingData struct {
	Listings   []models.RankedListing
	TopDeals   TopDeals
	ByCategory map[string][]models.RankedListing
}

// TopDeals captures the headline picks the original's _identify_top_deals
// surfaces alongside the full ranking.
type TopDeals struct {
	Overall      []models.RankedListing
	BestDeal     *models.RankedListing
	BestManual   *models.RankedListing
	BestAutomatic *models.RankedListing
	BestValue    *models.RankedListing
}

// RankingStep scores and orders valued listings by the composite deal
// score (spec §4.8).
type RankingStep struct{}

func (RankingStep) Name() string             { return "ranking" }
func (RankingStep) Description() string      { return "Ranks listings by composite deal score" }
func (RankingStep) Dependencies() []string   { return []string{"fair_value"} }
func (RankingStep) RequiredConfig() []string { return nil }

func (RankingStep) Run(rc *pipeline.RunContext, previous map[string]*pipeline.Result) (any, error) {
	fvResult, ok := previous["fair_value"]
	if !ok || !fvResult.IsSuccess() {
		return nil, fmt.Errorf("fair_value step must complete successfully before ranking")
	}
	fvData, _ := fvResult.Data.(FairValueData)

	if len(fvData.Listings) == 0 {
		rankingLog.Warn("no valued data to rank")
		return RankingData{}, nil
	}

	ranked := make([]models.RankedListing, 0, len(fvData.Listings))
	for _, v := range fvData.Listings {
		ranked = append(ranked, models.RankedListing{
			ValuedListing:  v,
			CompositeScore: compositeScore(v),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].CompositeScore > ranked[j].CompositeScore })
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	topDeals := identifyTopDeals(ranked)
	byCategory := categoryRankings(ranked)

	if err := saveRankingResults(rc, ranked, topDeals, byCategory); err != nil {
		rankingLog.Warn("failed to persist ranking artifacts: %v", err)
	}

	rankingLog.Info("ranked %d listings", len(ranked))
	return RankingData{Listings: ranked, TopDeals: topDeals, ByCategory: byCategory}, nil
}

// compositeScore implements spec §4.8's weighted formula exactly:
// 0.1*deal_delta + 0.01*year + 0.0001*(100000-mileage), plus a +1000 S-model
// bonus and a +500 manual-transmission bonus.
func compositeScore(v models.ValuedListing) float64 {
	var score float64

	if v.DealDeltaUSD != nil {
		score += 0.1 * float64(*v.DealDeltaUSD)
	}
	if v.Year != nil {
		score += 0.01 * float64(*v.Year)
	}
	if v.Mileage != nil {
		score += 0.0001 * float64(100000-*v.Mileage)
	}
	if strings.Contains(v.ModelTrim, "S") {
		score += 1000
	}
	if strings.Contains(strings.ToLower(v.Transmission), "manual") {
		score += 500
	}

	return score
}

func identifyTopDeals(ranked []models.RankedListing) TopDeals {
	top := TopDeals{}

	overallCount := 5
	if len(ranked) < overallCount {
		overallCount = len(ranked)
	}
	top.Overall = append(top.Overall, ranked[:overallCount]...)

	byDealDelta := append([]models.RankedListing(nil), ranked...)
	sort.SliceStable(byDealDelta, func(i, j int) bool {
		return dealDeltaOrMin(byDealDelta[i]) > dealDeltaOrMin(byDealDelta[j])
	})
	if len(byDealDelta) > 0 {
		best := byDealDelta[0]
		top.BestDeal = &best
	}

	for i := range ranked {
		l := ranked[i]
		isManual := strings.Contains(strings.ToLower(l.Transmission), "manual")
		if isManual && top.BestManual == nil {
			c := l
			top.BestManual = &c
		}
		if !isManual && top.BestAutomatic == nil {
			c := l
			top.BestAutomatic = &c
		}
	}
	if len(ranked) > 0 {
		best := ranked[0]
		top.BestValue = &best
	}

	return top
}

func dealDeltaOrMin(l models.RankedListing) int {
	if l.DealDeltaUSD == nil {
		return -1 << 31
	}
	return *l.DealDeltaUSD
}

func categoryRankings(ranked []models.RankedListing) map[string][]models.RankedListing {
	byYear := append([]models.RankedListing(nil), ranked...)
	sort.SliceStable(byYear, func(i, j int) bool { return yearOrMin(byYear[i]) > yearOrMin(byYear[j]) })

	byPrice := append([]models.RankedListing(nil), ranked...)
	sort.SliceStable(byPrice, func(i, j int) bool { return priceOrMax(byPrice[i]) < priceOrMax(byPrice[j]) })

	byMileage := append([]models.RankedListing(nil), ranked...)
	sort.SliceStable(byMileage, func(i, j int) bool { return mileageOrMax(byMileage[i]) < mileageOrMax(byMileage[j]) })

	byDealDelta := append([]models.RankedListing(nil), ranked...)
	sort.SliceStable(byDealDelta, func(i, j int) bool {
		return dealDeltaOrMin(byDealDelta[i]) > dealDeltaOrMin(byDealDelta[j])
	})

	return map[string][]models.RankedListing{
		"year":        byYear,
		"price":       byPrice,
		"mileage":     byMileage,
		"deal_delta":  byDealDelta,
	}
}

func yearOrMin(l models.RankedListing) int {
	if l.Year == nil {
		return -1 << 31
	}
	return *l.Year
}

func priceOrMax(l models.RankedListing) int {
	if l.AskingPrice == nil {
		return 1 << 31
	}
	return *l.AskingPrice
}

func mileageOrMax(l models.RankedListing) int {
	if l.Mileage == nil {
		return 1 << 31
	}
	return *l.Mileage
}

func saveRankingResults(rc *pipeline.RunContext, ranked []models.RankedListing, top TopDeals, byCategory map[string][]models.RankedListing) error {
	dir := rc.Config.Pipeline.OutputDirectory
	ts := rc.Timestamp

	mainCols := rankedColumns()
	mainPath := csvio.ArtifactPath(dir, "ranking_main", ts)
	if err := csvio.WriteStructs(mainPath, ranked, mainCols); err != nil {
		return fmt.Errorf("writing %s: %w", mainPath, err)
	}

	topPath := csvio.ArtifactPath(dir, "ranking_top_deals", ts)
	if err := csvio.WriteStructs(topPath, top.Overall, mainCols); err != nil {
		return fmt.Errorf("writing %s: %w", topPath, err)
	}

	for _, category := range []string{"year", "price", "mileage", "deal_delta"} {
		path := csvio.ArtifactPath(dir, fmt.Sprintf("ranking_by_%s", category), ts)
		if err := csvio.WriteStructs(path, byCategory[category], mainCols); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	statsPath := csvio.ArtifactPath(dir, "ranking_statistics", ts)
	if err := csvio.WriteRecords(statsPath, []string{"metric", "value"}, rankingStatisticsRows(ranked)); err != nil {
		return fmt.Errorf("writing %s: %w", statsPath, err)
	}

	distPath := csvio.ArtifactPath(dir, "ranking_score_distribution", ts)
	if err := csvio.WriteRecords(distPath, []string{"bucket", "count"}, scoreDistributionRows(ranked)); err != nil {
		return fmt.Errorf("writing %s: %w", distPath, err)
	}

	rankingLog.Info("wrote ranking artifacts to %s", dir)
	return nil
}

func rankedColumns() []csvio.Column[models.RankedListing] {
	return []csvio.Column[models.RankedListing]{
		{Name: "rank", Value: func(l models.RankedListing) string { return fmt.Sprintf("%d", l.Rank) }},
		{Name: "listing_url", Value: func(l models.RankedListing) string { return l.ListingURL }},
		{Name: "source_url", Value: func(l models.RankedListing) string { return l.SourceURL }},
		{Name: "year", Value: func(l models.RankedListing) string { return csvio.IntOrBlank(l.Year) }},
		{Name: "model", Value: func(l models.RankedListing) string { return l.Model }},
		{Name: "trim", Value: func(l models.RankedListing) string { return l.Trim }},
		{Name: "mileage", Value: func(l models.RankedListing) string { return csvio.IntOrBlank(l.Mileage) }},
		{Name: "transmission", Value: func(l models.RankedListing) string { return l.Transmission }},
		{Name: "asking_price_usd", Value: func(l models.RankedListing) string { return csvio.IntOrBlank(l.AskingPrice) }},
		{Name: "fair_value_usd", Value: func(l models.RankedListing) string { return csvio.IntOrBlank(l.FairValueUSD) }},
		{Name: "deal_delta_usd", Value: func(l models.RankedListing) string { return csvio.IntOrBlank(l.DealDeltaUSD) }},
		{Name: "deal_quality", Value: func(l models.RankedListing) string { return string(l.DealQuality) }},
		{Name: "composite_score", Value: func(l models.RankedListing) string { return csvio.Float(l.CompositeScore, 2) }},
	}
}

func rankingStatisticsRows(ranked []models.RankedListing) [][]string {
	var sumDelta float64
	manual, automatic, withDelta := 0, 0, 0
	best, worst := dealDeltaOrMin(ranked[0]), 0
	for _, l := range ranked {
		d := dealDeltaOrMin(l)
		if d > best {
			best = d
		}
		if l.DealDeltaUSD != nil {
			if withDelta == 0 || d < worst {
				worst = d
			}
			sumDelta += float64(d)
			withDelta++
		}
		if strings.Contains(strings.ToLower(l.Transmission), "manual") {
			manual++
		} else {
			automatic++
		}
	}
	total := len(ranked)
	avgDelta := 0.0
	if withDelta > 0 {
		avgDelta = sumDelta / float64(withDelta)
	}

	return [][]string{
		{"average_deal_delta_usd", csvio.Float(avgDelta, 2)},
		{"best_deal_delta_usd", fmt.Sprintf("%d", best)},
		{"worst_deal_delta_usd", fmt.Sprintf("%d", worst)},
		{"manual_percentage", csvio.Float(100*float64(manual)/float64(total), 1)},
		{"automatic_percentage", csvio.Float(100*float64(automatic)/float64(total), 1)},
	}
}

// scoreDistributionRows buckets composite scores per the original's
// five-tier Excellent/Very Good/Good/Fair/Poor breakdown.
func scoreDistributionRows(ranked []models.RankedListing) [][]string {
	buckets := map[string]int{"Excellent": 0, "Very Good": 0, "Good": 0, "Fair": 0, "Poor": 0}
	for _, l := range ranked {
		switch {
		case l.CompositeScore >= 8000:
			buckets["Excellent"]++
		case l.CompositeScore >= 6000:
			buckets["Very Good"]++
		case l.CompositeScore >= 4000:
			buckets["Good"]++
		case l.CompositeScore >= 2000:
			buckets["Fair"]++
		default:
			buckets["Poor"]++
		}
	}
	order := []string{"Excellent", "Very Good", "Good", "Fair", "Poor"}
	rows := make([][]string, 0, len(order))
	for _, b := range order {
		rows = append(rows, []string{b, fmt.Sprintf("%d", buckets[b])})
	}
	return rows
}
