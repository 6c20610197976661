package steps

import (
	"fmt"
	"os"

	"github.com/rkaplan/x987scout/internal/logging"
	"github.com/rkaplan/x987scout/internal/models"
	"github.com/rkaplan/x987scout/internal/pipeline"
	"github.com/rkaplan/x987scout/internal/view"
)

var viewLog = logging.New("pipeline.view")

// ViewData is the output of the view stage.
type ViewData struct {
	Displayed      bool
	ListingCount   int
	UnknownYearURLs []string
}

// ViewStep renders the final ranked listings to the terminal (spec §4).
type ViewStep struct {
	Renderer view.Renderer
}

func (ViewStep) Name() string             { return "view" }
func (ViewStep) Description() string      { return "Displays processed data in a ranked table" }
func (ViewStep) Dependencies() []string   { return []string{"transformation", "ranking"} }
func (ViewStep) RequiredConfig() []string { return nil }

func (s ViewStep) Run(rc *pipeline.RunContext, previous map[string]*pipeline.Result) (any, error) {
	rankingResult, ok := previous["ranking"]
	if !ok || !rankingResult.IsSuccess() {
		return ViewData{Displayed: false}, fmt.Errorf("no ranking data available for display")
	}
	rankingData, _ := rankingResult.Data.(RankingData)

	if len(rankingData.Listings) == 0 {
		viewLog.Warn("no listings found in ranking data")
		return ViewData{Displayed: false}, nil
	}

	display, unknown := splitByKnownYear(rankingData.Listings)

	renderer := s.Renderer
	if renderer == nil {
		renderer = view.TableRenderer{}
	}
	if err := renderer.Render(os.Stdout, display); err != nil {
		return ViewData{Displayed: false}, fmt.Errorf("rendering view: %w", err)
	}

	if len(unknown) > 0 {
		viewLog.Info("%d listings skipped from display (year unknown)", len(unknown))
	}

	unknownURLs := make([]string, 0, len(unknown))
	for _, l := range unknown {
		if l.ListingURL != "" {
			unknownURLs = append(unknownURLs, l.ListingURL)
		} else {
			unknownURLs = append(unknownURLs, l.SourceURL)
		}
	}

	viewLog.Info("displayed %d of %d ranked listings", len(display), len(rankingData.Listings))
	return ViewData{Displayed: true, ListingCount: len(display), UnknownYearURLs: unknownURLs}, nil
}

func splitByKnownYear(listings []models.RankedListing) (known, unknown []models.RankedListing) {
	for _, l := range listings {
		if l.Year != nil {
			known = append(known, l)
		} else {
			unknown = append(unknown, l)
		}
	}
	return known, unknown
}
