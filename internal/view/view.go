// Package view renders ranked listings for a human reading the pipeline's
// output, the Go analogue of the original's rich-console report (spec §4.8,
// "view" stage). No terminal capability library is introduced: the teacher
// logs plain leveled lines, and view follows that same aesthetic rather
// than pulling in a TUI dependency for what is a thin display contract.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/rkaplan/x987scout/internal/models"
)

// Renderer renders a set of ranked listings to w.
type Renderer interface {
	Render(w io.Writer, listings []models.RankedListing) error
}

// PlainRenderer prints one line per listing, always available regardless
// of terminal width or color support.
type PlainRenderer struct{}

func (PlainRenderer) Render(w io.Writer, listings []models.RankedListing) error {
	if len(listings) == 0 {
		_, err := fmt.Fprintln(w, "no ranked listings to display")
		return err
	}
	for _, l := range listings {
		line := fmt.Sprintf("#%-3d %-30s %-8s %10s  %-8s  score=%.1f",
			l.Rank, truncate(l.ModelTrim, 30), yearStr(l.Year), priceStr(l.AskingPrice), string(l.DealQuality), l.CompositeScore)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// TableRenderer renders a fixed-width column table, mirroring the
// teacher's structured single-line-per-record logging convention rather
// than a boxed terminal UI.
type TableRenderer struct{}

var tableColumns = []string{"RANK", "MODEL/TRIM", "YEAR", "MILEAGE", "PRICE", "FAIR VALUE", "DEAL", "QUALITY", "SCORE"}

func (TableRenderer) Render(w io.Writer, listings []models.RankedListing) error {
	if len(listings) == 0 {
		_, err := fmt.Fprintln(w, "no ranked listings to display")
		return err
	}

	header := fmt.Sprintf("%-5s %-28s %-6s %-10s %-12s %-12s %-12s %-16s %-8s",
		tableColumns[0], tableColumns[1], tableColumns[2], tableColumns[3], tableColumns[4],
		tableColumns[5], tableColumns[6], tableColumns[7], tableColumns[8])
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", len(header))); err != nil {
		return err
	}

	for _, l := range listings {
		row := fmt.Sprintf("%-5d %-28s %-6s %-10s %-12s %-12s %-12s %-16s %-8.1f",
			l.Rank, truncate(l.ModelTrim, 28), yearStr(l.Year), mileageStr(l.Mileage),
			priceStr(l.AskingPrice), priceStr(l.FairValueUSD), dealStr(l.DealDeltaUSD),
			l.DealQuality, l.CompositeScore)
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func yearStr(v *int) string {
	if v == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *v)
}

func mileageStr(v *int) string {
	if v == nil {
		return "?"
	}
	return fmt.Sprintf("%d mi", *v)
}

func priceStr(v *int) string {
	if v == nil {
		return "?"
	}
	return fmt.Sprintf("$%d", *v)
}

func dealStr(v *int) string {
	if v == nil {
		return "?"
	}
	if *v >= 0 {
		return fmt.Sprintf("+$%d", *v)
	}
	return fmt.Sprintf("-$%d", -*v)
}
