package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rkaplan/x987scout/internal/models"
)

func intp(v int) *int { return &v }

func sampleListing() models.RankedListing {
	l := models.RankedListing{}
	l.Rank = 1
	l.ModelTrim = "Cayman S"
	l.Year = intp(2012)
	l.Mileage = intp(45000)
	l.AskingPrice = intp(29000)
	l.FairValueUSD = intp(32000)
	l.DealDeltaUSD = intp(3000)
	l.DealQuality = models.DealGood
	l.CompositeScore = 4521.3
	return l
}

func TestPlainRendererEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (PlainRenderer{}).Render(&buf, nil); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "no ranked listings") {
		t.Errorf("Render(empty) = %q, want placeholder message", got)
	}
}

func TestPlainRendererOneLinePerListing(t *testing.T) {
	var buf bytes.Buffer
	if err := (PlainRenderer{}).Render(&buf, []models.RankedListing{sampleListing()}); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if !strings.Contains(lines[0], "Cayman S") || !strings.Contains(lines[0], "2012") {
		t.Errorf("line %q missing expected fields", lines[0])
	}
}

func TestTableRendererHeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	if err := (TableRenderer{}).Render(&buf, []models.RankedListing{sampleListing()}); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "RANK") || !strings.Contains(out, "FAIR VALUE") {
		t.Errorf("table header missing expected columns: %q", out)
	}
	if !strings.Contains(out, "Cayman S") || !strings.Contains(out, "45000 mi") {
		t.Errorf("table row missing expected fields: %q", out)
	}
}

func TestTableRendererEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (TableRenderer{}).Render(&buf, nil); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "no ranked listings") {
		t.Errorf("Render(empty) = %q, want placeholder message", got)
	}
}

func TestDealStrSigns(t *testing.T) {
	if got := dealStr(intp(3000)); got != "+$3000" {
		t.Errorf("dealStr(3000) = %q, want +$3000", got)
	}
	if got := dealStr(intp(-1200)); got != "-$1200" {
		t.Errorf("dealStr(-1200) = %q, want -$1200", got)
	}
	if got := dealStr(nil); got != "?" {
		t.Errorf("dealStr(nil) = %q, want ?", got)
	}
}

func TestTruncateLongStrings(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short string) = %q, want unchanged", got)
	}
	long := "a very long model trim name"
	if got := truncate(long, 10); !strings.HasSuffix(got, "…") || len(got) >= len(long) {
		t.Errorf("truncate(%q, 10) = %q, want a shortened string ending in an ellipsis", long, got)
	}
}
