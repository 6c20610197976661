package doctor

import (
	"strings"
	"testing"
)

func TestAllOKTrueWhenEveryReportPasses(t *testing.T) {
	reports := []Report{{Name: "cpu", OK: true}, {Name: "memory", OK: true}}
	if !AllOK(reports) {
		t.Error("AllOK() = false, want true when every report is OK")
	}
}

func TestAllOKFalseWhenOneFails(t *testing.T) {
	reports := []Report{{Name: "cpu", OK: true}, {Name: "disk", OK: false}}
	if AllOK(reports) {
		t.Error("AllOK() = true, want false when a report failed")
	}
}

func TestAllOKTrueForEmptyReports(t *testing.T) {
	if !AllOK(nil) {
		t.Error("AllOK(nil) = false, want true (vacuously all-ok)")
	}
}

func TestSummaryFormatsEachReport(t *testing.T) {
	reports := []Report{
		{Name: "chrome", OK: true, Detail: "found at /usr/bin/chromium"},
		{Name: "disk", OK: false, Detail: "only 0.05 GiB free"},
	}
	out := Summary(reports)

	wantSubstrings := []string{
		"[OK  ] chrome",
		"found at /usr/bin/chromium",
		"[FAIL] disk",
		"only 0.05 GiB free",
	}
	for _, want := range wantSubstrings {
		if !strings.Contains(out, want) {
			t.Errorf("Summary() = %q, missing %q", out, want)
		}
	}
}
